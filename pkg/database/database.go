package database

import (
	"fmt"
	"log"
	"skill_insight_backend/internal/config"
	"skill_insight_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, mode string, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	logLevel := logger.Warn
	if mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !migrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.SessionRecord{},
		&model.TargetProfile{},
		&model.TargetTopic{},
		&model.ServiceAccount{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认目标画像：Python 核心轨道，画像为空时差距检测无从谈起
	var count int64
	db.Model(&model.TargetProfile{}).Count(&count)
	if count == 0 {
		defaultProfile := &model.TargetProfile{
			Name:        "default",
			Description: "Python 核心技能轨道的默认掌握目标",
			Topics: []model.TargetTopic{
				{TopicID: "python-basics", TargetScore: 80, Importance: model.ImportanceCritical},
				{TopicID: "control-flow", TargetScore: 80, Importance: model.ImportanceCritical},
				{TopicID: "functions", TargetScore: 80, Importance: model.ImportanceHigh},
				{TopicID: "data-structures", TargetScore: 80, Importance: model.ImportanceHigh},
				{TopicID: "comprehensions", TargetScore: 75, Importance: model.ImportanceMedium},
				{TopicID: "oop", TargetScore: 75, Importance: model.ImportanceMedium},
				{TopicID: "error-handling", TargetScore: 75, Importance: model.ImportanceMedium},
				{TopicID: "iterators-generators", TargetScore: 70, Importance: model.ImportanceLow},
			},
		}
		db.Create(defaultProfile)
	}

	return db, nil
}
