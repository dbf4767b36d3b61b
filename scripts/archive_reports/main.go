// 手动触发全量报告归档脚本
//
// 在线接口按学习者逐个归档；需要一次性为所有学习者落盘快照时
// （例如学期结束或迁移存储后端前）使用此脚本。
//
// 用法: go run ./scripts/archive_reports [profile]

package main

import (
	"context"
	"log"
	"os"

	"skill_insight_backend/internal/config"
	"skill_insight_backend/internal/repository"
	"skill_insight_backend/internal/service"
	"skill_insight_backend/pkg/database"
	"skill_insight_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	// 归档只读取已有会话，不负责建表
	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode, false)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	profileName := ""
	if len(os.Args) > 1 {
		profileName = os.Args[1]
	}

	sessionRepo := repository.NewSessionRepository(db)
	profileRepo := repository.NewTargetProfileRepository(db)
	settings := service.NewAnalyticsSettings(&cfg.Analytics)
	fingerprint := service.NewFingerprintService(sessionRepo)
	gap := service.NewGapService(profileRepo, fingerprint, settings)
	report := service.NewReportService(gap, fingerprint, sessionRepo, settings)
	archive := service.NewArchiveService(cfg, report)

	learnerIDs, err := sessionRepo.DistinctLearnerIDs()
	if err != nil {
		log.Fatalf("查询学习者列表失败: %v", err)
	}

	log.Printf("开始归档 %d 位学习者的技能报告...", len(learnerIDs))

	failed := 0
	for _, learnerID := range learnerIDs {
		result, err := archive.ArchiveSkillReport(context.Background(), learnerID, profileName, 0)
		if err != nil {
			log.Printf("学习者 %s 归档失败: %v", learnerID, err)
			failed++
			continue
		}
		log.Printf("学习者 %s 已归档: %s", learnerID, result.MarkdownURL)
	}

	log.Printf("完成！成功 %d，失败 %d", len(learnerIDs)-failed, failed)
}
