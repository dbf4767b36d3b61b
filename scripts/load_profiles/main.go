// 批量导入目标画像脚本
//
// 差距检测只认数据库里的目标画像；学期初或教学大纲调整后，
// 用此脚本把 YAML 清单里的画像一次性写入（按名称整体覆盖）。
// 清单格式见 configs/profiles.example.yaml。
//
// 用法: go run ./scripts/load_profiles [manifest.yaml]

package main

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"skill_insight_backend/internal/config"
	"skill_insight_backend/internal/model"
	"skill_insight_backend/internal/repository"
	"skill_insight_backend/internal/service"
	"skill_insight_backend/pkg/database"
	"skill_insight_backend/pkg/logger"
)

type profileManifest struct {
	Profiles []profileEntry `yaml:"profiles"`
}

type profileEntry struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Topics      []topicEntry `yaml:"topics"`
}

type topicEntry struct {
	TopicID     string  `yaml:"topic_id"`
	TargetScore float64 `yaml:"target_score"`
	Importance  string  `yaml:"importance"`
}

func main() {
	manifestPath := "configs/profiles.example.yaml"
	if len(os.Args) > 1 {
		manifestPath = os.Args[1]
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		log.Fatalf("无法读取画像清单: %v", err)
	}

	var manifest profileManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		log.Fatalf("解析画像清单失败: %v", err)
	}
	if len(manifest.Profiles) == 0 {
		log.Fatalf("画像清单为空: %s", manifestPath)
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	// 导入属于初始化操作，顺带保证表结构存在
	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode, true)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	profiles := service.NewProfileService(repository.NewTargetProfileRepository(db))

	failed := 0
	for _, entry := range manifest.Profiles {
		input := &model.TargetProfileInput{
			Description: entry.Description,
			Topics:      make([]model.TargetTopicInput, 0, len(entry.Topics)),
		}
		for _, topic := range entry.Topics {
			input.Topics = append(input.Topics, model.TargetTopicInput{
				TopicID:     topic.TopicID,
				TargetScore: topic.TargetScore,
				Importance:  model.Importance(topic.Importance),
			})
		}

		if _, err := profiles.Upsert(entry.Name, input); err != nil {
			log.Printf("画像 %s 导入失败: %v", entry.Name, err)
			failed++
			continue
		}
		log.Printf("画像 %s 已导入（%d 个主题）", entry.Name, len(entry.Topics))
	}

	log.Printf("完成！成功 %d，失败 %d", len(manifest.Profiles)-failed, failed)
}
