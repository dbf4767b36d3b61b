package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"skill_insight_backend/internal/model"
	"skill_insight_backend/internal/util"
	"skill_insight_backend/pkg/monitoring"
)

// profileStore 差距检测需要的目标画像读取能力
type profileStore interface {
	FindByName(name string) (*model.TargetProfile, error)
}

// GapService 把技能画像与目标画像比对，产出按紧急程度排序的差距清单
type GapService struct {
	Profiles    profileStore
	Fingerprint *FingerprintService
	Settings    *AnalyticsSettings
}

func NewGapService(profiles profileStore, fingerprint *FingerprintService, settings *AnalyticsSettings) *GapService {
	return &GapService{
		Profiles:    profiles,
		Fingerprint: fingerprint,
		Settings:    settings,
	}
}

// Evaluate 拉取目标画像与技能画像并比对，供差距、推荐、报告接口复用
func (s *GapService) Evaluate(learnerID, profileName string) (model.SkillFingerprint, []model.SkillGap, *model.TargetProfile, error) {
	if profileName == "" {
		profileName = s.Settings.DefaultProfile()
	}
	profile, err := s.Profiles.FindByName(profileName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.SkillFingerprint{}, nil, nil, util.ErrTargetProfileNotFound
		}
		return model.SkillFingerprint{}, nil, nil, err
	}
	// 空画像和全部达标都会得到空差距清单，必须在这里就区分开
	if profile.IsEmpty() {
		return model.SkillFingerprint{}, nil, nil, util.ErrTargetProfileEmpty
	}

	fingerprint, err := s.Fingerprint.GetFingerprint(learnerID)
	if err != nil {
		return model.SkillFingerprint{}, nil, nil, err
	}

	gaps := s.DetectGaps(fingerprint, profile)
	for _, gap := range gaps {
		monitoring.GapCounter.WithLabelValues(string(gap.Severity)).Inc()
	}
	return fingerprint, gaps, profile, nil
}

// ListGaps 返回学习者针对某个目标画像的完整差距报告
func (s *GapService) ListGaps(learnerID, profileName string) (*model.GapReport, error) {
	_, gaps, profile, err := s.Evaluate(learnerID, profileName)
	if err != nil {
		return nil, err
	}
	return &model.GapReport{
		LearnerID:   learnerID,
		Profile:     profile.Name,
		Gaps:        gaps,
		GeneratedAt: time.Now(),
	}, nil
}

// Recommend 返回最该优先补齐的前 N 个差距
func (s *GapService) Recommend(learnerID, profileName string, limit int) ([]model.SkillGap, error) {
	_, gaps, _, err := s.Evaluate(learnerID, profileName)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.Settings.MaxRecommendations()
	}
	return s.PrioritizeNextWorkshops(gaps, limit), nil
}

// DetectGaps 逐个比对目标画像里的主题，产出带推荐语的有序差距清单
// 只看画像里配置过的主题，已超标的非关键主题不会出现在结果里
func (s *GapService) DetectGaps(fingerprint model.SkillFingerprint, profile *model.TargetProfile) []model.SkillGap {
	gaps := make([]model.SkillGap, 0, len(profile.Topics))
	for _, target := range profile.Topics {
		stats, attempted := fingerprint.PerTopic[target.TopicID]
		current := 0.0
		if attempted {
			current = stats.AverageScore
		}
		gapSize := round1(target.TargetScore - current)

		// 关键主题只要未达标就必须浮出，哪怕差距很小
		criticalShortfall := target.Importance == model.ImportanceCritical && current < target.TargetScore
		if gapSize <= 0 && !criticalShortfall {
			continue
		}

		gaps = append(gaps, model.SkillGap{
			TopicID:        target.TopicID,
			CurrentScore:   current,
			TargetScore:    target.TargetScore,
			GapSize:        gapSize,
			Severity:       severityFor(gapSize, target.Importance, criticalShortfall),
			Attempts:       stats.Attempts,
			Recommendation: s.recommendationFor(target.TopicID, stats, attempted, gapSize),
		})
	}

	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].Severity != gaps[j].Severity {
			return gaps[i].Severity.Rank() < gaps[j].Severity.Rank()
		}
		if gaps[i].GapSize != gaps[j].GapSize {
			return gaps[i].GapSize > gaps[j].GapSize
		}
		return gaps[i].TopicID < gaps[j].TopicID
	})
	return gaps
}

// PrioritizeNextWorkshops 取排序后的前 max 个差距作为下一步练习建议
func (s *GapService) PrioritizeNextWorkshops(gaps []model.SkillGap, max int) []model.SkillGap {
	if max <= 0 {
		return []model.SkillGap{}
	}
	if max > len(gaps) {
		max = len(gaps)
	}
	return gaps[:max]
}

// severityFor 固定优先级判级，先命中先得
func severityFor(gapSize float64, importance model.Importance, criticalShortfall bool) model.Severity {
	switch {
	case gapSize >= 40 || criticalShortfall:
		return model.SeverityCritical
	case gapSize >= 25 || importance == model.ImportanceHigh:
		return model.SeverityHigh
	case gapSize >= 15:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}

// recommendationFor 按固定优先级挑一条带具体数字的建议
func (s *GapService) recommendationFor(topicID string, stats model.TopicStats, attempted bool, gapSize float64) string {
	if !attempted {
		return fmt.Sprintf("Start with the introductory workshops for %s to build a baseline.", topicID)
	}
	switch {
	case stats.AverageHints > s.Settings.HighHintThreshold():
		return fmt.Sprintf("Review the fundamentals of %s; you averaged %.1f hints per attempt.", topicID, stats.AverageHints)
	case stats.Attempts >= 2 && stats.AverageScore < s.Settings.LowScoreThreshold():
		return fmt.Sprintf("Retry the %s workshops; your average of %.1f%% after %d attempts leaves room to grow.", topicID, stats.AverageScore, stats.Attempts)
	case stats.AverageTimeSeconds > s.Settings.SlowTimeSeconds():
		return fmt.Sprintf("Practice %s for speed; attempts average %.0f minutes.", topicID, stats.AverageTimeSeconds/60)
	default:
		return fmt.Sprintf("Focus on %s to close the remaining %.1f point gap.", topicID, gapSize)
	}
}
