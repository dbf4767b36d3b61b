package service

import (
	"math"
	"time"

	"skill_insight_backend/internal/model"
	"skill_insight_backend/internal/repository"
)

// FingerprintService 从会话历史重算学习者技能画像
// 画像不落库，每次请求基于全量历史重新计算，保证与历史一致
type FingerprintService struct {
	SessionRepo *repository.SessionRepository
}

func NewFingerprintService(sessionRepo *repository.SessionRepository) *FingerprintService {
	return &FingerprintService{SessionRepo: sessionRepo}
}

// GetFingerprint 读取学习者全部会话并聚合成画像
func (s *FingerprintService) GetFingerprint(learnerID string) (model.SkillFingerprint, error) {
	records, err := s.SessionRepo.FindByLearner(learnerID)
	if err != nil {
		return model.SkillFingerprint{}, err
	}
	return s.BuildFingerprint(learnerID, records), nil
}

// History 按提交时间升序返回学习者的全部会话记录
func (s *FingerprintService) History(learnerID string) ([]model.SessionRecord, error) {
	return s.SessionRepo.FindByLearner(learnerID)
}

// BuildFingerprint 按主题聚合会话记录，输入需按提交时间升序
func (s *FingerprintService) BuildFingerprint(learnerID string, records []model.SessionRecord) model.SkillFingerprint {
	// 保持每个主题内的时间顺序，速度与最近得分都依赖它
	topicScores := make(map[string][]float64)
	topicTime := make(map[string]float64)
	topicHints := make(map[string]int)

	for _, record := range records {
		topicScores[record.ModuleID] = append(topicScores[record.ModuleID], record.NormalizedScore())
		topicTime[record.ModuleID] += record.TimeSeconds
		topicHints[record.ModuleID] += record.HintsUsed
	}

	perTopic := make(map[string]model.TopicStats, len(topicScores))
	for topicID, scores := range topicScores {
		attempts := len(scores)
		best := scores[0]
		total := 0.0
		for _, score := range scores {
			total += score
			if score > best {
				best = score
			}
		}
		perTopic[topicID] = model.TopicStats{
			TopicID:            topicID,
			Attempts:           attempts,
			AverageScore:       round1(total / float64(attempts)),
			BestScore:          round1(best),
			LatestScore:        round1(scores[attempts-1]),
			AverageTimeSeconds: round1(topicTime[topicID] / float64(attempts)),
			AverageHints:       round1(float64(topicHints[topicID]) / float64(attempts)),
			LearningVelocity:   round1(learningVelocity(scores)),
		}
	}

	return model.SkillFingerprint{
		LearnerID:   learnerID,
		PerTopic:    perTopic,
		GeneratedAt: time.Now(),
	}
}

// learningVelocity 前后两半平均分之差除以总次数，衡量进步趋势
// 奇数次时前半取较小的一半，少于两次无趋势可言返回 0
func learningVelocity(scores []float64) float64 {
	attempts := len(scores)
	if attempts < 2 {
		return 0
	}
	mid := attempts / 2
	return (mean(scores[mid:]) - mean(scores[:mid])) / float64(attempts)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
