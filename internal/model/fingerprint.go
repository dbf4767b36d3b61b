package model

import (
	"sort"
	"time"
)

// TopicStats 单个主题（模块）的累计统计
type TopicStats struct {
	TopicID            string  `json:"topicId"`
	Attempts           int     `json:"attempts"`
	AverageScore       float64 `json:"averageScore"`
	BestScore          float64 `json:"bestScore"`
	LatestScore        float64 `json:"latestScore"`
	AverageTimeSeconds float64 `json:"averageTimeSeconds"`
	AverageHints       float64 `json:"averageHints"`
	// 学习速度：后半段均分与前半段均分之差除以总次数，不足两次为 0
	LearningVelocity float64 `json:"learningVelocity"`
}

// SkillFingerprint 学习者全部历史折叠出的技能画像，按主题聚合
// swagger:model SkillFingerprint
type SkillFingerprint struct {
	LearnerID   string                `json:"learnerId"`
	PerTopic    map[string]TopicStats `json:"perTopic"`
	GeneratedAt time.Time             `json:"generatedAt"`
}

// TopicIDs 返回按字典序排列的主题列表，保证遍历顺序可复现
func (f *SkillFingerprint) TopicIDs() []string {
	ids := make([]string, 0, len(f.PerTopic))
	for id := range f.PerTopic {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// OverallAverage 所有主题平均分的算术平均，无历史时为 0
func (f *SkillFingerprint) OverallAverage() float64 {
	if len(f.PerTopic) == 0 {
		return 0
	}
	var sum float64
	for _, stats := range f.PerTopic {
		sum += stats.AverageScore
	}
	return sum / float64(len(f.PerTopic))
}
