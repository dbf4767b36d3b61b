package model

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Rank 返回排序优先级，数值越小越紧急
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	default:
		return 3
	}
}

// SkillGap 当前水平与目标画像之间的差距
// swagger:model SkillGap
type SkillGap struct {
	TopicID        string   `json:"topicId"`
	CurrentScore   float64  `json:"currentScore"`
	TargetScore    float64  `json:"targetScore"`
	GapSize        float64  `json:"gapSize"`
	Severity       Severity `json:"severity"`
	Attempts       int      `json:"attempts"`
	Recommendation string   `json:"recommendation"`
}
