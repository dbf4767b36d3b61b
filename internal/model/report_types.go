package model

import "time"

// ExecutiveSummary 技能报告的概要部分
type ExecutiveSummary struct {
	TotalSessions     int     `json:"totalSessions"`
	TopicsPracticed   int     `json:"topicsPracticed"`
	OverallAverage    float64 `json:"overallAverage"`
	OverallAssessment string  `json:"overallAssessment"` // Excellent, Good, Fair, Needs Work
	TotalTimeSeconds  float64 `json:"totalTimeSeconds"`
}

// TopicMastery 报告中的单主题掌握度行
type TopicMastery struct {
	TopicID          string  `json:"topicId"`
	Attempts         int     `json:"attempts"`
	AverageScore     float64 `json:"averageScore"`
	BestScore        float64 `json:"bestScore"`
	LatestScore      float64 `json:"latestScore"`
	LearningVelocity float64 `json:"learningVelocity"`
	Trend            string  `json:"trend"` // improving, declining, stable
}

// SkillReport 完整技能报告：概要、主题明细、强项、差距、后续建议
// swagger:model SkillReport
type SkillReport struct {
	LearnerID        string           `json:"learnerId"`
	Profile          string           `json:"profile"`
	MasteryThreshold float64          `json:"masteryThreshold"`
	Summary          ExecutiveSummary `json:"summary"`
	Topics           []TopicMastery   `json:"topics"`
	Strengths        []string         `json:"strengths"`
	Gaps             []SkillGap       `json:"gaps"`
	NextSteps        []SkillGap       `json:"nextSteps"`
	Insights         []string         `json:"insights"`
	GeneratedAt      time.Time        `json:"generatedAt"`
}

// QuickFeedback 单次提交的即时反馈，含与历史最佳的对比
// swagger:model QuickFeedback
type QuickFeedback struct {
	SessionID        string       `json:"sessionId"`
	LearnerID        string       `json:"learnerId"`
	ModuleID         string       `json:"moduleId"`
	WorkshopID       string       `json:"workshopId"`
	Score            float64      `json:"score"`
	MaxScore         float64      `json:"maxScore"`
	NormalizedScore  float64      `json:"normalizedScore"`
	ErrorKind        ErrorKind    `json:"errorKind"`
	DetectedPatterns []PatternTag `json:"detectedPatterns"`
	Message          string       `json:"message"`
	IsPersonalBest   bool         `json:"isPersonalBest"`
	PriorBest        float64      `json:"priorBest"`
	Notes            []string     `json:"notes"`
	Duplicate        bool         `json:"duplicate,omitempty"`
}

// ReadinessAssessment 进阶就绪评估
// swagger:model ReadinessAssessment
type ReadinessAssessment struct {
	LearnerID        string     `json:"learnerId"`
	Profile          string     `json:"profile"`
	Ready            bool       `json:"ready"`
	OverallAverage   float64    `json:"overallAverage"`
	MasteryThreshold float64    `json:"masteryThreshold"`
	Summary          string     `json:"summary"`
	Blockers         []SkillGap `json:"blockers"`
}

// GapReport 差距检测结果及其来源画像
// swagger:model GapReport
type GapReport struct {
	LearnerID   string     `json:"learnerId"`
	Profile     string     `json:"profile"`
	Gaps        []SkillGap `json:"gaps"`
	GeneratedAt time.Time  `json:"generatedAt"`
}

// ArchiveResult 报告归档产物在对象存储中的位置
// swagger:model ArchiveResult
type ArchiveResult struct {
	LearnerID   string    `json:"learnerId"`
	Profile     string    `json:"profile"`
	MarkdownURL string    `json:"markdownUrl"`
	JSONURL     string    `json:"jsonUrl"`
	ArchivedAt  time.Time `json:"archivedAt"`
}

// ProgressSummary 会话历史的整体进度统计
// swagger:model ProgressSummary
type ProgressSummary struct {
	LearnerID        string     `json:"learnerId"`
	TotalSessions    int        `json:"totalSessions"`
	ModulesPracticed int        `json:"modulesPracticed"`
	AverageScore     float64    `json:"averageScore"`
	TotalTimeSeconds float64    `json:"totalTimeSeconds"`
	TotalHintsUsed   int        `json:"totalHintsUsed"`
	FirstSessionAt   *time.Time `json:"firstSessionAt"`
	LastSessionAt    *time.Time `json:"lastSessionAt"`
}
