package model

import "time"

// ExecutionOutcome 判题引擎回传的执行结果信号
type ExecutionOutcome struct {
	SyntaxError  bool `json:"syntaxError"`
	TimeoutError bool `json:"timeoutError"`
}

// SubmissionInput 判题引擎推送的一次已评分提交
// swagger:model SubmissionInput
type SubmissionInput struct {
	LearnerID   string           `json:"learnerId" binding:"required"`
	ModuleID    string           `json:"moduleId" binding:"required"`
	WorkshopID  string           `json:"workshopId" binding:"required"`
	Code        string           `json:"code"`
	Score       float64          `json:"score"`
	MaxScore    float64          `json:"maxScore"`
	TimeSeconds float64          `json:"timeSeconds"`
	HintsUsed   int              `json:"hintsUsed"`
	Outcome     ExecutionOutcome `json:"executionOutcome"`
	SubmittedAt time.Time        `json:"submittedAt"`
}

// SubmissionAnalysis 单次提交的分析结果，生成后不再变更
// swagger:model SubmissionAnalysis
type SubmissionAnalysis struct {
	WorkshopID       string       `json:"workshopId"`
	ModuleID         string       `json:"moduleId"`
	ErrorKind        ErrorKind    `json:"errorKind"`
	DetectedPatterns []PatternTag `json:"detectedPatterns"`
	Feedback         string       `json:"feedback"`
	Timestamp        time.Time    `json:"timestamp"`
}
