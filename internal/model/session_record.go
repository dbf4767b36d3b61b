package model

import (
	"encoding/json"
	"time"
)

type ErrorKind string

const (
	ErrorKindNone    ErrorKind = "none"
	ErrorKindSyntax  ErrorKind = "syntax"
	ErrorKindLogic   ErrorKind = "logic"
	ErrorKindTimeout ErrorKind = "timeout"
)

// SessionRecord 一次判题会话的不可变记录，只追加不修改
// swagger:model SessionRecord
type SessionRecord struct {
	BaseModel
	SessionID        string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"sessionId"`
	LearnerID        string    `gorm:"type:varchar(64);index:idx_learner_submitted;not null" json:"learnerId"`
	ModuleID         string    `gorm:"type:varchar(100);index;not null" json:"moduleId"`
	WorkshopID       string    `gorm:"type:varchar(100);not null" json:"workshopId"`
	Score            float64   `json:"score"`
	MaxScore         float64   `json:"maxScore"`
	TimeSeconds      float64   `json:"timeSeconds"`
	HintsUsed        int       `json:"hintsUsed"`
	DetectedPatterns string    `gorm:"type:json" json:"-"`
	ErrorKind        ErrorKind `gorm:"type:varchar(20);default:'none'" json:"errorKind"`
	Feedback         string    `gorm:"type:text" json:"feedback"`
	SubmittedAt      time.Time `gorm:"index:idx_learner_submitted" json:"submittedAt"`
}

func (SessionRecord) TableName() string {
	return "session_records"
}

// NormalizedScore 归一化到 0-100；maxScore 非法时取 0
func (r *SessionRecord) NormalizedScore() float64 {
	if r.MaxScore <= 0 {
		return 0
	}
	score := r.Score / r.MaxScore * 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func (r *SessionRecord) PatternTags() []PatternTag {
	if r.DetectedPatterns == "" {
		return nil
	}
	var tags []PatternTag
	if err := json.Unmarshal([]byte(r.DetectedPatterns), &tags); err != nil {
		return nil
	}
	return tags
}

func (r *SessionRecord) SetPatternTags(tags []PatternTag) {
	if len(tags) == 0 {
		r.DetectedPatterns = "[]"
		return
	}
	data, err := json.Marshal(tags)
	if err != nil {
		r.DetectedPatterns = "[]"
		return
	}
	r.DetectedPatterns = string(data)
}
