package model

type Importance string

const (
	ImportanceCritical Importance = "critical"
	ImportanceHigh     Importance = "high"
	ImportanceMedium   Importance = "medium"
	ImportanceLow      Importance = "low"
)

// TargetProfile 按主题配置的目标掌握度画像，调用方只读
// swagger:model TargetProfile
type TargetProfile struct {
	BaseModel
	Name        string        `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Topics      []TargetTopic `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"topics"`
}

// TargetTopic 目标画像中的单个主题条目
// swagger:model TargetTopic
type TargetTopic struct {
	BaseModel
	ProfileID   uint       `gorm:"uniqueIndex:idx_profile_topic" json:"-"`
	TopicID     string     `gorm:"type:varchar(100);uniqueIndex:idx_profile_topic;not null" json:"topicId"`
	TargetScore float64    `json:"targetScore"`
	Importance  Importance `gorm:"type:varchar(20);default:'medium'" json:"importance"`
}

func (TargetProfile) TableName() string {
	return "target_profiles"
}

func (TargetTopic) TableName() string {
	return "target_topics"
}

// IsEmpty 画像未配置任何主题时为真，调用方必须区分“空配置”和“无差距”
func (p *TargetProfile) IsEmpty() bool {
	return p == nil || len(p.Topics) == 0
}

// TargetTopicInput 画像写入时的单主题载荷
type TargetTopicInput struct {
	TopicID     string     `json:"topicId" binding:"required"`
	TargetScore float64    `json:"targetScore"`
	Importance  Importance `json:"importance"`
}

// TargetProfileInput PUT /api/profiles/:name 的请求体
type TargetProfileInput struct {
	Description string             `json:"description"`
	Topics      []TargetTopicInput `json:"topics"`
}
