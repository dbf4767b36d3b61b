package model

import "time"

type AccountRole string

const (
	RoleGrader AccountRole = "grader"
	RoleReader AccountRole = "reader"
	RoleAdmin  AccountRole = "admin"
)

// ServiceAccount 调用方服务账号（判题引擎、展示层、管理端），密钥只存哈希
// swagger:model ServiceAccount
type ServiceAccount struct {
	BaseModel
	Name       string      `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	KeyHash    string      `gorm:"type:varchar(100);not null" json:"-"`
	Role       AccountRole `gorm:"type:enum('grader','reader','admin');default:'reader'" json:"role"`
	Disabled   bool        `gorm:"default:false" json:"disabled"`
	LastUsedAt *time.Time  `json:"lastUsedAt"`
}

func (ServiceAccount) TableName() string {
	return "service_accounts"
}
