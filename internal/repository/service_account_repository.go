package repository

import (
	"time"

	"skill_insight_backend/internal/model"

	"gorm.io/gorm"
)

type ServiceAccountRepository struct {
	DB *gorm.DB
}

func NewServiceAccountRepository(db *gorm.DB) *ServiceAccountRepository {
	return &ServiceAccountRepository{DB: db}
}

func (r *ServiceAccountRepository) Create(account *model.ServiceAccount) error {
	return r.DB.Create(account).Error
}

func (r *ServiceAccountRepository) FindByName(name string) (*model.ServiceAccount, error) {
	var account model.ServiceAccount
	err := r.DB.Where("name = ?", name).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateLastUsed 异步活跃时间更新，失败无须回传
func (r *ServiceAccountRepository) UpdateLastUsed(id uint) error {
	now := time.Now()
	return r.DB.Model(&model.ServiceAccount{}).Where("id = ?", id).Update("last_used_at", &now).Error
}
