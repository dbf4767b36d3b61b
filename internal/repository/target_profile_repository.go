package repository

import (
	"skill_insight_backend/internal/model"

	"gorm.io/gorm"
)

type TargetProfileRepository struct {
	DB *gorm.DB
}

func NewTargetProfileRepository(db *gorm.DB) *TargetProfileRepository {
	return &TargetProfileRepository{DB: db}
}

// Upsert 按名称覆盖画像，旧主题条目整体替换
func (r *TargetProfileRepository) Upsert(profile *model.TargetProfile) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.TargetProfile
		err := tx.Where("name = ?", profile.Name).First(&existing).Error
		if err == nil {
			// 硬删除旧条目，软删除会占住 (profile_id, topic_id) 唯一索引
			if err := tx.Unscoped().Where("profile_id = ?", existing.ID).Delete(&model.TargetTopic{}).Error; err != nil {
				return err
			}
			profile.ID = existing.ID
			profile.CreatedAt = existing.CreatedAt
		} else if err != gorm.ErrRecordNotFound {
			return err
		}
		return tx.Save(profile).Error
	})
}

func (r *TargetProfileRepository) FindByName(name string) (*model.TargetProfile, error) {
	var profile model.TargetProfile
	err := r.DB.Preload("Topics").Where("name = ?", name).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *TargetProfileRepository) List() ([]model.TargetProfile, error) {
	var profiles []model.TargetProfile
	err := r.DB.Preload("Topics").Order("name asc").Find(&profiles).Error
	return profiles, err
}

func (r *TargetProfileRepository) Delete(name string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var profile model.TargetProfile
		if err := tx.Where("name = ?", name).First(&profile).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("profile_id = ?", profile.ID).Delete(&model.TargetTopic{}).Error; err != nil {
			return err
		}
		return tx.Delete(&profile).Error
	})
}
