package repository

import (
	"skill_insight_backend/internal/model"

	"gorm.io/gorm"
)

// SessionRepository 会话日志仓储：只追加，按学习者读回
type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Append(record *model.SessionRecord) error {
	return r.DB.Create(record).Error
}

// FindByLearner 按提交时间升序返回全部历史，时间相同时按自增主键保持稳定顺序
func (r *SessionRepository) FindByLearner(learnerID string) ([]model.SessionRecord, error) {
	var records []model.SessionRecord
	err := r.DB.Where("learner_id = ?", learnerID).
		Order("submitted_at asc, id asc").
		Find(&records).Error
	return records, err
}

func (r *SessionRepository) FindBySessionID(sessionID string) (*model.SessionRecord, error) {
	var record model.SessionRecord
	err := r.DB.Where("session_id = ?", sessionID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// DistinctLearnerIDs 返回出现过会话的所有学习者，归档脚本用
func (r *SessionRepository) DistinctLearnerIDs() ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.SessionRecord{}).
		Distinct("learner_id").
		Order("learner_id asc").
		Pluck("learner_id", &ids).Error
	return ids, err
}
