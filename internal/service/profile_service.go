package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"skill_insight_backend/internal/model"
	"skill_insight_backend/internal/repository"
	"skill_insight_backend/internal/util"
)

// ProfileService 目标掌握度画像的管理入口
type ProfileService struct {
	ProfileRepo *repository.TargetProfileRepository
}

func NewProfileService(profileRepo *repository.TargetProfileRepository) *ProfileService {
	return &ProfileService{ProfileRepo: profileRepo}
}

// Upsert 按名称整体覆盖画像，主题列表以本次载荷为准
func (s *ProfileService) Upsert(name string, input *model.TargetProfileInput) (*model.TargetProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: profile name is required", util.ErrInvalidProfile)
	}

	topics := make([]model.TargetTopic, 0, len(input.Topics))
	seen := make(map[string]bool, len(input.Topics))
	for _, topic := range input.Topics {
		topicID := strings.TrimSpace(topic.TopicID)
		if topicID == "" {
			return nil, fmt.Errorf("%w: topicId is required", util.ErrInvalidProfile)
		}
		if seen[topicID] {
			return nil, fmt.Errorf("%w: duplicate topic %s", util.ErrInvalidProfile, topicID)
		}
		seen[topicID] = true

		if topic.TargetScore < 0 || topic.TargetScore > 100 {
			return nil, fmt.Errorf("%w: targetScore for %s must be between 0 and 100", util.ErrInvalidProfile, topicID)
		}

		importance := topic.Importance
		if importance == "" {
			importance = model.ImportanceMedium
		}
		switch importance {
		case model.ImportanceCritical, model.ImportanceHigh, model.ImportanceMedium, model.ImportanceLow:
		default:
			return nil, fmt.Errorf("%w: unknown importance %q for %s", util.ErrInvalidProfile, topic.Importance, topicID)
		}

		topics = append(topics, model.TargetTopic{
			TopicID:     topicID,
			TargetScore: topic.TargetScore,
			Importance:  importance,
		})
	}

	profile := &model.TargetProfile{
		Name:        name,
		Description: input.Description,
		Topics:      topics,
	}
	if err := s.ProfileRepo.Upsert(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) Get(name string) (*model.TargetProfile, error) {
	profile, err := s.ProfileRepo.FindByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTargetProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) List() ([]model.TargetProfile, error) {
	return s.ProfileRepo.List()
}

func (s *ProfileService) Delete(name string) error {
	err := s.ProfileRepo.Delete(name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrTargetProfileNotFound
	}
	return err
}
