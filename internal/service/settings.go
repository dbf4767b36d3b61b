package service

import (
	"sync"
	"time"

	"skill_insight_backend/internal/config"
)

// AnalyticsSettings 分析管线的运行期阈值，配置热更新时整体替换
// 读多写少，用读写锁保护，避免热更新与请求处理竞争
type AnalyticsSettings struct {
	mu  sync.RWMutex
	cfg config.AnalyticsConfig
}

func NewAnalyticsSettings(cfg *config.AnalyticsConfig) *AnalyticsSettings {
	return &AnalyticsSettings{cfg: *cfg}
}

// Apply 配置文件热更新后重新应用阈值
func (s *AnalyticsSettings) Apply(cfg *config.AnalyticsConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = *cfg
}

func (s *AnalyticsSettings) MasteryThreshold() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.MasteryThreshold
}

func (s *AnalyticsSettings) DefaultProfile() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.DefaultProfile
}

func (s *AnalyticsSettings) MaxRecommendations() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.MaxRecommendations
}

func (s *AnalyticsSettings) HighHintThreshold() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.HighHintThreshold
}

func (s *AnalyticsSettings) LowScoreThreshold() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.LowScoreThreshold
}

func (s *AnalyticsSettings) SlowTimeSeconds() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.SlowTimeSeconds
}

func (s *AnalyticsSettings) IdempotencyTTL() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Duration(s.cfg.IdempotencyTTLMinutes) * time.Minute
}
