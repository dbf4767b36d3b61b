package service

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"skill_insight_backend/internal/model"
	"skill_insight_backend/pkg/logger"
	"skill_insight_backend/pkg/monitoring"
	"skill_insight_backend/pkg/tracing"
)

// sessionStore 摄取链路需要的会话日志能力
type sessionStore interface {
	Append(record *model.SessionRecord) error
	FindByLearner(learnerID string) ([]model.SessionRecord, error)
	FindBySessionID(sessionID string) (*model.SessionRecord, error)
}

// feedPusher 即时反馈的实时推送出口
type feedPusher interface {
	Publish(learnerID string, feedback *model.QuickFeedback)
}

// IngestService 提交摄取链路：分析、落库、即时反馈、实时推送
// 同一学习者的落库串行执行，保证历史顺序与速度估计的确定性
type IngestService struct {
	Analyzer     *AnalyzerService
	Report       *ReportService
	Sessions     sessionStore
	Reservations ReservationStore
	Feed         feedPusher
	Settings     *AnalyticsSettings

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewIngestService 组装摄取链路；reservations 和 feed 允许为空（对应能力关闭）
func NewIngestService(analyzer *AnalyzerService, report *ReportService, sessions sessionStore, reservations ReservationStore, feed feedPusher, settings *AnalyticsSettings) *IngestService {
	return &IngestService{
		Analyzer:     analyzer,
		Report:       report,
		Sessions:     sessions,
		Reservations: reservations,
		Feed:         feed,
		Settings:     settings,
		locks:        make(map[string]*sync.Mutex),
	}
}

// Ingest 处理一次已判分提交，返回即时反馈
// idempotencyKey 非空时重复提交会返回首次结果并标记 duplicate
func (s *IngestService) Ingest(ctx context.Context, input *model.SubmissionInput, idempotencyKey string) (*model.QuickFeedback, error) {
	ctx, span := tracing.Tracer.Start(ctx, "ingest.Submission")
	defer span.End()
	span.SetAttributes(
		attribute.String("learner.id", input.LearnerID),
		attribute.String("module.id", input.ModuleID),
	)

	sessionID := model.GenerateUUID()
	if s.Reservations != nil && idempotencyKey != "" {
		winner, fresh, err := s.Reservations.Reserve(ctx, input.LearnerID+":"+idempotencyKey, sessionID, s.Settings.IdempotencyTTL())
		switch {
		case err != nil:
			// Redis 故障只丢幂等保护，不阻断摄取
			logger.Log.Warn("幂等预占失败，按新提交继续", zap.Error(err))
		case !fresh:
			existing, err := s.Sessions.FindBySessionID(winner)
			if err == nil {
				return s.duplicateFeedback(existing), nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			// 先占者在落库前异常退出，接管它的会话号重新处理
			sessionID = winner
		}
	}

	lock := s.learnerLock(input.LearnerID)
	lock.Lock()
	defer lock.Unlock()

	history, err := s.Sessions.FindByLearner(input.LearnerID)
	if err != nil {
		return nil, err
	}
	priorBest, hasPrior := priorBestFor(history, input.ModuleID)

	analysis := s.Analyzer.Analyze(input)

	record := &model.SessionRecord{
		SessionID:   sessionID,
		LearnerID:   input.LearnerID,
		ModuleID:    input.ModuleID,
		WorkshopID:  input.WorkshopID,
		Score:       input.Score,
		MaxScore:    input.MaxScore,
		TimeSeconds: input.TimeSeconds,
		HintsUsed:   input.HintsUsed,
		ErrorKind:   analysis.ErrorKind,
		Feedback:    analysis.Feedback,
		SubmittedAt: analysis.Timestamp,
	}
	record.SetPatternTags(analysis.DetectedPatterns)

	if err := s.Sessions.Append(record); err != nil {
		return nil, err
	}
	monitoring.SubmissionCounter.WithLabelValues(input.ModuleID, string(analysis.ErrorKind)).Inc()

	feedback := s.Report.QuickFeedback(record, &analysis, priorBest, hasPrior)
	if s.Feed != nil {
		s.Feed.Publish(input.LearnerID, feedback)
	}
	return feedback, nil
}

// learnerLock 返回学习者专属的互斥锁，锁常驻，学习者基数有限
func (s *IngestService) learnerLock(learnerID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[learnerID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[learnerID] = lock
	}
	return lock
}

// duplicateFeedback 重复提交时从已落库的记录还原当时的反馈
func (s *IngestService) duplicateFeedback(record *model.SessionRecord) *model.QuickFeedback {
	return &model.QuickFeedback{
		SessionID:        record.SessionID,
		LearnerID:        record.LearnerID,
		ModuleID:         record.ModuleID,
		WorkshopID:       record.WorkshopID,
		Score:            record.Score,
		MaxScore:         record.MaxScore,
		NormalizedScore:  round1(record.NormalizedScore()),
		ErrorKind:        record.ErrorKind,
		DetectedPatterns: record.PatternTags(),
		Message:          record.Feedback,
		Duplicate:        true,
	}
}

// priorBestFor 本次提交前该主题的最高归一化得分
func priorBestFor(history []model.SessionRecord, moduleID string) (float64, bool) {
	best := 0.0
	found := false
	for i := range history {
		if history[i].ModuleID != moduleID {
			continue
		}
		score := history[i].NormalizedScore()
		if !found || score > best {
			best = score
		}
		found = true
	}
	return best, found
}
