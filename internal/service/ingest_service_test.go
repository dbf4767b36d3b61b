package service

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"skill_insight_backend/internal/model"
	"skill_insight_backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

type fakeSessionStore struct {
	records []model.SessionRecord
}

func (f *fakeSessionStore) Append(record *model.SessionRecord) error {
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeSessionStore) FindByLearner(learnerID string) ([]model.SessionRecord, error) {
	var out []model.SessionRecord
	for _, r := range f.records {
		if r.LearnerID == learnerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSessionStore) FindBySessionID(sessionID string) (*model.SessionRecord, error) {
	for i := range f.records {
		if f.records[i].SessionID == sessionID {
			return &f.records[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeReservations struct {
	reserved map[string]string
	err      error
}

func (f *fakeReservations) Reserve(ctx context.Context, key, sessionID string, ttl time.Duration) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	if f.reserved == nil {
		f.reserved = make(map[string]string)
	}
	if winner, ok := f.reserved[key]; ok {
		return winner, false, nil
	}
	f.reserved[key] = sessionID
	return sessionID, true, nil
}

type fakeFeed struct {
	published []*model.QuickFeedback
}

func (f *fakeFeed) Publish(learnerID string, feedback *model.QuickFeedback) {
	f.published = append(f.published, feedback)
}

func newTestIngest(store *fakeSessionStore, reservations ReservationStore, feed feedPusher) *IngestService {
	settings := testSettings()
	report := &ReportService{Settings: settings}
	return NewIngestService(NewAnalyzerService(), report, store, reservations, feed, settings)
}

func submission(learnerID, moduleID string, score float64) *model.SubmissionInput {
	return &model.SubmissionInput{
		LearnerID:   learnerID,
		ModuleID:    moduleID,
		WorkshopID:  moduleID + "-w1",
		Code:        "result = [x for x in data]",
		Score:       score,
		MaxScore:    100,
		SubmittedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestIngestAppendsSession(t *testing.T) {
	store := &fakeSessionStore{}
	feed := &fakeFeed{}
	svc := newTestIngest(store, &fakeReservations{}, feed)

	fb, err := svc.Ingest(context.Background(), submission("l1", "loops", 100), "")

	require.NoError(t, err)
	require.Len(t, store.records, 1)

	record := store.records[0]
	assert.Equal(t, record.SessionID, fb.SessionID)
	assert.Equal(t, "l1", record.LearnerID)
	assert.Equal(t, model.ErrorKindNone, record.ErrorKind)
	assert.Equal(t, []model.PatternTag{model.PatternListComprehension}, record.PatternTags())
	assert.Equal(t, "Excellent work! Nice use of list comprehensions.", fb.Message)
	assert.Contains(t, fb.Notes, "First attempt on this topic recorded.")
	assert.False(t, fb.Duplicate)

	require.Len(t, feed.published, 1)
	assert.Same(t, fb, feed.published[0])
}

func TestIngestComputesPriorBestBeforeAppend(t *testing.T) {
	store := &fakeSessionStore{}
	svc := newTestIngest(store, &fakeReservations{}, nil)

	_, err := svc.Ingest(context.Background(), submission("l1", "loops", 60), "")
	require.NoError(t, err)

	fb, err := svc.Ingest(context.Background(), submission("l1", "loops", 90), "")
	require.NoError(t, err)

	assert.True(t, fb.IsPersonalBest)
	assert.Equal(t, 60.0, fb.PriorBest)
	assert.Contains(t, fb.Notes, "New personal best!")
	assert.Len(t, store.records, 2)
}

func TestIngestPriorBestIgnoresOtherModules(t *testing.T) {
	store := &fakeSessionStore{}
	svc := newTestIngest(store, &fakeReservations{}, nil)

	_, err := svc.Ingest(context.Background(), submission("l1", "functions", 95), "")
	require.NoError(t, err)

	fb, err := svc.Ingest(context.Background(), submission("l1", "loops", 70), "")
	require.NoError(t, err)

	// 不同模块的历史不参与最佳分对比
	assert.Contains(t, fb.Notes, "First attempt on this topic recorded.")
	assert.False(t, fb.IsPersonalBest)
}

func TestIngestDuplicateReturnsOriginal(t *testing.T) {
	store := &fakeSessionStore{}
	svc := newTestIngest(store, &fakeReservations{}, nil)

	first, err := svc.Ingest(context.Background(), submission("l1", "loops", 100), "key-1")
	require.NoError(t, err)

	replay, err := svc.Ingest(context.Background(), submission("l1", "loops", 100), "key-1")
	require.NoError(t, err)

	assert.True(t, replay.Duplicate)
	assert.Equal(t, first.SessionID, replay.SessionID)
	assert.Equal(t, first.Message, replay.Message)
	assert.Equal(t, []model.PatternTag{model.PatternListComprehension}, replay.DetectedPatterns)
	assert.Len(t, store.records, 1)
}

func TestIngestDifferentKeysAreIndependent(t *testing.T) {
	store := &fakeSessionStore{}
	svc := newTestIngest(store, &fakeReservations{}, nil)

	first, err := svc.Ingest(context.Background(), submission("l1", "loops", 80), "key-1")
	require.NoError(t, err)

	second, err := svc.Ingest(context.Background(), submission("l1", "loops", 90), "key-2")
	require.NoError(t, err)

	assert.NotEqual(t, first.SessionID, second.SessionID)
	assert.False(t, second.Duplicate)
	assert.Len(t, store.records, 2)
}

func TestIngestKeysScopedPerLearner(t *testing.T) {
	store := &fakeSessionStore{}
	svc := newTestIngest(store, &fakeReservations{}, nil)

	_, err := svc.Ingest(context.Background(), submission("l1", "loops", 80), "key-1")
	require.NoError(t, err)

	other, err := svc.Ingest(context.Background(), submission("l2", "loops", 80), "key-1")
	require.NoError(t, err)

	assert.False(t, other.Duplicate)
	assert.Len(t, store.records, 2)
}

func TestIngestSurvivesReservationOutage(t *testing.T) {
	store := &fakeSessionStore{}
	svc := newTestIngest(store, &fakeReservations{err: errors.New("connection refused")}, nil)

	fb, err := svc.Ingest(context.Background(), submission("l1", "loops", 80), "key-1")

	require.NoError(t, err)
	assert.False(t, fb.Duplicate)
	assert.Len(t, store.records, 1)
}

func TestIngestTakesOverAbandonedReservation(t *testing.T) {
	store := &fakeSessionStore{}
	// 先占者写入预占后崩溃，未能落库
	reservations := &fakeReservations{reserved: map[string]string{"l1:key-1": "orphaned-session"}}
	svc := newTestIngest(store, reservations, nil)

	fb, err := svc.Ingest(context.Background(), submission("l1", "loops", 80), "key-1")

	require.NoError(t, err)
	assert.False(t, fb.Duplicate)
	assert.Equal(t, "orphaned-session", fb.SessionID)
	require.Len(t, store.records, 1)
	assert.Equal(t, "orphaned-session", store.records[0].SessionID)
}

func TestIngestWithoutFeedOrReservations(t *testing.T) {
	store := &fakeSessionStore{}
	svc := newTestIngest(store, nil, nil)

	fb, err := svc.Ingest(context.Background(), submission("l1", "loops", 80), "key-1")

	require.NoError(t, err)
	assert.NotEmpty(t, fb.SessionID)
	assert.Len(t, store.records, 1)
}

func TestLearnerLockReused(t *testing.T) {
	svc := newTestIngest(&fakeSessionStore{}, nil, nil)

	assert.Same(t, svc.learnerLock("l1"), svc.learnerLock("l1"))
	assert.NotSame(t, svc.learnerLock("l1"), svc.learnerLock("l2"))
}

func TestPriorBestFor(t *testing.T) {
	history := []model.SessionRecord{
		{ModuleID: "loops", Score: 50, MaxScore: 100},
		{ModuleID: "loops", Score: 80, MaxScore: 100},
		{ModuleID: "functions", Score: 90, MaxScore: 100},
	}

	best, found := priorBestFor(history, "loops")
	assert.True(t, found)
	assert.Equal(t, 80.0, best)

	_, found = priorBestFor(history, "recursion")
	assert.False(t, found)
}
