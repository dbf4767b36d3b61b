package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"skill_insight_backend/internal/config"
	"skill_insight_backend/internal/model"
	"skill_insight_backend/internal/util"
)

func testSettings() *AnalyticsSettings {
	return NewAnalyticsSettings(&config.AnalyticsConfig{
		MasteryThreshold:      80,
		DefaultProfile:        "default",
		MaxRecommendations:    3,
		HighHintThreshold:     2,
		LowScoreThreshold:     60,
		SlowTimeSeconds:       600,
		IdempotencyTTLMinutes: 1440,
	})
}

func fingerprintWith(stats map[string]model.TopicStats) model.SkillFingerprint {
	return model.SkillFingerprint{LearnerID: "l1", PerTopic: stats}
}

func profileWith(topics ...model.TargetTopic) *model.TargetProfile {
	return &model.TargetProfile{Name: "backend-ready", Topics: topics}
}

func TestDetectGapsBelowTarget(t *testing.T) {
	svc := &GapService{Settings: testSettings()}

	fp := fingerprintWith(map[string]model.TopicStats{
		"loops": {TopicID: "loops", Attempts: 2, AverageScore: 55},
	})
	profile := profileWith(model.TargetTopic{TopicID: "loops", TargetScore: 80, Importance: model.ImportanceHigh})

	gaps := svc.DetectGaps(fp, profile)

	require.Len(t, gaps, 1)
	gap := gaps[0]
	assert.Equal(t, "loops", gap.TopicID)
	assert.Equal(t, 55.0, gap.CurrentScore)
	assert.Equal(t, 80.0, gap.TargetScore)
	assert.Equal(t, 25.0, gap.GapSize)
	assert.Equal(t, model.SeverityHigh, gap.Severity)
	assert.Equal(t, 2, gap.Attempts)
	assert.Equal(t, "Retry the loops workshops; your average of 55.0% after 2 attempts leaves room to grow.", gap.Recommendation)
}

func TestDetectGapsAboveTargetEmitsNothing(t *testing.T) {
	svc := &GapService{Settings: testSettings()}

	fp := fingerprintWith(map[string]model.TopicStats{
		"loops": {TopicID: "loops", Attempts: 4, AverageScore: 92},
	})
	profile := profileWith(model.TargetTopic{TopicID: "loops", TargetScore: 80, Importance: model.ImportanceLow})

	assert.Empty(t, svc.DetectGaps(fp, profile))
}

func TestDetectGapsCriticalShortfall(t *testing.T) {
	svc := &GapService{Settings: testSettings()}

	t.Run("tiny shortfall on critical topic still surfaces", func(t *testing.T) {
		fp := fingerprintWith(map[string]model.TopicStats{
			"security": {TopicID: "security", Attempts: 3, AverageScore: 79.5},
		})
		profile := profileWith(model.TargetTopic{TopicID: "security", TargetScore: 80, Importance: model.ImportanceCritical})

		gaps := svc.DetectGaps(fp, profile)

		require.Len(t, gaps, 1)
		assert.Equal(t, 0.5, gaps[0].GapSize)
		assert.Equal(t, model.SeverityCritical, gaps[0].Severity)
	})

	t.Run("critical topic at target stays silent", func(t *testing.T) {
		fp := fingerprintWith(map[string]model.TopicStats{
			"security": {TopicID: "security", Attempts: 3, AverageScore: 85},
		})
		profile := profileWith(model.TargetTopic{TopicID: "security", TargetScore: 80, Importance: model.ImportanceCritical})

		assert.Empty(t, svc.DetectGaps(fp, profile))
	})
}

func TestDetectGapsUnattemptedTopic(t *testing.T) {
	svc := &GapService{Settings: testSettings()}

	profile := profileWith(model.TargetTopic{TopicID: "recursion", TargetScore: 75, Importance: model.ImportanceMedium})

	gaps := svc.DetectGaps(fingerprintWith(nil), profile)

	require.Len(t, gaps, 1)
	gap := gaps[0]
	assert.Equal(t, 0.0, gap.CurrentScore)
	assert.Equal(t, 75.0, gap.GapSize)
	assert.Equal(t, 0, gap.Attempts)
	assert.Equal(t, model.SeverityCritical, gap.Severity)
	assert.Equal(t, "Start with the introductory workshops for recursion to build a baseline.", gap.Recommendation)
}

func TestDetectGapsRoundsGapSize(t *testing.T) {
	svc := &GapService{Settings: testSettings()}

	fp := fingerprintWith(map[string]model.TopicStats{
		"loops": {TopicID: "loops", Attempts: 3, AverageScore: 54.33},
	})
	profile := profileWith(model.TargetTopic{TopicID: "loops", TargetScore: 80, Importance: model.ImportanceMedium})

	gaps := svc.DetectGaps(fp, profile)

	require.Len(t, gaps, 1)
	assert.Equal(t, 25.7, gaps[0].GapSize)
}

func TestDetectGapsOrdering(t *testing.T) {
	svc := &GapService{Settings: testSettings()}

	fp := fingerprintWith(map[string]model.TopicStats{
		"worst":   {TopicID: "worst", Attempts: 1, AverageScore: 50},
		"fading":  {TopicID: "fading", Attempts: 1, AverageScore: 60},
		"flagged": {TopicID: "flagged", Attempts: 1, AverageScore: 70},
		"minor":   {TopicID: "minor", Attempts: 1, AverageScore: 50},
	})
	// minor 差 20 中等；flagged 差 20 但重要度高；worst 差 45 关键；fading 差 30 高
	profile := profileWith(
		model.TargetTopic{TopicID: "minor", TargetScore: 70, Importance: model.ImportanceMedium},
		model.TargetTopic{TopicID: "flagged", TargetScore: 90, Importance: model.ImportanceHigh},
		model.TargetTopic{TopicID: "worst", TargetScore: 95, Importance: model.ImportanceMedium},
		model.TargetTopic{TopicID: "fading", TargetScore: 90, Importance: model.ImportanceMedium},
	)

	gaps := svc.DetectGaps(fp, profile)

	require.Len(t, gaps, 4)
	got := make([]string, 0, len(gaps))
	for _, gap := range gaps {
		got = append(got, gap.TopicID)
	}
	// critical 最前；同为 high 时差距大者在前
	assert.Equal(t, []string{"worst", "fading", "flagged", "minor"}, got)
}

func TestDetectGapsTieBreakByTopicID(t *testing.T) {
	svc := &GapService{Settings: testSettings()}

	fp := fingerprintWith(map[string]model.TopicStats{
		"beta":  {TopicID: "beta", Attempts: 1, AverageScore: 50},
		"alpha": {TopicID: "alpha", Attempts: 1, AverageScore: 50},
	})
	profile := profileWith(
		model.TargetTopic{TopicID: "beta", TargetScore: 70, Importance: model.ImportanceMedium},
		model.TargetTopic{TopicID: "alpha", TargetScore: 70, Importance: model.ImportanceMedium},
	)

	gaps := svc.DetectGaps(fp, profile)

	require.Len(t, gaps, 2)
	assert.Equal(t, "alpha", gaps[0].TopicID)
	assert.Equal(t, "beta", gaps[1].TopicID)
}

func TestSeverityBands(t *testing.T) {
	tests := []struct {
		name       string
		gapSize    float64
		importance model.Importance
		shortfall  bool
		want       model.Severity
	}{
		{"forty and above is critical", 40, model.ImportanceLow, false, model.SeverityCritical},
		{"critical shortfall overrides size", 0.5, model.ImportanceCritical, true, model.SeverityCritical},
		{"twenty five is high", 25, model.ImportanceMedium, false, model.SeverityHigh},
		{"high importance lifts small gaps", 5, model.ImportanceHigh, false, model.SeverityHigh},
		{"fifteen is medium", 15, model.ImportanceMedium, false, model.SeverityMedium},
		{"below fifteen is low", 14.9, model.ImportanceMedium, false, model.SeverityLow},
		{"just under forty is high", 39.9, model.ImportanceLow, false, model.SeverityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, severityFor(tt.gapSize, tt.importance, tt.shortfall))
		})
	}
}

func TestRecommendationPriority(t *testing.T) {
	svc := &GapService{Settings: testSettings()}

	tests := []struct {
		name      string
		stats     model.TopicStats
		attempted bool
		want      string
	}{
		{
			"never attempted",
			model.TopicStats{},
			false,
			"Start with the introductory workshops for loops to build a baseline.",
		},
		{
			"hint heavy beats low score",
			model.TopicStats{Attempts: 3, AverageScore: 50, AverageHints: 3, AverageTimeSeconds: 700},
			true,
			"Review the fundamentals of loops; you averaged 3.0 hints per attempt.",
		},
		{
			"repeated low scores",
			model.TopicStats{Attempts: 2, AverageScore: 50, AverageHints: 1},
			true,
			"Retry the loops workshops; your average of 50.0% after 2 attempts leaves room to grow.",
		},
		{
			"single low attempt is not retry-worthy yet",
			model.TopicStats{Attempts: 1, AverageScore: 30},
			true,
			"Focus on loops to close the remaining 10.0 point gap.",
		},
		{
			"slow but accurate",
			model.TopicStats{Attempts: 3, AverageScore: 70, AverageTimeSeconds: 700},
			true,
			"Practice loops for speed; attempts average 12 minutes.",
		},
		{
			"default focus message",
			model.TopicStats{Attempts: 3, AverageScore: 70, AverageTimeSeconds: 100},
			true,
			"Focus on loops to close the remaining 10.0 point gap.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.recommendationFor("loops", tt.stats, tt.attempted, 10.0))
		})
	}
}

func TestPrioritizeNextWorkshops(t *testing.T) {
	svc := &GapService{Settings: testSettings()}

	gaps := []model.SkillGap{
		{TopicID: "a"}, {TopicID: "b"}, {TopicID: "c"}, {TopicID: "d"}, {TopicID: "e"},
	}

	t.Run("takes the top slice", func(t *testing.T) {
		top := svc.PrioritizeNextWorkshops(gaps, 3)
		require.Len(t, top, 3)
		assert.Equal(t, "a", top[0].TopicID)
		assert.Equal(t, "c", top[2].TopicID)
	})

	t.Run("clamps to available gaps", func(t *testing.T) {
		assert.Len(t, svc.PrioritizeNextWorkshops(gaps, 10), 5)
	})

	t.Run("zero or negative max yields nothing", func(t *testing.T) {
		assert.Empty(t, svc.PrioritizeNextWorkshops(gaps, 0))
		assert.Empty(t, svc.PrioritizeNextWorkshops(gaps, -1))
	})
}

type fakeProfileStore struct {
	profile   *model.TargetProfile
	err       error
	requested string
}

func (f *fakeProfileStore) FindByName(name string) (*model.TargetProfile, error) {
	f.requested = name
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func TestEvaluateSurfacesProfileProblems(t *testing.T) {
	t.Run("empty profile is a configuration error, not an empty gap list", func(t *testing.T) {
		store := &fakeProfileStore{profile: &model.TargetProfile{Name: "blank"}}
		svc := NewGapService(store, nil, testSettings())

		_, gaps, _, err := svc.Evaluate("l1", "blank")

		assert.ErrorIs(t, err, util.ErrTargetProfileEmpty)
		assert.Nil(t, gaps)
	})

	t.Run("unknown profile maps to the not found sentinel", func(t *testing.T) {
		store := &fakeProfileStore{err: gorm.ErrRecordNotFound}
		svc := NewGapService(store, nil, testSettings())

		_, _, _, err := svc.Evaluate("l1", "missing")

		assert.ErrorIs(t, err, util.ErrTargetProfileNotFound)
	})

	t.Run("blank profile name falls back to the configured default", func(t *testing.T) {
		store := &fakeProfileStore{err: gorm.ErrRecordNotFound}
		svc := NewGapService(store, nil, testSettings())

		svc.Evaluate("l1", "")

		assert.Equal(t, "default", store.requested)
	})

	t.Run("store failures pass through untranslated", func(t *testing.T) {
		store := &fakeProfileStore{err: errors.New("connection refused")}
		svc := NewGapService(store, nil, testSettings())

		_, _, _, err := svc.Evaluate("l1", "default")

		assert.EqualError(t, err, "connection refused")
	})
}
