package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skill_insight_backend/internal/model"
)

func sessionAt(module string, score, max float64, minute int) model.SessionRecord {
	return model.SessionRecord{
		SessionID:   model.GenerateUUID(),
		LearnerID:   "l1",
		ModuleID:    module,
		WorkshopID:  module + "-w1",
		Score:       score,
		MaxScore:    max,
		SubmittedAt: time.Date(2026, 3, 1, 10, minute, 0, 0, time.UTC),
	}
}

func TestBuildFingerprintGroupsByModule(t *testing.T) {
	svc := NewFingerprintService(nil)

	records := []model.SessionRecord{
		sessionAt("loops", 40, 100, 0),
		sessionAt("functions", 90, 100, 1),
		sessionAt("loops", 60, 100, 2),
	}

	fp := svc.BuildFingerprint("l1", records)

	require.Len(t, fp.PerTopic, 2)
	assert.Equal(t, "l1", fp.LearnerID)

	loops := fp.PerTopic["loops"]
	assert.Equal(t, 2, loops.Attempts)
	assert.Equal(t, 50.0, loops.AverageScore)
	assert.Equal(t, 60.0, loops.BestScore)
	assert.Equal(t, 60.0, loops.LatestScore)

	functions := fp.PerTopic["functions"]
	assert.Equal(t, 1, functions.Attempts)
	assert.Equal(t, 90.0, functions.AverageScore)
}

func TestBuildFingerprintNormalizesScores(t *testing.T) {
	svc := NewFingerprintService(nil)

	records := []model.SessionRecord{
		sessionAt("loops", 7, 10, 0),  // 70%
		sessionAt("loops", 3, 5, 1),   // 60%
		sessionAt("loops", 12, 10, 2), // clamped to 100%
		sessionAt("loops", -2, 10, 3), // clamped to 0%
		sessionAt("loops", 50, 0, 4),  // invalid max treated as 0%
	}

	fp := svc.BuildFingerprint("l1", records)

	loops := fp.PerTopic["loops"]
	assert.Equal(t, 5, loops.Attempts)
	assert.Equal(t, 46.0, loops.AverageScore) // (70+60+100+0+0)/5
	assert.Equal(t, 100.0, loops.BestScore)
	assert.Equal(t, 0.0, loops.LatestScore)
}

func TestLearningVelocity(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single attempt has no trend", []float64{75}, 0},
		{"improving run is positive", []float64{40, 60, 90}, 11.666666666666666},
		{"declining run is negative", []float64{90, 60, 40}, -13.333333333333334},
		{"flat run is zero", []float64{70, 70, 70, 70}, 0},
		{"two attempts", []float64{50, 80}, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, learningVelocity(tt.scores), 1e-9)
		})
	}
}

func TestBuildFingerprintVelocityRounding(t *testing.T) {
	svc := NewFingerprintService(nil)

	records := []model.SessionRecord{
		sessionAt("loops", 40, 100, 0),
		sessionAt("loops", 60, 100, 1),
		sessionAt("loops", 90, 100, 2),
	}

	fp := svc.BuildFingerprint("l1", records)
	// (75 - 40) / 3 = 11.67 -> 一位小数
	assert.Equal(t, 11.7, fp.PerTopic["loops"].LearningVelocity)

	declining := []model.SessionRecord{
		sessionAt("loops", 90, 100, 0),
		sessionAt("loops", 60, 100, 1),
		sessionAt("loops", 40, 100, 2),
	}
	fp = svc.BuildFingerprint("l1", declining)
	assert.Equal(t, -13.3, fp.PerTopic["loops"].LearningVelocity)
}

func TestBuildFingerprintAveragesTimeAndHints(t *testing.T) {
	svc := NewFingerprintService(nil)

	first := sessionAt("loops", 80, 100, 0)
	first.TimeSeconds = 120
	first.HintsUsed = 1
	second := sessionAt("loops", 90, 100, 1)
	second.TimeSeconds = 250
	second.HintsUsed = 2

	fp := svc.BuildFingerprint("l1", []model.SessionRecord{first, second})

	loops := fp.PerTopic["loops"]
	assert.Equal(t, 185.0, loops.AverageTimeSeconds)
	assert.Equal(t, 1.5, loops.AverageHints)
}

func TestBuildFingerprintEmptyHistory(t *testing.T) {
	svc := NewFingerprintService(nil)

	fp := svc.BuildFingerprint("l1", nil)

	assert.Equal(t, "l1", fp.LearnerID)
	assert.Empty(t, fp.PerTopic)
	assert.Equal(t, 0.0, fp.OverallAverage())
	assert.Empty(t, fp.TopicIDs())
}

func TestBuildFingerprintDeterministic(t *testing.T) {
	svc := NewFingerprintService(nil)

	records := []model.SessionRecord{
		sessionAt("loops", 55, 100, 0),
		sessionAt("functions", 72, 100, 1),
		sessionAt("loops", 64, 100, 2),
		sessionAt("oop", 38, 100, 3),
	}

	first := svc.BuildFingerprint("l1", records)
	second := svc.BuildFingerprint("l1", records)

	assert.Equal(t, first.PerTopic, second.PerTopic)
	assert.Equal(t, []string{"functions", "loops", "oop"}, first.TopicIDs())
}

func TestOverallAverage(t *testing.T) {
	fp := model.SkillFingerprint{
		PerTopic: map[string]model.TopicStats{
			"loops":     {AverageScore: 60},
			"functions": {AverageScore: 90},
		},
	}
	assert.Equal(t, 75.0, fp.OverallAverage())
}
