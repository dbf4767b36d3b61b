package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skill_insight_backend/internal/model"
)

func quickFeedbackRecord(score, max float64) *model.SessionRecord {
	return &model.SessionRecord{
		SessionID:   "sess-1",
		LearnerID:   "l1",
		ModuleID:    "loops",
		WorkshopID:  "loops-w3",
		Score:       score,
		MaxScore:    max,
		SubmittedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestQuickFeedbackPersonalBest(t *testing.T) {
	svc := &ReportService{Settings: testSettings()}

	record := quickFeedbackRecord(100, 100)
	analysis := &model.SubmissionAnalysis{ErrorKind: model.ErrorKindNone, Feedback: "Excellent work!"}

	fb := svc.QuickFeedback(record, analysis, 85, true)

	assert.True(t, fb.IsPersonalBest)
	assert.Equal(t, 100.0, fb.NormalizedScore)
	assert.Equal(t, 85.0, fb.PriorBest)
	assert.Contains(t, fb.Notes, "New personal best!")
	assert.Equal(t, "Excellent work!", fb.Message)
	assert.False(t, fb.Duplicate)
}

func TestQuickFeedbackFirstAttempt(t *testing.T) {
	svc := &ReportService{Settings: testSettings()}

	record := quickFeedbackRecord(60, 100)
	analysis := &model.SubmissionAnalysis{ErrorKind: model.ErrorKindLogic}

	fb := svc.QuickFeedback(record, analysis, 0, false)

	assert.False(t, fb.IsPersonalBest)
	assert.Equal(t, 0.0, fb.PriorBest)
	assert.Contains(t, fb.Notes, "First attempt on this topic recorded.")
}

func TestQuickFeedbackBelowBest(t *testing.T) {
	svc := &ReportService{Settings: testSettings()}

	record := quickFeedbackRecord(70, 100)
	analysis := &model.SubmissionAnalysis{ErrorKind: model.ErrorKindLogic}

	fb := svc.QuickFeedback(record, analysis, 85, true)

	assert.False(t, fb.IsPersonalBest)
	assert.Contains(t, fb.Notes, "Below your best of 85.0%.")
}

func TestQuickFeedbackMatchingBestIsQuiet(t *testing.T) {
	svc := &ReportService{Settings: testSettings()}

	record := quickFeedbackRecord(85, 100)
	analysis := &model.SubmissionAnalysis{ErrorKind: model.ErrorKindLogic}

	fb := svc.QuickFeedback(record, analysis, 85, true)

	assert.False(t, fb.IsPersonalBest)
	for _, note := range fb.Notes {
		assert.NotContains(t, note, "personal best")
		assert.NotContains(t, note, "Below your best")
	}
}

func TestQuickFeedbackPaceNotes(t *testing.T) {
	svc := &ReportService{Settings: testSettings()}
	analysis := &model.SubmissionAnalysis{ErrorKind: model.ErrorKindLogic}

	t.Run("slow attempts get a pacing nudge", func(t *testing.T) {
		record := quickFeedbackRecord(80, 100)
		record.TimeSeconds = 700
		fb := svc.QuickFeedback(record, analysis, 85, true)
		assert.Contains(t, fb.Notes, "This one took 12 minutes; rerun it aiming for a quicker pass.")
	})

	t.Run("fast attempts get praised", func(t *testing.T) {
		record := quickFeedbackRecord(80, 100)
		record.TimeSeconds = 90
		fb := svc.QuickFeedback(record, analysis, 85, true)
		assert.Contains(t, fb.Notes, "Quick turnaround at 90 seconds.")
	})

	t.Run("missing duration stays silent", func(t *testing.T) {
		record := quickFeedbackRecord(80, 100)
		fb := svc.QuickFeedback(record, analysis, 85, true)
		for _, note := range fb.Notes {
			assert.NotContains(t, note, "minutes")
			assert.NotContains(t, note, "seconds")
		}
	})
}

func TestQuickFeedbackHintNotes(t *testing.T) {
	svc := &ReportService{Settings: testSettings()}

	t.Run("clean run without hints gets praised", func(t *testing.T) {
		record := quickFeedbackRecord(100, 100)
		fb := svc.QuickFeedback(record, &model.SubmissionAnalysis{ErrorKind: model.ErrorKindNone}, 85, true)
		assert.Contains(t, fb.Notes, "Solved without hints.")
	})

	t.Run("failed run without hints is not praised", func(t *testing.T) {
		record := quickFeedbackRecord(40, 100)
		fb := svc.QuickFeedback(record, &model.SubmissionAnalysis{ErrorKind: model.ErrorKindLogic}, 85, true)
		assert.NotContains(t, fb.Notes, "Solved without hints.")
	})

	t.Run("heavy hint usage gets nudged", func(t *testing.T) {
		record := quickFeedbackRecord(90, 100)
		record.HintsUsed = 3
		fb := svc.QuickFeedback(record, &model.SubmissionAnalysis{ErrorKind: model.ErrorKindLogic}, 85, true)
		assert.Contains(t, fb.Notes, "Used 3 hints; try the next attempt with fewer.")
	})
}

func TestReadinessAssessment(t *testing.T) {
	t.Run("critical gap blocks regardless of average", func(t *testing.T) {
		gaps := []model.SkillGap{
			{TopicID: "security", Severity: model.SeverityCritical, GapSize: 0.5},
		}
		got := readinessAssessment("l1", "backend-ready", 95, 80, gaps)

		assert.False(t, got.Ready)
		assert.Equal(t, "Not yet ready: 1 critical gap(s) must be closed first.", got.Summary)
		require.Len(t, got.Blockers, 1)
		assert.Equal(t, "security", got.Blockers[0].TopicID)
	})

	t.Run("below mastery bar blocks", func(t *testing.T) {
		gaps := []model.SkillGap{
			{TopicID: "loops", Severity: model.SeverityHigh, GapSize: 25},
			{TopicID: "oop", Severity: model.SeverityLow, GapSize: 5},
		}
		got := readinessAssessment("l1", "backend-ready", 72, 80, gaps)

		assert.False(t, got.Ready)
		assert.Equal(t, "Not yet ready: overall average 72.0% is below the 80% mastery bar.", got.Summary)
		require.Len(t, got.Blockers, 1)
		assert.Equal(t, "loops", got.Blockers[0].TopicID)
	})

	t.Run("ready when bar met and no critical gaps", func(t *testing.T) {
		gaps := []model.SkillGap{
			{TopicID: "oop", Severity: model.SeverityMedium, GapSize: 15},
		}
		got := readinessAssessment("l1", "backend-ready", 85.5, 80, gaps)

		assert.True(t, got.Ready)
		assert.Equal(t, "Ready to advance: overall average 85.5% meets the 80% mastery bar with no critical gaps.", got.Summary)
		assert.Empty(t, got.Blockers)
	})
}

func TestAssessmentTiers(t *testing.T) {
	tests := []struct {
		name    string
		overall float64
		hasData bool
		want    string
	}{
		{"no sessions", 0, false, "No Data"},
		{"excellent", 85, true, "Excellent"},
		{"good", 75, true, "Good"},
		{"fair", 60, true, "Fair"},
		{"needs work", 59.9, true, "Needs Work"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, assessmentFor(tt.overall, tt.hasData))
		})
	}
}

func TestTrendMapping(t *testing.T) {
	assert.Equal(t, "improving", trendFor(0.1))
	assert.Equal(t, "declining", trendFor(-0.1))
	assert.Equal(t, "stable", trendFor(0))

	assert.Equal(t, "↑", trendArrow("improving"))
	assert.Equal(t, "↓", trendArrow("declining"))
	assert.Equal(t, "→", trendArrow("stable"))
}

func TestStrengthsFor(t *testing.T) {
	topics := []model.TopicMastery{
		{TopicID: "loops", AverageScore: 92.5},
		{TopicID: "oop", AverageScore: 55},
		{TopicID: "functions", AverageScore: 88},
		{TopicID: "recursion", AverageScore: 80},
	}

	strengths := strengthsFor(topics, 80)

	assert.Equal(t, []string{
		"loops (average 92.5%)",
		"functions (average 88.0%)",
		"recursion (average 80.0%)",
	}, strengths)
}

func TestInsightsFor(t *testing.T) {
	t.Run("no topics yields no insights", func(t *testing.T) {
		assert.Nil(t, insightsFor(model.SkillFingerprint{}, 2, 600))
	})

	t.Run("observations stay grounded in stats", func(t *testing.T) {
		fp := model.SkillFingerprint{
			PerTopic: map[string]model.TopicStats{
				"loops":     {TopicID: "loops", Attempts: 2, AverageScore: 90, LearningVelocity: 5, AverageHints: 0.5, AverageTimeSeconds: 200},
				"functions": {TopicID: "functions", Attempts: 2, AverageScore: 60, LearningVelocity: -2, AverageHints: 3.5, AverageTimeSeconds: 250},
			},
		}

		insights := insightsFor(fp, 2, 600)

		assert.Contains(t, insights, "Scores are trending upward in 1 of 2 topics.")
		assert.Contains(t, insights, "Strongest topic: loops at 90.0%.")
		assert.Contains(t, insights, "Hint usage is high on functions.")
		// 加权平均恰好 2.0，不超过阈值，整体提示习惯不该被点名
		assert.NotContains(t, insights, "Hint reliance averages 2.0 per session; try a first pass without them.")
		assert.Contains(t, insights, "Solve times are brisk; make sure accuracy is keeping up.")
		assert.Contains(t, insights, "Only 4 session(s) recorded so far; more reps will firm up these trends.")
	})

	t.Run("sustained but slow and hint heavy practice", func(t *testing.T) {
		fp := model.SkillFingerprint{
			PerTopic: map[string]model.TopicStats{
				"oop": {TopicID: "oop", Attempts: 20, AverageScore: 70, AverageHints: 2.5, AverageTimeSeconds: 700},
			},
		}

		insights := insightsFor(fp, 2, 600)

		assert.Contains(t, insights, "Hint reliance averages 2.5 per session; try a first pass without them.")
		assert.Contains(t, insights, "Sessions average 12 minutes; practice for speed.")
		assert.Contains(t, insights, "20 sessions logged; practice volume is excellent.")
	})

	t.Run("independent quick solver", func(t *testing.T) {
		fp := model.SkillFingerprint{
			PerTopic: map[string]model.TopicStats{
				"functions": {TopicID: "functions", Attempts: 6, AverageScore: 85, AverageHints: 0.5, AverageTimeSeconds: 250},
			},
		}

		insights := insightsFor(fp, 2, 600)

		assert.Contains(t, insights, "Hints are rarely needed; independent problem-solving is a strength.")
		assert.Contains(t, insights, "Solve times are brisk; make sure accuracy is keeping up.")
		// 6 次处于中间地带，练习量不值得单独评论
		for _, insight := range insights {
			assert.NotContains(t, insight, "session(s) recorded")
			assert.NotContains(t, insight, "practice volume")
		}
	})
}

func TestRenderSkillReportMarkdown(t *testing.T) {
	svc := &ReportService{}

	report := &model.SkillReport{
		LearnerID:        "l1",
		Profile:          "backend-ready",
		MasteryThreshold: 80,
		Summary: model.ExecutiveSummary{
			TotalSessions:     6,
			TopicsPracticed:   2,
			OverallAverage:    71.3,
			OverallAssessment: "Fair",
			TotalTimeSeconds:  1800,
		},
		Topics: []model.TopicMastery{
			{TopicID: "functions", Attempts: 2, AverageScore: 88, BestScore: 95, LatestScore: 95, Trend: "improving"},
			{TopicID: "loops", Attempts: 4, AverageScore: 54.5, BestScore: 70, LatestScore: 42, Trend: "declining"},
		},
		Strengths: []string{"functions (average 88.0%)"},
		Gaps: []model.SkillGap{
			{TopicID: "loops", CurrentScore: 54.5, TargetScore: 80, GapSize: 25.5, Severity: model.SeverityHigh, Recommendation: "Retry the loops workshops."},
		},
		NextSteps: []model.SkillGap{
			{TopicID: "loops", Recommendation: "Retry the loops workshops."},
		},
		Insights:    []string{"Strongest topic: functions at 88.0%."},
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	md := svc.RenderSkillReportMarkdown(report)

	assert.True(t, strings.HasPrefix(md, "# Skill Report: l1\n"))
	assert.Contains(t, md, "## Summary")
	assert.Contains(t, md, "- Total sessions: 6")
	assert.Contains(t, md, "- Assessment: Fair")
	assert.Contains(t, md, "- Total practice time: 30 minutes")
	assert.Contains(t, md, "## Topic Mastery")
	assert.Contains(t, md, "| Topic | Attempts | Average | Best | Latest | Trend |")
	assert.Contains(t, md, "| functions | 2 | 88.0% | 95.0% | 95.0% | ↑ |")
	assert.Contains(t, md, "| loops | 4 | 54.5% | 70.0% | 42.0% | ↓ |")
	assert.Contains(t, md, "## Strengths")
	assert.Contains(t, md, "- functions (average 88.0%)")
	assert.Contains(t, md, "## Areas for Improvement")
	assert.Contains(t, md, "🟠 loops: 54.5% → target 80.0% (gap 25.5)")
	assert.Contains(t, md, "## Next Steps")
	assert.Contains(t, md, "1. Retry the loops workshops.")
	assert.Contains(t, md, "## Insights")
}

func TestRenderSkillReportMarkdownEmptyHistory(t *testing.T) {
	svc := &ReportService{}

	report := &model.SkillReport{
		LearnerID: "l1",
		Profile:   "backend-ready",
		Summary:   model.ExecutiveSummary{OverallAssessment: "No Data"},
	}

	md := svc.RenderSkillReportMarkdown(report)

	assert.Contains(t, md, "No practice sessions recorded yet.")
	assert.Contains(t, md, "No topics at mastery level yet.")
	assert.Contains(t, md, "No skill gaps detected. Keep it up!")
	assert.NotContains(t, md, "## Next Steps")
}

func TestRenderGapReportMarkdown(t *testing.T) {
	svc := &ReportService{}

	t.Run("groups gaps by severity", func(t *testing.T) {
		report := &model.GapReport{
			LearnerID: "l1",
			Profile:   "backend-ready",
			Gaps: []model.SkillGap{
				{TopicID: "security", CurrentScore: 30, TargetScore: 90, GapSize: 60, Severity: model.SeverityCritical, Attempts: 1, Recommendation: "Start here."},
				{TopicID: "loops", CurrentScore: 55, TargetScore: 80, GapSize: 25, Severity: model.SeverityHigh, Attempts: 2, Recommendation: "Retry loops."},
			},
			GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		}

		md := svc.RenderGapReportMarkdown(report)

		assert.Contains(t, md, "# Skill Gap Report: l1")
		assert.Contains(t, md, "## 🔴 Critical")
		assert.Contains(t, md, "- **security**: current 30.0% / target 90.0% (gap 60.0, 1 attempts)")
		assert.Contains(t, md, "## 🟠 High")
		assert.Contains(t, md, "- **loops**: current 55.0% / target 80.0% (gap 25.0, 2 attempts)")
		assert.Contains(t, md, "  - Retry loops.")
		assert.NotContains(t, md, "## 🟡 Medium")
	})

	t.Run("zero gaps renders a clean bill", func(t *testing.T) {
		report := &model.GapReport{
			LearnerID:   "l1",
			Profile:     "backend-ready",
			GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		}

		md := svc.RenderGapReportMarkdown(report)

		assert.Contains(t, md, `No skill gaps detected against profile "backend-ready".`)
	})
}

func TestRenderProgressMarkdown(t *testing.T) {
	svc := &ReportService{}

	first := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	last := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)
	summary := &model.ProgressSummary{
		LearnerID:        "l1",
		TotalSessions:    9,
		ModulesPracticed: 3,
		AverageScore:     74.2,
		TotalTimeSeconds: 5400,
		TotalHintsUsed:   7,
		FirstSessionAt:   &first,
		LastSessionAt:    &last,
	}
	fp := model.SkillFingerprint{
		PerTopic: map[string]model.TopicStats{
			"functions": {TopicID: "functions", Attempts: 3, AverageScore: 88},
			"loops":     {TopicID: "loops", Attempts: 4, AverageScore: 74},
			"oop":       {TopicID: "oop", Attempts: 2, AverageScore: 52},
		},
	}

	md := svc.RenderProgressMarkdown(summary, fp)

	assert.Contains(t, md, "# Progress Summary: l1")
	assert.Contains(t, md, "- Sessions: 9")
	assert.Contains(t, md, "- Modules practiced: 3")
	assert.Contains(t, md, "- Total time: 90 minutes")
	assert.Contains(t, md, "## Module Status")
	assert.Contains(t, md, "| functions | 3 | 88.0% | ✅ |")
	assert.Contains(t, md, "| loops | 4 | 74.0% | ⚠️ |")
	assert.Contains(t, md, "| oop | 2 | 52.0% | ❌ |")
}
