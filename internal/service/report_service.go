package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"skill_insight_backend/internal/model"
	"skill_insight_backend/internal/repository"
	"skill_insight_backend/internal/util"
	"skill_insight_backend/pkg/monitoring"
)

// ReportService 把画像与差距渲染成结构化报告和 markdown 文本
// 渲染方法都是纯函数，落盘归档由 ArchiveService 单独承担
type ReportService struct {
	Gap         *GapService
	Fingerprint *FingerprintService
	SessionRepo *repository.SessionRepository
	Settings    *AnalyticsSettings
}

func NewReportService(gap *GapService, fingerprint *FingerprintService, sessionRepo *repository.SessionRepository, settings *AnalyticsSettings) *ReportService {
	return &ReportService{
		Gap:         gap,
		Fingerprint: fingerprint,
		SessionRepo: sessionRepo,
		Settings:    settings,
	}
}

// BuildSkillReport 汇总画像、强项、差距与后续建议成完整技能报告
func (s *ReportService) BuildSkillReport(learnerID, profileName string, threshold float64) (*model.SkillReport, error) {
	if threshold <= 0 {
		threshold = s.Settings.MasteryThreshold()
	}
	fingerprint, gaps, profile, err := s.Gap.Evaluate(learnerID, profileName)
	if err != nil {
		return nil, err
	}

	topics := make([]model.TopicMastery, 0, len(fingerprint.PerTopic))
	totalSessions := 0
	totalTime := 0.0
	for _, topicID := range fingerprint.TopicIDs() {
		stats := fingerprint.PerTopic[topicID]
		totalSessions += stats.Attempts
		totalTime += stats.AverageTimeSeconds * float64(stats.Attempts)
		topics = append(topics, model.TopicMastery{
			TopicID:          topicID,
			Attempts:         stats.Attempts,
			AverageScore:     stats.AverageScore,
			BestScore:        stats.BestScore,
			LatestScore:      stats.LatestScore,
			LearningVelocity: stats.LearningVelocity,
			Trend:            trendFor(stats.LearningVelocity),
		})
	}

	overall := round1(fingerprint.OverallAverage())
	report := &model.SkillReport{
		LearnerID:        learnerID,
		Profile:          profile.Name,
		MasteryThreshold: threshold,
		Summary: model.ExecutiveSummary{
			TotalSessions:     totalSessions,
			TopicsPracticed:   len(topics),
			OverallAverage:    overall,
			OverallAssessment: assessmentFor(overall, totalSessions > 0),
			TotalTimeSeconds:  round1(totalTime),
		},
		Topics:      topics,
		Strengths:   strengthsFor(topics, threshold),
		Gaps:        gaps,
		NextSteps:   s.Gap.PrioritizeNextWorkshops(gaps, s.Settings.MaxRecommendations()),
		Insights:    insightsFor(fingerprint, s.Settings.HighHintThreshold(), s.Settings.SlowTimeSeconds()),
		GeneratedAt: time.Now(),
	}
	monitoring.ReportCounter.WithLabelValues("skill_report").Inc()
	return report, nil
}

// QuickFeedback 从单次提交的分析结果生成即时反馈
// priorBest 是本次提交之前该主题的最高归一化得分，hasPrior 为 false 表示首次练习
func (s *ReportService) QuickFeedback(record *model.SessionRecord, analysis *model.SubmissionAnalysis, priorBest float64, hasPrior bool) *model.QuickFeedback {
	normalized := round1(record.NormalizedScore())

	feedback := &model.QuickFeedback{
		SessionID:        record.SessionID,
		LearnerID:        record.LearnerID,
		ModuleID:         record.ModuleID,
		WorkshopID:       record.WorkshopID,
		Score:            record.Score,
		MaxScore:         record.MaxScore,
		NormalizedScore:  normalized,
		ErrorKind:        analysis.ErrorKind,
		DetectedPatterns: analysis.DetectedPatterns,
		Message:          analysis.Feedback,
		PriorBest:        round1(priorBest),
	}

	switch {
	case !hasPrior:
		feedback.PriorBest = 0
		feedback.Notes = append(feedback.Notes, "First attempt on this topic recorded.")
	case normalized > feedback.PriorBest:
		feedback.IsPersonalBest = true
		feedback.Notes = append(feedback.Notes, "New personal best!")
	case normalized < feedback.PriorBest:
		feedback.Notes = append(feedback.Notes, fmt.Sprintf("Below your best of %.1f%%.", feedback.PriorBest))
	}

	slow := s.Settings.SlowTimeSeconds()
	switch {
	case record.TimeSeconds > slow:
		feedback.Notes = append(feedback.Notes, fmt.Sprintf("This one took %.0f minutes; rerun it aiming for a quicker pass.", record.TimeSeconds/60))
	case record.TimeSeconds > 0 && record.TimeSeconds < 180:
		feedback.Notes = append(feedback.Notes, fmt.Sprintf("Quick turnaround at %.0f seconds.", record.TimeSeconds))
	}

	switch {
	case record.HintsUsed == 0 && analysis.ErrorKind == model.ErrorKindNone:
		feedback.Notes = append(feedback.Notes, "Solved without hints.")
	case float64(record.HintsUsed) > s.Settings.HighHintThreshold():
		feedback.Notes = append(feedback.Notes, fmt.Sprintf("Used %d hints; try the next attempt with fewer.", record.HintsUsed))
	}

	return feedback
}

// BuildReadiness 判断学习者是否达到进阶条件
func (s *ReportService) BuildReadiness(learnerID, profileName string, threshold float64) (*model.ReadinessAssessment, error) {
	if threshold <= 0 {
		threshold = s.Settings.MasteryThreshold()
	}
	fingerprint, gaps, profile, err := s.Gap.Evaluate(learnerID, profileName)
	if err != nil {
		return nil, err
	}

	assessment := readinessAssessment(learnerID, profile.Name, round1(fingerprint.OverallAverage()), threshold, gaps)
	monitoring.ReportCounter.WithLabelValues("readiness").Inc()
	return assessment, nil
}

// readinessAssessment 有任何关键差距就一票否决，总均分再高也不放行
func readinessAssessment(learnerID, profileName string, overall, threshold float64, gaps []model.SkillGap) *model.ReadinessAssessment {
	criticalCount := 0
	var blockers []model.SkillGap
	for _, gap := range gaps {
		if gap.Severity == model.SeverityCritical {
			criticalCount++
		}
		if gap.Severity == model.SeverityCritical || gap.Severity == model.SeverityHigh {
			blockers = append(blockers, gap)
		}
	}

	assessment := &model.ReadinessAssessment{
		LearnerID:        learnerID,
		Profile:          profileName,
		OverallAverage:   overall,
		MasteryThreshold: threshold,
	}

	switch {
	case criticalCount > 0:
		assessment.Summary = fmt.Sprintf("Not yet ready: %d critical gap(s) must be closed first.", criticalCount)
		assessment.Blockers = blockers
	case overall < threshold:
		assessment.Summary = fmt.Sprintf("Not yet ready: overall average %.1f%% is below the %.0f%% mastery bar.", overall, threshold)
		assessment.Blockers = blockers
	default:
		assessment.Ready = true
		assessment.Summary = fmt.Sprintf("Ready to advance: overall average %.1f%% meets the %.0f%% mastery bar with no critical gaps.", overall, threshold)
	}

	return assessment
}

// BuildProgress 汇总全量会话历史的整体进度
func (s *ReportService) BuildProgress(learnerID string) (*model.ProgressSummary, error) {
	records, err := s.SessionRepo.FindByLearner(learnerID)
	if err != nil {
		return nil, err
	}

	summary := &model.ProgressSummary{LearnerID: learnerID, TotalSessions: len(records)}
	if len(records) == 0 {
		return summary, nil
	}

	modules := make(map[string]struct{})
	var totalScore, totalTime float64
	for i := range records {
		modules[records[i].ModuleID] = struct{}{}
		totalScore += records[i].NormalizedScore()
		totalTime += records[i].TimeSeconds
		summary.TotalHintsUsed += records[i].HintsUsed
	}
	first := records[0].SubmittedAt
	last := records[len(records)-1].SubmittedAt

	summary.ModulesPracticed = len(modules)
	summary.AverageScore = round1(totalScore / float64(len(records)))
	summary.TotalTimeSeconds = round1(totalTime)
	summary.FirstSessionAt = &first
	summary.LastSessionAt = &last

	monitoring.ReportCounter.WithLabelValues("progress").Inc()
	return summary, nil
}

// RenderSkillReportMarkdown 把技能报告渲染成 markdown 文本
func (s *ReportService) RenderSkillReportMarkdown(report *model.SkillReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Skill Report: %s\n\n", report.LearnerID)
	fmt.Fprintf(&b, "Generated: %s | Profile: %s | Mastery threshold: %.0f%%\n\n",
		report.GeneratedAt.Format(util.TimeFormat), report.Profile, report.MasteryThreshold)

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Total sessions: %d\n", report.Summary.TotalSessions)
	fmt.Fprintf(&b, "- Topics practiced: %d\n", report.Summary.TopicsPracticed)
	fmt.Fprintf(&b, "- Overall average: %.1f%%\n", report.Summary.OverallAverage)
	fmt.Fprintf(&b, "- Assessment: %s\n", report.Summary.OverallAssessment)
	fmt.Fprintf(&b, "- Total practice time: %.0f minutes\n\n", report.Summary.TotalTimeSeconds/60)

	b.WriteString("## Topic Mastery\n\n")
	if len(report.Topics) == 0 {
		b.WriteString("No practice sessions recorded yet.\n\n")
	} else {
		b.WriteString("| Topic | Attempts | Average | Best | Latest | Trend |\n")
		b.WriteString("|-------|---------:|--------:|-----:|-------:|:-----:|\n")
		for _, topic := range report.Topics {
			fmt.Fprintf(&b, "| %s | %d | %.1f%% | %.1f%% | %.1f%% | %s |\n",
				topic.TopicID, topic.Attempts, topic.AverageScore, topic.BestScore, topic.LatestScore, trendArrow(topic.Trend))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Strengths\n\n")
	if len(report.Strengths) == 0 {
		b.WriteString("No topics at mastery level yet.\n\n")
	} else {
		for _, strength := range report.Strengths {
			fmt.Fprintf(&b, "- %s\n", strength)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Areas for Improvement\n\n")
	if len(report.Gaps) == 0 {
		b.WriteString("No skill gaps detected. Keep it up!\n\n")
	} else {
		for _, gap := range report.Gaps {
			fmt.Fprintf(&b, "- %s %s: %.1f%% → target %.1f%% (gap %.1f)\n",
				severityIcon(gap.Severity), gap.TopicID, gap.CurrentScore, gap.TargetScore, gap.GapSize)
		}
		b.WriteString("\n")
	}

	if len(report.NextSteps) > 0 {
		b.WriteString("## Next Steps\n\n")
		for i, step := range report.NextSteps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step.Recommendation)
		}
		b.WriteString("\n")
	}

	if len(report.Insights) > 0 {
		b.WriteString("## Insights\n\n")
		for _, insight := range report.Insights {
			fmt.Fprintf(&b, "- %s\n", insight)
		}
	}

	return b.String()
}

// RenderGapReportMarkdown 差距清单按严重程度分组渲染
func (s *ReportService) RenderGapReportMarkdown(report *model.GapReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Skill Gap Report: %s\n\n", report.LearnerID)
	fmt.Fprintf(&b, "Profile: %s | Generated: %s\n\n", report.Profile, report.GeneratedAt.Format(util.TimeFormat))

	if len(report.Gaps) == 0 {
		fmt.Fprintf(&b, "No skill gaps detected against profile %q.\n", report.Profile)
		return b.String()
	}

	order := []model.Severity{model.SeverityCritical, model.SeverityHigh, model.SeverityMedium, model.SeverityLow}
	titles := map[model.Severity]string{
		model.SeverityCritical: "Critical",
		model.SeverityHigh:     "High",
		model.SeverityMedium:   "Medium",
		model.SeverityLow:      "Low",
	}
	for _, severity := range order {
		var group []model.SkillGap
		for _, gap := range report.Gaps {
			if gap.Severity == severity {
				group = append(group, gap)
			}
		}
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s %s\n\n", severityIcon(severity), titles[severity])
		for _, gap := range group {
			fmt.Fprintf(&b, "- **%s**: current %.1f%% / target %.1f%% (gap %.1f, %d attempts)\n",
				gap.TopicID, gap.CurrentScore, gap.TargetScore, gap.GapSize, gap.Attempts)
			fmt.Fprintf(&b, "  - %s\n", gap.Recommendation)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderProgressMarkdown 进度概览加每个模块的达标状态表
func (s *ReportService) RenderProgressMarkdown(summary *model.ProgressSummary, fingerprint model.SkillFingerprint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Progress Summary: %s\n\n", summary.LearnerID)
	fmt.Fprintf(&b, "- Sessions: %d\n", summary.TotalSessions)
	fmt.Fprintf(&b, "- Modules practiced: %d\n", summary.ModulesPracticed)
	fmt.Fprintf(&b, "- Average score: %.1f%%\n", summary.AverageScore)
	fmt.Fprintf(&b, "- Total time: %.0f minutes\n", summary.TotalTimeSeconds/60)
	fmt.Fprintf(&b, "- Hints used: %d\n", summary.TotalHintsUsed)
	if summary.FirstSessionAt != nil {
		fmt.Fprintf(&b, "- First session: %s\n", summary.FirstSessionAt.Format(util.TimeFormat))
	}
	if summary.LastSessionAt != nil {
		fmt.Fprintf(&b, "- Latest session: %s\n", summary.LastSessionAt.Format(util.TimeFormat))
	}

	if len(fingerprint.PerTopic) == 0 {
		return b.String()
	}

	b.WriteString("\n## Module Status\n\n")
	b.WriteString("| Module | Attempts | Average | Status |\n")
	b.WriteString("|--------|---------:|--------:|:------:|\n")
	for _, topicID := range fingerprint.TopicIDs() {
		stats := fingerprint.PerTopic[topicID]
		fmt.Fprintf(&b, "| %s | %d | %.1f%% | %s |\n", topicID, stats.Attempts, stats.AverageScore, statusIcon(stats.AverageScore))
	}

	return b.String()
}

func trendFor(velocity float64) string {
	switch {
	case velocity > 0:
		return "improving"
	case velocity < 0:
		return "declining"
	default:
		return "stable"
	}
}

func trendArrow(trend string) string {
	switch trend {
	case "improving":
		return "↑"
	case "declining":
		return "↓"
	default:
		return "→"
	}
}

func assessmentFor(overall float64, hasData bool) string {
	switch {
	case !hasData:
		return "No Data"
	case overall >= 85:
		return "Excellent"
	case overall >= 75:
		return "Good"
	case overall >= 60:
		return "Fair"
	default:
		return "Needs Work"
	}
}

func severityIcon(severity model.Severity) string {
	switch severity {
	case model.SeverityCritical:
		return "🔴"
	case model.SeverityHigh:
		return "🟠"
	case model.SeverityMedium:
		return "🟡"
	default:
		return "🟢"
	}
}

func statusIcon(average float64) string {
	switch {
	case average >= 80:
		return "✅"
	case average >= 70:
		return "⚠️"
	default:
		return "❌"
	}
}

// strengthsFor 达标主题按均分从高到低列出
func strengthsFor(topics []model.TopicMastery, threshold float64) []string {
	var strong []model.TopicMastery
	for _, topic := range topics {
		if topic.AverageScore >= threshold {
			strong = append(strong, topic)
		}
	}
	sort.Slice(strong, func(i, j int) bool {
		if strong[i].AverageScore != strong[j].AverageScore {
			return strong[i].AverageScore > strong[j].AverageScore
		}
		return strong[i].TopicID < strong[j].TopicID
	})

	strengths := make([]string, 0, len(strong))
	for _, topic := range strong {
		strengths = append(strengths, fmt.Sprintf("%s (average %.1f%%)", topic.TopicID, topic.AverageScore))
	}
	return strengths
}

// insightsFor 从画像里提炼几条可解释的观察，规则固定保证可复现
func insightsFor(fingerprint model.SkillFingerprint, highHintThreshold, slowTimeSeconds float64) []string {
	topicIDs := fingerprint.TopicIDs()
	if len(topicIDs) == 0 {
		return nil
	}

	var insights []string

	improving := 0
	for _, id := range topicIDs {
		if fingerprint.PerTopic[id].LearningVelocity > 0 {
			improving++
		}
	}
	if improving > 0 {
		insights = append(insights, fmt.Sprintf("Scores are trending upward in %d of %d topics.", improving, len(topicIDs)))
	}

	strongest := topicIDs[0]
	for _, id := range topicIDs[1:] {
		if fingerprint.PerTopic[id].AverageScore > fingerprint.PerTopic[strongest].AverageScore {
			strongest = id
		}
	}
	insights = append(insights, fmt.Sprintf("Strongest topic: %s at %.1f%%.", strongest, fingerprint.PerTopic[strongest].AverageScore))

	var hintHeavy []string
	for _, id := range topicIDs {
		if fingerprint.PerTopic[id].AverageHints > highHintThreshold {
			hintHeavy = append(hintHeavy, id)
		}
	}
	if len(hintHeavy) > 0 {
		insights = append(insights, fmt.Sprintf("Hint usage is high on %s.", strings.Join(hintHeavy, ", ")))
	}

	// 整体习惯观察需要跨主题加权，权重是各主题的练习次数
	totalSessions := 0
	weightedHints := 0.0
	weightedTime := 0.0
	for _, id := range topicIDs {
		stats := fingerprint.PerTopic[id]
		totalSessions += stats.Attempts
		weightedHints += stats.AverageHints * float64(stats.Attempts)
		weightedTime += stats.AverageTimeSeconds * float64(stats.Attempts)
	}
	if totalSessions == 0 {
		return insights
	}
	overallHints := weightedHints / float64(totalSessions)
	overallTime := weightedTime / float64(totalSessions)

	switch {
	case overallHints > highHintThreshold:
		insights = append(insights, fmt.Sprintf("Hint reliance averages %.1f per session; try a first pass without them.", overallHints))
	case overallHints < 1:
		insights = append(insights, "Hints are rarely needed; independent problem-solving is a strength.")
	}

	switch {
	case overallTime > slowTimeSeconds:
		insights = append(insights, fmt.Sprintf("Sessions average %.0f minutes; practice for speed.", overallTime/60))
	case overallTime > 0 && overallTime < 300:
		insights = append(insights, "Solve times are brisk; make sure accuracy is keeping up.")
	}

	switch {
	case totalSessions < 5:
		insights = append(insights, fmt.Sprintf("Only %d session(s) recorded so far; more reps will firm up these trends.", totalSessions))
	case totalSessions >= 20:
		insights = append(insights, fmt.Sprintf("%d sessions logged; practice volume is excellent.", totalSessions))
	}

	return insights
}
