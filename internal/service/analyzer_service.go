package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"skill_insight_backend/internal/model"
)

// patternDetector 结构化语法检测条目：命中即打标签
// 新增语法结构只需追加条目，不改动既有检测逻辑
type patternDetector struct {
	Tag   model.PatternTag
	Match func(code string) bool
}

func regexDetector(tag model.PatternTag, expr string) patternDetector {
	re := regexp.MustCompile(expr)
	return patternDetector{Tag: tag, Match: re.MatchString}
}

var patternCatalog = []patternDetector{
	regexDetector(model.PatternListComprehension, `\[[^\[\]]*\bfor\b[^\[\]]+\bin\b[^\[\]]*\]`),
	regexDetector(model.PatternDictComprehension, `\{[^{}]*:[^{}]*\bfor\b[^{}]+\bin\b[^{}]*\}`),
	regexDetector(model.PatternSetComprehension, `\{[^{}:]+\bfor\b[^{}:]+\bin\b[^{}:]*\}`),
	regexDetector(model.PatternGeneratorExpr, `\([^()]*\bfor\b[^()]+\bin\b[^()]*\)`),
	regexDetector(model.PatternForLoop, `(?m)^[ \t]*(async[ \t]+)?for[ \t]+.+\bin\b.+:`),
	regexDetector(model.PatternWhileLoop, `(?m)^[ \t]*while[ \t]+.+:`),
	regexDetector(model.PatternClassDefinition, `(?m)^[ \t]*class[ \t]+\w+`),
	regexDetector(model.PatternFunctionDefinition, `(?m)^[ \t]*(async[ \t]+)?def[ \t]+\w+[ \t]*\(`),
	regexDetector(model.PatternPropertyDecorator, `(?m)^[ \t]*@property\b`),
	{
		Tag: model.PatternTryExcept,
		Match: func(code string) bool {
			return tryRe.MatchString(code) && exceptRe.MatchString(code)
		},
	},
	regexDetector(model.PatternWithStatement, `(?m)^[ \t]*(async[ \t]+)?with[ \t]+.+:`),
	regexDetector(model.PatternLambda, `\blambda\b[^:\n]*:`),
}

var (
	tryRe    = regexp.MustCompile(`(?m)^[ \t]*try[ \t]*:`)
	exceptRe = regexp.MustCompile(`(?m)^[ \t]*except\b`)
)

// 检测到进阶写法时在反馈末尾点名表扬，按目录顺序取第一个命中项
var patternNods = map[model.PatternTag]string{
	model.PatternListComprehension: "list comprehensions",
	model.PatternDictComprehension: "dict comprehensions",
	model.PatternSetComprehension:  "set comprehensions",
	model.PatternGeneratorExpr:     "generator expressions",
	model.PatternPropertyDecorator: "property decorators",
	model.PatternWithStatement:     "context managers",
	model.PatternLambda:            "lambda expressions",
}

// AnalyzerService 对单次已评分提交做结构分析，纯函数、绝不失败
type AnalyzerService struct{}

func NewAnalyzerService() *AnalyzerService {
	return &AnalyzerService{}
}

// Analyze 产出一次提交的分析结果；任何输入都返回可用结果
func (s *AnalyzerService) Analyze(input *model.SubmissionInput) model.SubmissionAnalysis {
	errorKind := s.classifyError(input)

	// 判题端报告解析失败时代码结构不可信，给空集合
	var patterns []model.PatternTag
	if !input.Outcome.SyntaxError {
		patterns = s.DetectPatterns(input.Code)
	}

	timestamp := input.SubmittedAt
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	return model.SubmissionAnalysis{
		WorkshopID:       input.WorkshopID,
		ModuleID:         input.ModuleID,
		ErrorKind:        errorKind,
		DetectedPatterns: patterns,
		Feedback:         s.buildFeedback(errorKind, input.Score, input.MaxScore, patterns),
		Timestamp:        timestamp,
	}
}

// DetectPatterns 按固定目录做结构检测，返回集合（顺序即目录顺序，无重复）
func (s *AnalyzerService) DetectPatterns(code string) []model.PatternTag {
	if strings.TrimSpace(code) == "" {
		return nil
	}
	var tags []model.PatternTag
	for _, detector := range patternCatalog {
		if detector.Match(code) {
			tags = append(tags, detector.Tag)
		}
	}
	return tags
}

// classifyError 错误类型优先级：超时 > 语法 > 逻辑 > 无
func (s *AnalyzerService) classifyError(input *model.SubmissionInput) model.ErrorKind {
	switch {
	case input.Outcome.TimeoutError:
		return model.ErrorKindTimeout
	case input.Outcome.SyntaxError && input.Score == 0:
		return model.ErrorKindSyntax
	case input.Score < input.MaxScore:
		return model.ErrorKindLogic
	default:
		return model.ErrorKindNone
	}
}

func (s *AnalyzerService) buildFeedback(kind model.ErrorKind, score, maxScore float64, patterns []model.PatternTag) string {
	switch kind {
	case model.ErrorKindTimeout:
		return "Your solution timed out. Look for ways to reduce repeated work inside loops."
	case model.ErrorKindSyntax:
		return "Syntax error detected. Review the code structure and try again."
	}

	ratio := 0.0
	if maxScore > 0 {
		ratio = score / maxScore
	}

	var feedback string
	switch {
	case ratio >= 1:
		feedback = "Excellent work!"
	case ratio >= 0.7:
		feedback = "Well done! Minor improvements possible."
	case ratio >= 0.5:
		feedback = "Good effort! Check the hints for improvement areas."
	default:
		feedback = "Keep practicing! Review the basics and try again."
	}

	for _, tag := range patterns {
		if phrase, ok := patternNods[tag]; ok {
			feedback += fmt.Sprintf(" Nice use of %s.", phrase)
			break
		}
	}

	return feedback
}
