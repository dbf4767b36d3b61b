package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skill_insight_backend/internal/service"
	"skill_insight_backend/internal/util"
)

// LearnerController 学习者维度的分析读取接口
type LearnerController struct {
	FingerprintService *service.FingerprintService
	GapService         *service.GapService
	ReportService      *service.ReportService
	ArchiveService     *service.ArchiveService
}

func NewLearnerController(fingerprintService *service.FingerprintService, gapService *service.GapService, reportService *service.ReportService, archiveService *service.ArchiveService) *LearnerController {
	return &LearnerController{
		FingerprintService: fingerprintService,
		GapService:         gapService,
		ReportService:      reportService,
		ArchiveService:     archiveService,
	}
}

// GetSessions godoc
// @Summary 会话历史
// @Description 按提交时间升序返回学习者全部会话记录
// @Tags 学习者
// @Produce json
// @Param   learnerId path string true "学习者标识"
// @Success 200 {object} util.Response{data=[]model.SessionRecord}
// @Security BearerAuth
// @Router /learners/{learnerId}/sessions [get]
func (c *LearnerController) GetSessions(ctx *gin.Context) {
	records, err := c.FingerprintService.History(ctx.Param("learnerId"))
	if err != nil {
		util.ErrorFrom(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// GetFingerprint godoc
// @Summary 技能画像
// @Description 从全量会话历史重新聚合技能画像
// @Tags 学习者
// @Produce json
// @Param   learnerId path string true "学习者标识"
// @Success 200 {object} util.Response{data=model.SkillFingerprint}
// @Security BearerAuth
// @Router /learners/{learnerId}/fingerprint [get]
func (c *LearnerController) GetFingerprint(ctx *gin.Context) {
	fingerprint, err := c.FingerprintService.GetFingerprint(ctx.Param("learnerId"))
	if err != nil {
		util.ErrorFrom(ctx, err)
		return
	}
	util.Success(ctx, fingerprint)
}

// GetGaps godoc
// @Summary 技能差距
// @Description 比对目标画像产出差距清单，format=markdown 返回分组报告文本
// @Tags 学习者
// @Produce json
// @Param   learnerId path string true "学习者标识"
// @Param   profile query string false "目标画像名，缺省使用配置默认值"
// @Param   format query string false "markdown 时返回文本报告"
// @Success 200 {object} util.Response{data=model.GapReport}
// @Failure 400 {object} util.Response "画像未配置任何主题"
// @Failure 404 {object} util.Response "画像不存在"
// @Security BearerAuth
// @Router /learners/{learnerId}/gaps [get]
func (c *LearnerController) GetGaps(ctx *gin.Context) {
	report, err := c.GapService.ListGaps(ctx.Param("learnerId"), ctx.Query("profile"))
	if err != nil {
		util.ErrorFrom(ctx, err)
		return
	}

	if ctx.Query("format") == "markdown" {
		ctx.Data(http.StatusOK, util.MimeMarkdown, []byte(c.ReportService.RenderGapReportMarkdown(report)))
		return
	}
	util.Success(ctx, report)
}

// GetRecommendations godoc
// @Summary 下一步练习建议
// @Description 返回最该优先补齐的前 N 个差距及推荐语
// @Tags 学习者
// @Produce json
// @Param   learnerId path string true "学习者标识"
// @Param   profile query string false "目标画像名"
// @Param   limit query int false "返回条数，缺省使用配置默认值"
// @Success 200 {object} util.Response{data=[]model.SkillGap}
// @Security BearerAuth
// @Router /learners/{learnerId}/recommendations [get]
func (c *LearnerController) GetRecommendations(ctx *gin.Context) {
	limit := util.ParseIntDefault(ctx.Query("limit"), 0)
	gaps, err := c.GapService.Recommend(ctx.Param("learnerId"), ctx.Query("profile"), limit)
	if err != nil {
		util.ErrorFrom(ctx, err)
		return
	}
	util.Success(ctx, gaps)
}

// GetReport godoc
// @Summary 技能报告
// @Description 完整技能报告，format=markdown 返回渲染文本
// @Tags 学习者
// @Produce json
// @Param   learnerId path string true "学习者标识"
// @Param   profile query string false "目标画像名"
// @Param   threshold query number false "掌握度阈值覆盖，缺省 80"
// @Param   format query string false "markdown 时返回文本报告"
// @Success 200 {object} util.Response{data=model.SkillReport}
// @Security BearerAuth
// @Router /learners/{learnerId}/report [get]
func (c *LearnerController) GetReport(ctx *gin.Context) {
	threshold := util.ParseFloatDefault(ctx.Query("threshold"), 0)
	report, err := c.ReportService.BuildSkillReport(ctx.Param("learnerId"), ctx.Query("profile"), threshold)
	if err != nil {
		util.ErrorFrom(ctx, err)
		return
	}

	if ctx.Query("format") == "markdown" {
		ctx.Data(http.StatusOK, util.MimeMarkdown, []byte(c.ReportService.RenderSkillReportMarkdown(report)))
		return
	}
	util.Success(ctx, report)
}

// GetReadiness godoc
// @Summary 进阶就绪评估
// @Description 零关键差距且总均分达标才判定就绪
// @Tags 学习者
// @Produce json
// @Param   learnerId path string true "学习者标识"
// @Param   profile query string false "目标画像名"
// @Param   threshold query number false "掌握度阈值覆盖"
// @Success 200 {object} util.Response{data=model.ReadinessAssessment}
// @Security BearerAuth
// @Router /learners/{learnerId}/readiness [get]
func (c *LearnerController) GetReadiness(ctx *gin.Context) {
	threshold := util.ParseFloatDefault(ctx.Query("threshold"), 0)
	assessment, err := c.ReportService.BuildReadiness(ctx.Param("learnerId"), ctx.Query("profile"), threshold)
	if err != nil {
		util.ErrorFrom(ctx, err)
		return
	}
	util.Success(ctx, assessment)
}

// GetProgress godoc
// @Summary 练习进度概览
// @Description 全量会话的整体统计，format=markdown 返回含模块状态表的文本
// @Tags 学习者
// @Produce json
// @Param   learnerId path string true "学习者标识"
// @Param   format query string false "markdown 时返回文本报告"
// @Success 200 {object} util.Response{data=model.ProgressSummary}
// @Security BearerAuth
// @Router /learners/{learnerId}/progress [get]
func (c *LearnerController) GetProgress(ctx *gin.Context) {
	learnerID := ctx.Param("learnerId")
	summary, err := c.ReportService.BuildProgress(learnerID)
	if err != nil {
		util.ErrorFrom(ctx, err)
		return
	}

	if ctx.Query("format") == "markdown" {
		fingerprint, err := c.FingerprintService.GetFingerprint(learnerID)
		if err != nil {
			util.ErrorFrom(ctx, err)
			return
		}
		ctx.Data(http.StatusOK, util.MimeMarkdown, []byte(c.ReportService.RenderProgressMarkdown(summary, fingerprint)))
		return
	}
	util.Success(ctx, summary)
}

// ArchiveReport godoc
// @Summary 归档技能报告
// @Description 渲染技能报告并以 markdown 与 JSON 两种形式写入对象存储
// @Tags 学习者
// @Produce json
// @Param   learnerId path string true "学习者标识"
// @Param   profile query string false "目标画像名"
// @Param   threshold query number false "掌握度阈值覆盖"
// @Success 201 {object} util.Response{data=model.ArchiveResult}
// @Failure 404 {object} util.Response "画像不存在"
// @Security BearerAuth
// @Router /learners/{learnerId}/report/archive [post]
func (c *LearnerController) ArchiveReport(ctx *gin.Context) {
	threshold := util.ParseFloatDefault(ctx.Query("threshold"), 0)
	result, err := c.ArchiveService.ArchiveSkillReport(ctx.Request.Context(), ctx.Param("learnerId"), ctx.Query("profile"), threshold)
	if err != nil {
		util.ErrorFrom(ctx, err)
		return
	}
	util.Created(ctx, result)
}
