package controller

import (
	"github.com/gin-gonic/gin"

	"skill_insight_backend/internal/model"
	"skill_insight_backend/internal/service"
	"skill_insight_backend/internal/util"
)

type SubmissionController struct {
	IngestService *service.IngestService
}

func NewSubmissionController(ingestService *service.IngestService) *SubmissionController {
	return &SubmissionController{IngestService: ingestService}
}

// Submit godoc
// @Summary 摄取一次已判分提交
// @Description 判题引擎上报提交结果，返回即时反馈；携带 X-Idempotency-Key 可安全重试
// @Tags 提交
// @Accept  json
// @Produce  json
// @Param   X-Idempotency-Key header string false "幂等键，重复提交返回首次结果"
// @Param   body body model.SubmissionInput true "判分结果"
// @Success 201 {object} util.Response{data=model.QuickFeedback} "已入库"
// @Success 200 {object} util.Response{data=model.QuickFeedback} "重复提交，返回首次结果"
// @Failure 400 {object} util.Response "请求参数错误"
// @Security BearerAuth
// @Router /submissions [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	var input model.SubmissionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	idempotencyKey := ctx.GetHeader("X-Idempotency-Key")
	feedback, err := c.IngestService.Ingest(ctx.Request.Context(), &input, idempotencyKey)
	if err != nil {
		util.ErrorFrom(ctx, err)
		return
	}

	if feedback.Duplicate {
		util.Success(ctx, feedback)
		return
	}
	util.Created(ctx, feedback)
}
