package controller

import (
	"github.com/gin-gonic/gin"

	"skill_insight_backend/internal/service"
	"skill_insight_backend/internal/util"
)

type FeedController struct {
	Hub *service.FeedHub
}

func NewFeedController(hub *service.FeedHub) *FeedController {
	return &FeedController{Hub: hub}
}

// Connect godoc
// @Summary 订阅即时反馈流
// @Description 升级为 WebSocket，推送该学习者每次提交的即时反馈；token 经 ?token= 传递
// @Tags 反馈流
// @Param   learnerId query string true "学习者标识"
// @Param   token query string false "JWT，WebSocket 握手无法携带请求头时使用"
// @Success 101 {string} string "协议切换"
// @Failure 400 {object} util.Response "缺少 learnerId"
// @Security BearerAuth
// @Router /feed/ws [get]
func (c *FeedController) Connect(ctx *gin.Context) {
	learnerID := ctx.Query("learnerId")
	if learnerID == "" {
		util.ErrorFrom(ctx, util.ErrLearnerRequired)
		return
	}

	service.ServeFeed(c.Hub, ctx.Writer, ctx.Request, learnerID)
}
