package controller

import (
	"time"

	"github.com/gin-gonic/gin"

	"skill_insight_backend/internal/service"
	"skill_insight_backend/internal/util"
)

type AuthController struct {
	AuthService *service.AuthService
	ExpireTime  time.Duration // token 有效期，随响应返回给调用方
}

func NewAuthController(authService *service.AuthService, expireTime time.Duration) *AuthController {
	return &AuthController{
		AuthService: authService,
		ExpireTime:  expireTime,
	}
}

// TokenRequest 服务账号换取 JWT 的请求体
// swagger:model TokenRequest
type TokenRequest struct {
	Account string `json:"account" binding:"required"`
	APIKey  string `json:"apiKey" binding:"required"`
}

// IssueToken godoc
// @Summary 签发访问令牌
// @Description 服务账号用 API Key 换取 JWT
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body TokenRequest true "账号凭证"
// @Success 200 {object} util.Response{data=object} "签发成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "凭证无效或账号被停用"
// @Router /auth/token [post]
func (c *AuthController) IssueToken(ctx *gin.Context) {
	var req TokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, account, err := c.AuthService.IssueToken(req.Account, req.APIKey)
	if err != nil {
		util.ErrorFrom(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"token":       token,
		"role":        account.Role,
		"expiresIn":   int(c.ExpireTime.Seconds()),
		"accountName": account.Name,
	})
}
