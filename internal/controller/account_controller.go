package controller

import (
	"github.com/gin-gonic/gin"

	"skill_insight_backend/internal/model"
	"skill_insight_backend/internal/service"
	"skill_insight_backend/internal/util"
)

type AccountController struct {
	AuthService *service.AuthService
}

func NewAccountController(authService *service.AuthService) *AccountController {
	return &AccountController{AuthService: authService}
}

// CreateAccountRequest 创建服务账号的请求体
// swagger:model CreateAccountRequest
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required"`
	Role string `json:"role" binding:"required,oneof=grader reader admin"`
}

// Create godoc
// @Summary 创建服务账号
// @Description 明文 API Key 只在本次响应返回，请立即保存
// @Tags 服务账号
// @Accept  json
// @Produce  json
// @Param   body body CreateAccountRequest true "账号信息"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "账号名已占用"
// @Security BearerAuth
// @Router /accounts [post]
func (c *AccountController) Create(ctx *gin.Context) {
	var req CreateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	account, apiKey, err := c.AuthService.CreateAccount(req.Name, model.AccountRole(req.Role))
	if err != nil {
		util.ErrorFrom(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"id":     account.ID,
		"name":   account.Name,
		"role":   account.Role,
		"apiKey": apiKey,
	})
}
