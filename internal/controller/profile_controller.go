package controller

import (
	"github.com/gin-gonic/gin"

	"skill_insight_backend/internal/model"
	"skill_insight_backend/internal/service"
	"skill_insight_backend/internal/util"
)

type ProfileController struct {
	ProfileService *service.ProfileService
}

func NewProfileController(profileService *service.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: profileService}
}

// List godoc
// @Summary 画像列表
// @Description 所有目标掌握度画像及其主题配置
// @Tags 目标画像
// @Produce json
// @Success 200 {object} util.Response{data=[]model.TargetProfile}
// @Security BearerAuth
// @Router /profiles [get]
func (c *ProfileController) List(ctx *gin.Context) {
	profiles, err := c.ProfileService.List()
	if err != nil {
		util.ErrorFrom(ctx, err)
		return
	}
	util.Success(ctx, profiles)
}

// Get godoc
// @Summary 查看画像
// @Tags 目标画像
// @Produce json
// @Param   name path string true "画像名"
// @Success 200 {object} util.Response{data=model.TargetProfile}
// @Failure 404 {object} util.Response "画像不存在"
// @Security BearerAuth
// @Router /profiles/{name} [get]
func (c *ProfileController) Get(ctx *gin.Context) {
	profile, err := c.ProfileService.Get(ctx.Param("name"))
	if err != nil {
		util.ErrorFrom(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// Upsert godoc
// @Summary 写入画像
// @Description 按名称整体覆盖画像，主题列表以本次载荷为准
// @Tags 目标画像
// @Accept  json
// @Produce json
// @Param   name path string true "画像名"
// @Param   body body model.TargetProfileInput true "画像配置"
// @Success 200 {object} util.Response{data=model.TargetProfile}
// @Failure 400 {object} util.Response "载荷非法"
// @Security BearerAuth
// @Router /profiles/{name} [put]
func (c *ProfileController) Upsert(ctx *gin.Context) {
	var input model.TargetProfileInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.ProfileService.Upsert(ctx.Param("name"), &input)
	if err != nil {
		util.ErrorFrom(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// Delete godoc
// @Summary 删除画像
// @Tags 目标画像
// @Produce json
// @Param   name path string true "画像名"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "画像不存在"
// @Security BearerAuth
// @Router /profiles/{name} [delete]
func (c *ProfileController) Delete(ctx *gin.Context) {
	if err := c.ProfileService.Delete(ctx.Param("name")); err != nil {
		util.ErrorFrom(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
