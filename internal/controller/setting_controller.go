package controller

import (
	"mathcoins_backend/internal/service"
	"mathcoins_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SettingController struct {
	SettingService *service.SettingService
}

func NewSettingController(settingService *service.SettingService) *SettingController {
	return &SettingController{SettingService: settingService}
}

// GetSettings godoc
// @Summary 获取经济参数
// @Description 奖励、惩罚与兑换率（管理员权限）
// @Tags 配置
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Setting} "成功"
// @Failure 403 {object} util.Response "无权限"
// @Router /api/settings [get]
func (c *SettingController) GetSettings(ctx *gin.Context) {
	setting, err := c.SettingService.Get()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, setting)
}

// UpdateSettingsRequest 部分更新请求，缺省字段保持不变。
// 数值边界在这里校验，注册表本身只做存取。
// swagger:model UpdateSettingsRequest
type UpdateSettingsRequest struct {
	RewardAmount   *int `json:"rewardAmount" binding:"omitempty,gte=0"`
	PenaltyAmount  *int `json:"penaltyAmount" binding:"omitempty,gte=0"`
	ConversionRate *int `json:"conversionRate" binding:"omitempty,gt=0"`
}

// UpdateSettings godoc
// @Summary 更新经济参数
// @Description 部分更新，奖励/惩罚需非负，兑换率需为正（管理员权限）
// @Tags 配置
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body UpdateSettingsRequest true "要更新的字段"
// @Success 200 {object} util.Response{data=model.Setting} "成功"
// @Failure 400 {object} util.Response "数值非法"
// @Failure 403 {object} util.Response "无权限"
// @Router /api/settings [put]
func (c *SettingController) UpdateSettings(ctx *gin.Context) {
	var req UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	setting, err := c.SettingService.Update(service.UpdateSettingInput{
		RewardAmount:   req.RewardAmount,
		PenaltyAmount:  req.PenaltyAmount,
		ConversionRate: req.ConversionRate,
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, setting)
}
