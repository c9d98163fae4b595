package controller

import (
	"errors"
	"mathcoins_backend/internal/model"
	"mathcoins_backend/internal/service"
	"mathcoins_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type WithdrawalController struct {
	WithdrawalService *service.WithdrawalService
}

func NewWithdrawalController(withdrawalService *service.WithdrawalService) *WithdrawalController {
	return &WithdrawalController{WithdrawalService: withdrawalService}
}

// CreateWithdrawalRequest 提现申请
// swagger:model CreateWithdrawalRequest
type CreateWithdrawalRequest struct {
	Amount         int    `json:"amount" binding:"required,gt=0"`
	PaymentMode    string `json:"paymentMode" binding:"required,oneof=GCash Maya"`
	AccountDetails string `json:"accountDetails" binding:"required,max=255"`
}

// Create godoc
// @Summary 发起提现申请
// @Description 校验金额与当前余额后创建pending记录，金币在审批通过时扣除
// @Tags 提现
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateWithdrawalRequest true "提现信息"
// @Success 201 {object} util.Response{data=model.Withdrawal} "创建成功"
// @Failure 400 {object} util.Response "余额不足或参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/withdrawals [post]
func (c *WithdrawalController) Create(ctx *gin.Context) {
	var req CreateWithdrawalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	w, err := c.WithdrawalService.Create(claims.UserID, req.Amount, model.PaymentMode(req.PaymentMode), req.AccountDetails)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInsufficientCoins):
			util.BadRequest(ctx, "Insufficient coins")
		case errors.Is(err, util.ErrInvalidAmount), errors.Is(err, util.ErrInvalidPaymentMode):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrUserNotFound):
			util.Unauthorized(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, w)
}

// List godoc
// @Summary 提现申请列表
// @Description 全部提现记录，最新在前，附申请人信息（管理员权限）
// @Tags 提现
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Withdrawal} "成功"
// @Failure 403 {object} util.Response "无权限"
// @Router /api/withdrawals [get]
func (c *WithdrawalController) List(ctx *gin.Context) {
	withdrawals, err := c.WithdrawalService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, withdrawals)
}

// Approve godoc
// @Summary 通过提现申请
// @Description 复核余额、扣除金币并流转到approved（管理员权限）
// @Tags 提现
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "提现ID"
// @Success 200 {object} util.Response{data=model.Withdrawal} "成功"
// @Failure 400 {object} util.Response "余额不足"
// @Failure 403 {object} util.Response "无权限"
// @Failure 404 {object} util.Response "记录不存在"
// @Failure 409 {object} util.Response "记录已处理"
// @Router /api/withdrawals/{id}/approve [post]
func (c *WithdrawalController) Approve(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的ID")
		return
	}

	w, err := c.WithdrawalService.Approve(uint(id))
	if err != nil {
		c.renderTransitionError(ctx, err)
		return
	}

	util.Success(ctx, w)
}

// Deny godoc
// @Summary 拒绝提现申请
// @Description 流转到denied，不触碰余额（管理员权限）
// @Tags 提现
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "提现ID"
// @Success 200 {object} util.Response{data=model.Withdrawal} "成功"
// @Failure 403 {object} util.Response "无权限"
// @Failure 404 {object} util.Response "记录不存在"
// @Failure 409 {object} util.Response "记录已处理"
// @Router /api/withdrawals/{id}/deny [post]
func (c *WithdrawalController) Deny(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的ID")
		return
	}

	w, err := c.WithdrawalService.Deny(uint(id))
	if err != nil {
		c.renderTransitionError(ctx, err)
		return
	}

	util.Success(ctx, w)
}

func (c *WithdrawalController) renderTransitionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrWithdrawalNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrWithdrawalSettled):
		util.Conflict(ctx, "Withdrawal already settled")
	case errors.Is(err, util.ErrInsufficientCoins):
		util.BadRequest(ctx, "User no longer has sufficient coins")
	default:
		util.LogInternalError(ctx, err)
	}
}
