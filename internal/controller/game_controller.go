package controller

import (
	"errors"
	"mathcoins_backend/internal/service"
	"mathcoins_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GameController struct {
	GameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{GameService: gameService}
}

// GetQuestion godoc
// @Summary 获取一道算术题
// @Description 生成一道新题并返回题面，答案在判题前不下发
// @Tags 游戏
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.RoundQuestion} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/math/question [get]
func (c *GameController) GetQuestion(ctx *gin.Context) {
	q := c.GameService.StartRound()
	util.Success(ctx, q)
}

// SubmitAnswerRequest 答案提交请求
// swagger:model SubmitAnswerRequest
type SubmitAnswerRequest struct {
	QuestionID string   `json:"questionId" binding:"required"`
	Answer     *float64 `json:"answer" binding:"required"`
}

// SubmitAnswer godoc
// @Summary 提交答案
// @Description 判题并结算金币。题目过期、无效或已作答时返回400。
// @Tags 游戏
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SubmitAnswerRequest true "答案"
// @Success 200 {object} util.Response{data=service.AnswerResult} "成功"
// @Failure 400 {object} util.Response "题目已过期或无效"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/math/answer [post]
func (c *GameController) SubmitAnswer(ctx *gin.Context) {
	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.GameService.SubmitAnswer(claims.UserID, req.QuestionID, *req.Answer)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.BadRequest(ctx, "Question expired or invalid")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
