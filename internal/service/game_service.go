package service

import (
	"mathcoins_backend/internal/model"
	"mathcoins_backend/internal/util"
	"mathcoins_backend/pkg/monitoring"
)

// OutcomeApplier 结算一次答题并返回更新后的用户与名义金币变动
type OutcomeApplier interface {
	ApplyOutcome(userID uint, correct bool) (*model.User, int, error)
}

// GameService 组织一轮游戏：发题、判题、结算
type GameService struct {
	Questions *QuestionStore
	Wallet    OutcomeApplier
}

func NewGameService(questions *QuestionStore, wallet OutcomeApplier) *GameService {
	return &GameService{Questions: questions, Wallet: wallet}
}

// RoundQuestion 下发给客户端的题面，不含答案
type RoundQuestion struct {
	ID       string `json:"id"`
	Question string `json:"question"`
}

// AnswerResult 一次提交的完整结果
type AnswerResult struct {
	Correct       bool `json:"correct"`
	CorrectAnswer int  `json:"correctAnswer"`
	CoinsChange   int  `json:"coinsChange"`
	NewBalance    int  `json:"newBalance"`
}

// StartRound 发一道新题。同一用户可以同时持有多道未作答的题。
func (s *GameService) StartRound() RoundQuestion {
	q := s.Questions.Issue()
	monitoring.QuestionsIssued.Inc()
	return RoundQuestion{ID: q.ID, Question: q.Expression}
}

// SubmitAnswer 消费题目并结算。过期、未知ID与重复提交共用同一个
// 错误出口，对调用方不作区分。提交值与整数答案严格相等才算答对，
// 小数提交永远判错。
func (s *GameService) SubmitAnswer(userID uint, questionID string, answer float64) (*AnswerResult, error) {
	q, ok := s.Questions.Consume(questionID)
	if !ok {
		return nil, util.ErrQuestionNotFound
	}

	correct := answer == float64(q.Answer)

	user, delta, err := s.Wallet.ApplyOutcome(userID, correct)
	if err != nil {
		return nil, err
	}

	if correct {
		monitoring.AnswersGraded.WithLabelValues("correct").Inc()
	} else {
		monitoring.AnswersGraded.WithLabelValues("incorrect").Inc()
	}

	return &AnswerResult{
		Correct:       correct,
		CorrectAnswer: q.Answer,
		CoinsChange:   delta,
		NewBalance:    user.Coins,
	}, nil
}
