package service

import (
	"errors"
	"testing"
	"time"

	"mathcoins_backend/internal/model"
	"mathcoins_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWallet 按固定的奖惩参数在内存里结算，余额在0处截断
type fakeWallet struct {
	reward  int
	penalty int
	coins   int
	err     error

	lastCorrect bool
	calls       int
}

func (f *fakeWallet) ApplyOutcome(userID uint, correct bool) (*model.User, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	f.calls++
	f.lastCorrect = correct

	delta := f.reward
	if !correct {
		delta = -f.penalty
	}
	f.coins += delta
	if f.coins < 0 {
		f.coins = 0
	}
	return &model.User{Coins: f.coins}, delta, nil
}

func newGameFixture(t *testing.T, wallet *fakeWallet) *GameService {
	t.Helper()
	store := NewQuestionStore(5*time.Minute, time.Hour)
	t.Cleanup(store.Stop)
	return NewGameService(store, wallet)
}

// peekAnswer 不消费地偷看存储中的正确答案
func peekAnswer(t *testing.T, store *QuestionStore, id string) int {
	t.Helper()
	store.mu.Lock()
	defer store.mu.Unlock()
	q, ok := store.questions[id]
	require.True(t, ok)
	return q.Answer
}

func TestGameServiceStartRoundHidesAnswer(t *testing.T) {
	game := newGameFixture(t, &fakeWallet{reward: 2, penalty: 2})

	round := game.StartRound()
	assert.NotEmpty(t, round.ID)
	assert.NotEmpty(t, round.Question)
	assert.Equal(t, 1, game.Questions.Len())
}

func TestGameServiceSubmitCorrectAnswer(t *testing.T) {
	wallet := &fakeWallet{reward: 2, penalty: 2, coins: 0}
	game := newGameFixture(t, wallet)

	round := game.StartRound()
	answer := peekAnswer(t, game.Questions, round.ID)

	result, err := game.SubmitAnswer(7, round.ID, float64(answer))
	require.NoError(t, err)

	assert.True(t, result.Correct)
	assert.Equal(t, answer, result.CorrectAnswer)
	assert.Equal(t, 2, result.CoinsChange)
	assert.Equal(t, 2, result.NewBalance)
	assert.True(t, wallet.lastCorrect)
}

func TestGameServiceSubmitWrongAnswer(t *testing.T) {
	wallet := &fakeWallet{reward: 2, penalty: 2, coins: 10}
	game := newGameFixture(t, wallet)

	round := game.StartRound()
	answer := peekAnswer(t, game.Questions, round.ID)

	result, err := game.SubmitAnswer(7, round.ID, float64(answer)+1)
	require.NoError(t, err)

	assert.False(t, result.Correct)
	assert.Equal(t, answer, result.CorrectAnswer)
	assert.Equal(t, -2, result.CoinsChange)
	assert.Equal(t, 8, result.NewBalance)
	assert.False(t, wallet.lastCorrect)
}

func TestGameServiceFractionalAnswerIsWrong(t *testing.T) {
	wallet := &fakeWallet{reward: 2, penalty: 2, coins: 5}
	game := newGameFixture(t, wallet)

	round := game.StartRound()
	answer := peekAnswer(t, game.Questions, round.ID)

	result, err := game.SubmitAnswer(7, round.ID, float64(answer)+0.5)
	require.NoError(t, err)
	assert.False(t, result.Correct)
}

func TestGameServiceSubmitUnknownQuestion(t *testing.T) {
	wallet := &fakeWallet{reward: 2, penalty: 2}
	game := newGameFixture(t, wallet)

	_, err := game.SubmitAnswer(7, "missing", 4)
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
	assert.Equal(t, 0, wallet.calls, "no settlement without a live question")
}

func TestGameServiceResubmitSameQuestion(t *testing.T) {
	wallet := &fakeWallet{reward: 2, penalty: 2}
	game := newGameFixture(t, wallet)

	round := game.StartRound()
	answer := peekAnswer(t, game.Questions, round.ID)

	_, err := game.SubmitAnswer(7, round.ID, float64(answer))
	require.NoError(t, err)

	_, err = game.SubmitAnswer(7, round.ID, float64(answer))
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
	assert.Equal(t, 1, wallet.calls)
}

func TestGameServiceWalletErrorPropagates(t *testing.T) {
	boom := errors.New("ledger down")
	wallet := &fakeWallet{err: boom}
	game := newGameFixture(t, wallet)

	round := game.StartRound()
	answer := peekAnswer(t, game.Questions, round.ID)

	_, err := game.SubmitAnswer(7, round.ID, float64(answer))
	assert.ErrorIs(t, err, boom)
}

// 奖2罚2：0 → 答对得2 → 答错扣回0
func TestGameServiceRewardPenaltyScenario(t *testing.T) {
	wallet := &fakeWallet{reward: 2, penalty: 2, coins: 0}
	game := newGameFixture(t, wallet)

	first := game.StartRound()
	result, err := game.SubmitAnswer(7, first.ID, float64(peekAnswer(t, game.Questions, first.ID)))
	require.NoError(t, err)
	assert.Equal(t, 2, result.NewBalance)

	second := game.StartRound()
	result, err = game.SubmitAnswer(7, second.ID, float64(peekAnswer(t, game.Questions, second.ID))+1)
	require.NoError(t, err)
	assert.Equal(t, 0, result.NewBalance)
}
