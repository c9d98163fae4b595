package service

import (
	"errors"
	"testing"

	"mathcoins_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLedger 模拟账本行为：原子加减并在0处截断
type fakeLedger struct {
	coins     int
	err       error
	lastDelta int
}

func (f *fakeLedger) ApplyAnswerOutcome(userID uint, delta int, correct bool) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastDelta = delta
	f.coins += delta
	if f.coins < 0 {
		f.coins = 0
	}
	return &model.User{Coins: f.coins}, nil
}

type fakeSettings struct {
	setting model.Setting
	err     error
}

func (f *fakeSettings) Get() (*model.Setting, error) {
	if f.err != nil {
		return nil, f.err
	}
	s := f.setting
	return &s, nil
}

func TestWalletApplyOutcomeCorrect(t *testing.T) {
	ledger := &fakeLedger{coins: 5}
	wallet := NewWalletService(ledger, &fakeSettings{setting: model.Setting{RewardAmount: 3, PenaltyAmount: 1}})

	user, delta, err := wallet.ApplyOutcome(1, true)
	require.NoError(t, err)

	assert.Equal(t, 3, delta)
	assert.Equal(t, 3, ledger.lastDelta)
	assert.Equal(t, 8, user.Coins)
}

func TestWalletApplyOutcomeIncorrect(t *testing.T) {
	ledger := &fakeLedger{coins: 5}
	wallet := NewWalletService(ledger, &fakeSettings{setting: model.Setting{RewardAmount: 3, PenaltyAmount: 4}})

	user, delta, err := wallet.ApplyOutcome(1, false)
	require.NoError(t, err)

	assert.Equal(t, -4, delta)
	assert.Equal(t, 1, user.Coins)
}

// 名义变动保持-penalty，实际余额由账本截断在0
func TestWalletApplyOutcomeClampsAtZero(t *testing.T) {
	ledger := &fakeLedger{coins: 1}
	wallet := NewWalletService(ledger, &fakeSettings{setting: model.Setting{RewardAmount: 2, PenaltyAmount: 5}})

	user, delta, err := wallet.ApplyOutcome(1, false)
	require.NoError(t, err)

	assert.Equal(t, -5, delta)
	assert.Equal(t, 0, user.Coins)
}

func TestWalletApplyOutcomeSettingsError(t *testing.T) {
	boom := errors.New("settings unavailable")
	ledger := &fakeLedger{}
	wallet := NewWalletService(ledger, &fakeSettings{err: boom})

	_, _, err := wallet.ApplyOutcome(1, true)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, ledger.lastDelta, "ledger untouched when settings fail")
}
