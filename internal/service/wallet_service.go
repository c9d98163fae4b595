package service

import (
	"mathcoins_backend/internal/model"
)

// LedgerStore 是金币账本的持久层：实现必须把读改写原子化
// （单条UPDATE配合GREATEST(0, ...)截断）。
type LedgerStore interface {
	ApplyAnswerOutcome(userID uint, delta int, correct bool) (*model.User, error)
}

// SettingsSource 提供当前经济参数
type SettingsSource interface {
	Get() (*model.Setting, error)
}

// WalletService 金币账本：游戏产生的余额变动只经过这里
type WalletService struct {
	Ledger   LedgerStore
	Settings SettingsSource
}

func NewWalletService(ledger LedgerStore, settings SettingsSource) *WalletService {
	return &WalletService{Ledger: ledger, Settings: settings}
}

// ApplyOutcome 按当前配置结算一次答题，返回更新后的用户和本次变动值。
// 变动值是名义增量（答对+reward，答错-penalty）；余额不足惩罚时
// 账本在0处截断，实际损失以余额为上限。
func (s *WalletService) ApplyOutcome(userID uint, correct bool) (*model.User, int, error) {
	setting, err := s.Settings.Get()
	if err != nil {
		return nil, 0, err
	}

	delta := setting.RewardAmount
	if !correct {
		delta = -setting.PenaltyAmount
	}

	user, err := s.Ledger.ApplyAnswerOutcome(userID, delta, correct)
	if err != nil {
		return nil, 0, err
	}
	return user, delta, nil
}
