package service

import (
	"errors"
	"mathcoins_backend/internal/model"
	"mathcoins_backend/internal/repository"
	"mathcoins_backend/internal/util"
	"mathcoins_backend/pkg/monitoring"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WithdrawalService 提现工作流。状态机：
// pending --approve--> approved（终态）
// pending --deny-----> denied（终态）
// 扣币策略：创建时只校验余额不扣币，审批通过时在行锁事务里
// 复核余额并扣除。两条pending可以引用同一笔金币，但最多一条能过审。
type WithdrawalService struct {
	DB   *gorm.DB
	Repo *repository.WithdrawalRepository
}

func NewWithdrawalService(db *gorm.DB, repo *repository.WithdrawalRepository) *WithdrawalService {
	return &WithdrawalService{DB: db, Repo: repo}
}

// Create 校验金额与实时余额后插入pending记录。余额校验在用户行锁内
// 进行，同一用户并发创建时依次看到彼此的结果。
func (s *WithdrawalService) Create(userID uint, amount int, mode model.PaymentMode, accountDetails string) (*model.Withdrawal, error) {
	if amount <= 0 {
		return nil, util.ErrInvalidAmount
	}
	if !mode.Valid() {
		return nil, util.ErrInvalidPaymentMode
	}

	w := &model.Withdrawal{
		UserID:         userID,
		Amount:         amount,
		PaymentMode:    mode,
		AccountDetails: accountDetails,
		Status:         model.WithdrawalPending,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrUserNotFound
			}
			return err
		}

		if user.Coins < amount {
			return util.ErrInsufficientCoins
		}

		return tx.Create(w).Error
	})
	if err != nil {
		return nil, err
	}

	return w, nil
}

// List 全部提现记录，最新在前，附申请人信息
func (s *WithdrawalService) List() ([]model.Withdrawal, error) {
	return s.Repo.FindAllWithUsers()
}

// Approve 通过提现：锁定记录与用户行，复核余额后扣币并流转状态。
// 余额不足时记录保持pending，返回校验错误由管理员处理。
func (s *WithdrawalService) Approve(id uint) (*model.Withdrawal, error) {
	var approved model.Withdrawal

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var w model.Withdrawal
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&w, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrWithdrawalNotFound
			}
			return err
		}

		if w.Status.Terminal() {
			return util.ErrWithdrawalSettled
		}

		var user model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, w.UserID).Error; err != nil {
			return err
		}

		// 创建到审批之间金币可能已被花掉，这里复核
		if user.Coins < w.Amount {
			return util.ErrInsufficientCoins
		}

		if _, err := repository.DeductCoins(tx, user.ID, w.Amount); err != nil {
			return err
		}

		rows, err := repository.TransitionStatus(tx, id, model.WithdrawalApproved)
		if err != nil {
			return err
		}
		if rows == 0 {
			return util.ErrWithdrawalSettled
		}

		w.Status = model.WithdrawalApproved
		approved = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.WithdrawalTransitions.WithLabelValues(string(model.WithdrawalApproved)).Inc()
	return &approved, nil
}

// Deny 拒绝提现，不触碰余额
func (s *WithdrawalService) Deny(id uint) (*model.Withdrawal, error) {
	var denied model.Withdrawal

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var w model.Withdrawal
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&w, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrWithdrawalNotFound
			}
			return err
		}

		if w.Status.Terminal() {
			return util.ErrWithdrawalSettled
		}

		rows, err := repository.TransitionStatus(tx, id, model.WithdrawalDenied)
		if err != nil {
			return err
		}
		if rows == 0 {
			return util.ErrWithdrawalSettled
		}

		w.Status = model.WithdrawalDenied
		denied = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.WithdrawalTransitions.WithLabelValues(string(model.WithdrawalDenied)).Inc()
	return &denied, nil
}
