package repository

import (
	"mathcoins_backend/internal/model"

	"gorm.io/gorm"
)

type WithdrawalRepository struct {
	DB *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{DB: db}
}

func (r *WithdrawalRepository) Create(w *model.Withdrawal) error {
	return r.DB.Create(w).Error
}

func (r *WithdrawalRepository) FindByID(id uint) (*model.Withdrawal, error) {
	var w model.Withdrawal
	err := r.DB.First(&w, id).Error
	return &w, err
}

// FindAllWithUsers 按创建时间倒序返回全部提现记录及申请人
func (r *WithdrawalRepository) FindAllWithUsers() ([]model.Withdrawal, error) {
	var withdrawals []model.Withdrawal
	err := r.DB.Preload("User").Order("created_at DESC").Find(&withdrawals).Error
	return withdrawals, err
}

// TransitionStatus 条件更新：仅当记录仍为pending时写入终态。
// 返回受影响行数，0表示记录已被并发流转。
func TransitionStatus(tx *gorm.DB, id uint, to model.WithdrawalStatus) (int64, error) {
	result := tx.Model(&model.Withdrawal{}).
		Where("id = ? AND status = ?", id, model.WithdrawalPending).
		Update("status", to)
	return result.RowsAffected, result.Error
}
