package repository

import (
	"mathcoins_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen", time.Now()).
		Error
}

// ApplyAnswerOutcome 以单条UPDATE原子地结算一次答题：
// 金币按增量调整并在0处截断，total_questions加1，对应的对/错计数器加1。
// 读改写收敛到数据库层，同一用户的并发结算不会丢失更新。
func (r *UserRepository) ApplyAnswerOutcome(userID uint, delta int, correct bool) (*model.User, error) {
	updates := map[string]interface{}{
		"coins":           gorm.Expr("GREATEST(0, coins + ?)", delta),
		"total_questions": gorm.Expr("total_questions + 1"),
		"updated_at":      time.Now(),
	}
	if correct {
		updates["correct_answers"] = gorm.Expr("correct_answers + 1")
	} else {
		updates["incorrect_answers"] = gorm.Expr("incorrect_answers + 1")
	}

	result := r.DB.Model(&model.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindByID(userID)
}

// DeductCoins 在给定的连接或事务上扣减金币，同样在0处截断，
// 不触碰答题计数器。提现审批在其行锁事务内调用。
// 返回受影响行数，0表示用户不存在。
func DeductCoins(db *gorm.DB, userID uint, amount int) (int64, error) {
	result := db.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"coins":      gorm.Expr("GREATEST(0, coins - ?)", amount),
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *UserRepository) FindAllByCoins(page, pageSize int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	query := r.DB.Model(&model.User{})
	query.Count(&total)

	offset := (page - 1) * pageSize
	err := query.Order("coins DESC").Offset(offset).Limit(pageSize).Find(&users).Error
	return users, total, err
}
