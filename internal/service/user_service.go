package service

import (
	"errors"
	"mathcoins_backend/internal/model"
	"mathcoins_backend/internal/repository"
	"mathcoins_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

// UserService 处理用户相关的业务逻辑
type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

// GetUserByID 根据ID获取用户信息
func (s *UserService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetUsersByCoins 管理端用户列表，按金币余额倒序，支持分页
func (s *UserService) GetUsersByCoins(page, pageSize int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return s.UserRepo.FindAllByCoins(page, pageSize)
}

// UpdateAvatar 更新用户头像地址
func (s *UserService) UpdateAvatar(userID uint, url string) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return util.ErrUserNotFound
	}

	user.Avatar = url
	user.UpdatedAt = time.Now()
	return s.UserRepo.Update(user)
}
