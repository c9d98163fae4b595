package repository

import (
	"errors"
	"mathcoins_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type SettingRepository struct {
	DB *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{DB: db}
}

// Get 读取单例配置行，不存在时用模型默认值补建
func (r *SettingRepository) Get() (*model.Setting, error) {
	var setting model.Setting
	err := r.DB.First(&setting).Error
	if err == nil {
		return &setting, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	setting = model.Setting{}
	if err := r.DB.Create(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// Update 只覆盖传入的字段，未提供的字段保持原值
func (r *SettingRepository) Update(fields map[string]interface{}) (*model.Setting, error) {
	current, err := r.Get()
	if err != nil {
		return nil, err
	}

	fields["updated_at"] = time.Now()
	if err := r.DB.Model(current).Updates(fields).Error; err != nil {
		return nil, err
	}

	var updated model.Setting
	if err := r.DB.First(&updated, current.ID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}
