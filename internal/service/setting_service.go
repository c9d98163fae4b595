package service

import (
	"context"
	"encoding/json"
	"mathcoins_backend/internal/model"
	"mathcoins_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	settingCacheKey = "mathcoins:settings"
	settingCacheTTL = 5 * time.Minute
)

// SettingStore 单例配置的持久层
type SettingStore interface {
	Get() (*model.Setting, error)
	Update(fields map[string]interface{}) (*model.Setting, error)
}

// SettingService 经济参数读写，读多写少，走Redis旁路缓存。
// 数值校验是入口层的职责，这里只做存取。
type SettingService struct {
	Repo  SettingStore
	Redis *redis.Client
}

func NewSettingService(repo SettingStore, rdb *redis.Client) *SettingService {
	return &SettingService{Repo: repo, Redis: rdb}
}

func (s *SettingService) Get() (*model.Setting, error) {
	if s.Redis != nil {
		val, err := s.Redis.Get(context.Background(), settingCacheKey).Result()
		if err == nil {
			var cached model.Setting
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	setting, err := s.Repo.Get()
	if err != nil {
		return nil, err
	}

	s.cache(setting)
	return setting, nil
}

// UpdateSettingInput 部分更新：nil字段保持不变
type UpdateSettingInput struct {
	RewardAmount   *int
	PenaltyAmount  *int
	ConversionRate *int
}

func (s *SettingService) Update(input UpdateSettingInput) (*model.Setting, error) {
	fields := map[string]interface{}{}
	if input.RewardAmount != nil {
		fields["reward_amount"] = *input.RewardAmount
	}
	if input.PenaltyAmount != nil {
		fields["penalty_amount"] = *input.PenaltyAmount
	}
	if input.ConversionRate != nil {
		fields["conversion_rate"] = *input.ConversionRate
	}

	updated, err := s.Repo.Update(fields)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if err := s.Redis.Del(context.Background(), settingCacheKey).Err(); err != nil {
			logger.Log.Warn("Failed to invalidate settings cache", zap.Error(err))
		}
	}

	return updated, nil
}

func (s *SettingService) cache(setting *model.Setting) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(setting)
	if err != nil {
		return
	}
	if err := s.Redis.Set(context.Background(), settingCacheKey, data, settingCacheTTL).Err(); err != nil {
		logger.Log.Warn("Failed to cache settings", zap.Error(err))
	}
}
