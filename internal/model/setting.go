package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	DefaultRewardAmount   = 2
	DefaultPenaltyAmount  = 2
	DefaultConversionRate = 100
)

// Setting 全局经济参数，整表只有一行
// swagger:model Setting
type Setting struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RewardAmount   int       `gorm:"default:2;not null" json:"rewardAmount"`    // 答对奖励金币数
	PenaltyAmount  int       `gorm:"default:2;not null" json:"penaltyAmount"`   // 答错扣除金币数
	ConversionRate int       `gorm:"default:100;not null" json:"conversionRate"` // 多少金币兑1单位货币
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Setting) TableName() string {
	return "settings"
}

// BeforeCreate 零值字段落库前补默认值，保证新建行可直接使用
func (s *Setting) BeforeCreate(tx *gorm.DB) error {
	if s.RewardAmount == 0 {
		s.RewardAmount = DefaultRewardAmount
	}
	if s.PenaltyAmount == 0 {
		s.PenaltyAmount = DefaultPenaltyAmount
	}
	if s.ConversionRate == 0 {
		s.ConversionRate = DefaultConversionRate
	}
	return nil
}
