package model

import (
	"time"
)

type UserRole string

const (
	Player UserRole = "user"
	Admin  UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name             string    `gorm:"size:100;not null" json:"name"`
	Email            string    `gorm:"size:100;unique;not null" json:"email"`
	Password         string    `gorm:"size:100;not null" json:"-"`
	Role             UserRole  `gorm:"type:enum('user','admin');default:'user'" json:"role"`
	Avatar           string    `gorm:"size:255" json:"avatar"`
	Coins            int       `gorm:"default:0;not null" json:"coins"` // 金币余额，永不为负
	TotalQuestions   int       `gorm:"default:0;not null" json:"totalQuestions"`
	CorrectAnswers   int       `gorm:"default:0;not null" json:"correctAnswers"`
	IncorrectAnswers int       `gorm:"default:0;not null" json:"incorrectAnswers"`
	Disabled         bool      `gorm:"default:false" json:"disabled"`
	LastLogin        time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen         time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == Admin
}
