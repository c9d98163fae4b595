package database

import (
	"fmt"
	"log"
	"mathcoins_backend/internal/config"
	"mathcoins_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Setting{},
		&model.Withdrawal{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 经济参数单例：缺失时写入默认行（答对+2，答错-2，100金币=1货币单位）
	var count int64
	db.Model(&model.Setting{}).Count(&count)
	if count == 0 {
		db.Create(&model.Setting{
			RewardAmount:   2,
			PenaltyAmount:  2,
			ConversionRate: 100,
		})
	}

	return db, nil
}
