package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrQuestionNotFound   = errors.New("question expired or invalid")
	ErrWithdrawalNotFound = errors.New("withdrawal not found")
	ErrWithdrawalSettled  = errors.New("withdrawal already settled")
	ErrInsufficientCoins  = errors.New("insufficient coins")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidPaymentMode = errors.New("unsupported payment mode")
)
