package model

type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalDenied   WithdrawalStatus = "denied"
)

// Terminal 终态不可再流转
func (s WithdrawalStatus) Terminal() bool {
	return s == WithdrawalApproved || s == WithdrawalDenied
}

type PaymentMode string

const (
	PaymentGCash PaymentMode = "GCash"
	PaymentMaya  PaymentMode = "Maya"
)

func (m PaymentMode) Valid() bool {
	return m == PaymentGCash || m == PaymentMaya
}

// swagger:model Withdrawal
type Withdrawal struct {
	BaseModel
	UserID         uint             `gorm:"index;not null" json:"userId"`
	User           *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Amount         int              `gorm:"not null" json:"amount"` // 申请提现的金币数
	PaymentMode    PaymentMode      `gorm:"type:enum('GCash','Maya');not null" json:"paymentMode"`
	AccountDetails string           `gorm:"size:255" json:"accountDetails"`
	Status         WithdrawalStatus `gorm:"type:enum('pending','approved','denied');default:'pending';not null" json:"status"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}
