package model

import (
	"github.com/shopspring/decimal"
)

// PaymentInfo 金流閘道回來的付款資訊
// Verified 只能由訂單建立交易設置為 true，且一筆付款只能被一張訂單消耗
type PaymentInfo struct {
	PaymentID uint            `gorm:"primaryKey"`
	UserID    int             `gorm:"not null;index"`
	Amount    decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	Currency  string          `gorm:"not null;type:varchar(10)"`
	TxRef     string          `gorm:"not null;type:varchar(100);unique"`
	ProductID *uint           `gorm:"null"` // 單品直購時才有值，否則走購物車結帳
	Verified  bool            `gorm:"not null;default:false"`
	BaseModel
}
