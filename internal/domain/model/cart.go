package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart 一個用戶只有一張購物車
// 購物車不預留庫存，結帳時才檢查
type Cart struct {
	CartID     uint            `gorm:"primaryKey"`
	UserID     int             `gorm:"not null;uniqueIndex"`
	Items      []CartItem      `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"` // 級聯刪除
	TotalPrice decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	CreatedAt  time.Time       `gorm:"not null;default:now()"`
	UpdatedAt  time.Time       `gorm:"null"`
}

// CartItem Price 為行小計快照 = Quantity * 加入當下的商品單價
// 同一張購物車內同一商品只會有一筆
type CartItem struct {
	CartItemID uint            `gorm:"primaryKey"`
	CartID     uint            `gorm:"not null;uniqueIndex:idx_cart_product"`
	ProductID  uint            `gorm:"not null;uniqueIndex:idx_cart_product"`
	Quantity   int             `gorm:"not null"`
	Price      decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	CreatedAt  time.Time       `gorm:"not null;default:now()"`
	UpdatedAt  time.Time       `gorm:"null"`
}
