package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus 封閉狀態列舉，對外以 1-based index 表示
type OrderStatus uint

const (
	OrderStatusPending   OrderStatus = 1 // 待處理
	OrderStatusShipped   OrderStatus = 2 // 已出貨
	OrderStatusDelivered OrderStatus = 3 // 已送達
)

var orderStatusNames = map[OrderStatus]string{
	OrderStatusPending:   "Pending",
	OrderStatusShipped:   "Shipped",
	OrderStatusDelivered: "Delivered",
}

func (s OrderStatus) String() string {
	if name, ok := orderStatusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// OrderStatusFromIndex 將 1-based index 轉成狀態，超出範圍回傳 false
func OrderStatusFromIndex(idx int) (OrderStatus, bool) {
	s := OrderStatus(idx)
	_, ok := orderStatusNames[s]
	return s, ok
}

// CanTransitionTo 狀態只能往前走，不可回退
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	return target > s
}

type Order struct {
	OrderID           uint            `gorm:"primaryKey"`
	OrderNumber       string          `gorm:"not null;type:varchar(64);unique"` // 對外查詢用，不可變
	UserID            int             `gorm:"not null;index"`
	Status            OrderStatus     `gorm:"not null;default:1"`
	ShippingAddressID uint            `gorm:"not null"`
	BillingAddressID  *uint           `gorm:"null"`
	PaymentID         uint            `gorm:"not null;unique"` // 一筆付款對應一張訂單
	Amount            decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	OrderDate         time.Time       `gorm:"not null"`
	OrderItems        []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"` // 一對多，級聯刪除
	ShippingAddress   Address         `gorm:"foreignKey:ShippingAddressID"`
	BillingAddress    *Address        `gorm:"foreignKey:BillingAddressID"`
	Payment           PaymentInfo     `gorm:"foreignKey:PaymentID"`
	BaseModel
}

// OrderItem Price 為下單當下的行小計快照，商品價格日後變動不影響
type OrderItem struct {
	OrderItemID uint            `gorm:"primaryKey"`
	OrderID     uint            `gorm:"not null;index"`
	ProductID   uint            `gorm:"not null"`
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	Product     Product         `gorm:"foreignKey:ProductID"`
	BaseModel
}
