package service

import (
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrInvalidPurchaseAmount 付款金額連一件商品都買不起
	ErrInvalidPurchaseAmount = errors.New("payment amount too small for product")
)

// purchaseResolution 意圖解析結果
// cartID 為 0 表示非購物車結帳，提交後不需要清空購物車
type purchaseResolution struct {
	items  []model.OrderItem
	cartID uint
}

// PurchaseIntent 結帳意圖
// 單品直購與購物車結帳各自解析出訂單項目，原子提交邏輯共用
type PurchaseIntent interface {
	resolveItems(tx *gorm.DB, store db.UnifiedDB) (*purchaseResolution, error)
}

// DirectProductPurchase 單品直購：數量 = floor(付款金額 / 商品單價)
type DirectProductPurchase struct {
	ProductID uint
	Amount    decimal.Decimal
}

func (d DirectProductPurchase) resolveItems(tx *gorm.DB, store db.UnifiedDB) (*purchaseResolution, error) {
	var product model.Product
	if err := tx.First(&product, d.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, db.ErrProductNotFound
		}
		return nil, err
	}

	if product.Price.IsZero() {
		return nil, fmt.Errorf("product %d has zero price", d.ProductID)
	}
	quantity := d.Amount.Div(product.Price).Floor().IntPart()
	if quantity < 1 {
		return nil, ErrInvalidPurchaseAmount
	}

	return &purchaseResolution{
		items: []model.OrderItem{
			{
				ProductID: d.ProductID,
				Quantity:  int(quantity),
				Price:     product.Price.Mul(decimal.NewFromInt(quantity)),
			},
		},
	}, nil
}

// CartCheckout 購物車結帳：項目 1:1 轉換，沿用已儲存的行小計
type CartCheckout struct {
	UserID int
}

func (c CartCheckout) resolveItems(tx *gorm.DB, store db.UnifiedDB) (*purchaseResolution, error) {
	cart, err := store.GetCartForUpdateTx(tx, c.UserID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, db.ErrCartNotFound
	}

	items := make([]model.OrderItem, 0, len(cart.Items))
	for _, cartItem := range cart.Items {
		items = append(items, model.OrderItem{
			ProductID: cartItem.ProductID,
			Quantity:  cartItem.Quantity,
			Price:     cartItem.Price,
		})
	}

	return &purchaseResolution{
		items:  items,
		cartID: cart.CartID,
	}, nil
}
