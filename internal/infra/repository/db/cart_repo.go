package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"gorm.io/gorm"
)

var (
	// ErrCartNotFound 購物車不存在
	ErrCartNotFound = errors.New("cart not found")
	// ErrCartItemNotFound 購物車項目不存在
	ErrCartItemNotFound = errors.New("cart item not found")
)

// 購物車為暫時性資料，刪除一律硬刪除，避免 user_id 唯一索引被軟刪除列卡住
type CartRepo struct {
	db *DbDao
}

func NewCartRepo(db *DbDao) *CartRepo {
	return &CartRepo{db: db}
}

// Create - 創建購物車
func (s *CartRepo) CreateCart(ctx context.Context, cart *model.Cart) error {
	return s.db.WithContext(ctx).Create(cart).Error
}

// Read - 根據用戶ID查詢購物車（含項目）
func (s *CartRepo) GetCartByUserID(ctx context.Context, userID int) (*model.Cart, error) {
	var cart model.Cart
	err := s.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// Read - 根據項目ID查詢購物車項目
func (s *CartRepo) GetCartItemByID(ctx context.Context, cartItemID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := s.db.WithContext(ctx).First(&item, cartItemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create - 新增購物車項目
func (s *CartRepo) CreateCartItem(ctx context.Context, item *model.CartItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

// Update - 更新購物車項目
func (s *CartRepo) UpdateCartItem(ctx context.Context, item *model.CartItem) error {
	return s.db.WithContext(ctx).Save(item).Error
}

// Delete - 刪除購物車項目
func (s *CartRepo) DeleteCartItem(ctx context.Context, cartItemID uint) error {
	return s.db.WithContext(ctx).Unscoped().Delete(&model.CartItem{}, cartItemID).Error
}

// Update - 更新購物車總價
func (s *CartRepo) UpdateCartTotal(ctx context.Context, cartID uint) error {
	return s.db.WithContext(ctx).Model(&model.Cart{}).
		Where("cart_id = ?", cartID).
		Update("total_price", gorm.Expr(
			"COALESCE((SELECT SUM(price) FROM cart_items WHERE cart_id = ?), 0)", cartID)).Error
}

// Delete - 刪除整張購物車與其項目
func (s *CartRepo) DeleteCart(ctx context.Context, cartID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.DeleteCartTx(tx, cartID)
	})
}

// DeleteCartTx 在既有交易內刪除購物車，結帳成功時與訂單寫入同一交易
func (s *CartRepo) DeleteCartTx(tx *gorm.DB, cartID uint) error {
	if err := tx.Unscoped().Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(&model.Cart{}, cartID).Error
}

// GetCartForUpdateTx 在既有交易內鎖定購物車後讀取（含項目）
func (s *CartRepo) GetCartForUpdateTx(tx *gorm.DB, userID int) (*model.Cart, error) {
	var cart model.Cart
	err := tx.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return &cart, nil
}
