package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"gorm.io/gorm"
)

var (
	// ErrOrderNotFound 訂單不存在
	ErrOrderNotFound = errors.New("order not found")
)

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create - 創建訂單 db
func (s *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

// CreateOrderTx 在既有交易內創建訂單（含項目）
func (s *OrderRepo) CreateOrderTx(tx *gorm.DB, order *model.Order) error {
	return tx.Create(order).Error
}

func (s *OrderRepo) preloadAll(db *gorm.DB) *gorm.DB {
	return db.Preload("OrderItems").
		Preload("OrderItems.Product").
		Preload("ShippingAddress").
		Preload("BillingAddress").
		Preload("Payment")
}

// Read - 根據ID查詢訂單
func (s *OrderRepo) GetOrderByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := s.preloadAll(s.db.WithContext(ctx)).First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Read - 根據訂單編號查詢訂單
func (s *OrderRepo) GetOrderByNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	var order model.Order
	err := s.preloadAll(s.db.WithContext(ctx)).
		Where("order_number = ?", orderNumber).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Read - 根據用戶ID查詢訂單
func (s *OrderRepo) GetOrdersByUserID(ctx context.Context, userID int) ([]model.Order, error) {
	var orders []model.Order
	err := s.preloadAll(s.db.WithContext(ctx)).
		Where("user_id = ?", userID).Order("order_date DESC").Find(&orders).Error
	return orders, err
}

// 分頁查詢訂單
func (s *OrderRepo) GetOrdersPaginated(ctx context.Context, userID int, page, pageSize int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	offset := (page - 1) * pageSize

	// 計算總數
	s.db.WithContext(ctx).Model(&model.Order{}).Where("user_id = ?", userID).Count(&total)

	// 分頁查詢
	err := s.preloadAll(s.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Offset(offset).Limit(pageSize).Find(&orders).Error

	return orders, total, err
}

// Update - 更新訂單狀態
func (s *OrderRepo) UpdateOrderStatus(ctx context.Context, id uint, status model.OrderStatus) error {
	result := s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// Delete - 軟刪除訂單
func (s *OrderRepo) DeleteOrder(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&model.Order{}, id).Error
}

// Delete - 硬刪除訂單
func (s *OrderRepo) HardDeleteOrder(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Unscoped().Delete(&model.Order{}, id).Error
}
