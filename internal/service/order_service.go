package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shop/internal/pkg/util"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrInsufficientStock 庫存不足，整筆交易回滾
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidStatus 狀態 index 超出範圍
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrInvalidTransition 狀態不可回退
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrNotOrderOwner 訂單存在但屬於其他用戶
	ErrNotOrderOwner = errors.New("order does not belong to user")
	// ErrNotPaymentOwner 付款存在但屬於其他用戶
	ErrNotPaymentOwner = errors.New("payment does not belong to user")
)

type IOrderService interface {
	CreateOrder(ctx context.Context, userID int, txRef string, shippingAddressID uint, billingAddressID *uint) (string, error)
	GetOrder(ctx context.Context, userID int, orderID uint) (*model.Order, error)
	GetOrders(ctx context.Context, userID int, page, pageSize int) ([]model.Order, int64, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*model.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, statusIndex int) (*model.Order, error)
}

// OrderService 訂單建立的核心交易
// 庫存檢查+扣減、訂單寫入、付款 verified 設置必須是同一個原子單位
type OrderService struct {
	store    db.UnifiedDB
	notifier INotificationService
	logger   *zerolog.Logger
}

func NewOrderService(store db.UnifiedDB, notifier INotificationService, logger *zerolog.Logger) *OrderService {
	return &OrderService{store: store, notifier: notifier, logger: logger}
}

// CreateOrder 從已確認的付款建立訂單，回傳訂單編號
//
// 交易內步驟:
//  1. 鎖定付款列，驗證持有人且尚未被消耗
//  2. 解析收件/帳單地址（帳單地址可選，但指定了就必須存在）
//  3. 由付款資訊決定結帳意圖並解析訂單項目
//  4. 依 product_id 升冪逐一鎖定商品列，檢查並扣減庫存
//  5. 寫入訂單與項目、設置 verified、清空購物車，一次提交
//
// 提交成功後通知為 fire-and-forget，失敗只記 log 不影響訂單
func (o *OrderService) CreateOrder(ctx context.Context, userID int, txRef string, shippingAddressID uint, billingAddressID *uint) (string, error) {
	var orderID uint
	orderNumber := util.GenerateOrderNumber()

	err := o.store.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment, err := o.store.GetPaymentForUpdateTx(tx, txRef)
		if err != nil {
			return err
		}
		if payment.UserID != userID {
			return ErrNotPaymentOwner
		}
		if payment.Verified {
			return db.ErrPaymentAlreadyVerified
		}

		if _, err := o.store.GetAddressByIDTx(tx, userID, shippingAddressID); err != nil {
			return err
		}
		if billingAddressID != nil {
			if _, err := o.store.GetAddressByIDTx(tx, userID, *billingAddressID); err != nil {
				return err
			}
		}

		var intent PurchaseIntent
		if payment.ProductID != nil {
			intent = DirectProductPurchase{ProductID: *payment.ProductID, Amount: payment.Amount}
		} else {
			intent = CartCheckout{UserID: userID}
		}

		resolution, err := intent.resolveItems(tx, o.store)
		if err != nil {
			return err
		}

		// 固定鎖定順序，避免多商品結帳互相死鎖
		sort.Slice(resolution.items, func(i, j int) bool {
			return resolution.items[i].ProductID < resolution.items[j].ProductID
		})

		amount := decimal.Zero
		for _, item := range resolution.items {
			product, err := o.store.GetProductForUpdateTx(tx, item.ProductID)
			if err != nil {
				return err
			}
			if int(product.Stock) < item.Quantity {
				return fmt.Errorf("%w: product %d (stock %d, requested %d)",
					ErrInsufficientStock, product.ProductID, product.Stock, item.Quantity)
			}
			if err := o.store.DeductStockTx(tx, item.ProductID, uint(item.Quantity)); err != nil {
				return err
			}
			amount = amount.Add(item.Price)
		}

		order := &model.Order{
			OrderNumber:       orderNumber,
			UserID:            userID,
			Status:            model.OrderStatusPending,
			ShippingAddressID: shippingAddressID,
			BillingAddressID:  billingAddressID,
			PaymentID:         payment.PaymentID,
			Amount:            amount,
			OrderDate:         time.Now().UTC(),
			OrderItems:        resolution.items,
		}
		if err := o.store.CreateOrderTx(tx, order); err != nil {
			return err
		}
		orderID = order.OrderID

		if err := o.store.MarkVerifiedTx(tx, payment.PaymentID); err != nil {
			return err
		}

		if resolution.cartID != 0 {
			if err := o.store.DeleteCartTx(tx, resolution.cartID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	// 提交已完成，通知失敗不得影響結果
	go func() {
		if err := o.notifier.SendOrderConfirmation(context.Background(), orderID); err != nil {
			o.logger.Error().
				Uint("order_id", orderID).
				Str("order_number", orderNumber).
				Err(err).
				Msg("failed to send order confirmation")
		}
	}()

	return orderNumber, nil
}

func (o *OrderService) GetOrder(ctx context.Context, userID int, orderID uint) (*model.Order, error) {
	order, err := o.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrNotOrderOwner
	}
	return order, nil
}

func (o *OrderService) GetOrders(ctx context.Context, userID int, page, pageSize int) ([]model.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return o.store.GetOrdersPaginated(ctx, userID, page, pageSize)
}

func (o *OrderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	return o.store.GetOrderByNumber(ctx, orderNumber)
}

// UpdateStatus 以 1-based index 更新訂單狀態
// 超出範圍回傳 ErrInvalidStatus，回退回傳 ErrInvalidTransition，訂單不變
func (o *OrderService) UpdateStatus(ctx context.Context, orderID uint, statusIndex int) (*model.Order, error) {
	status, ok := model.OrderStatusFromIndex(statusIndex)
	if !ok {
		return nil, ErrInvalidStatus
	}

	order, err := o.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	if err := o.store.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	return o.store.GetOrderByID(ctx, orderID)
}

var _ IOrderService = (*OrderService)(nil)
