package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrPaymentNotFound 付款資訊不存在
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrPaymentAlreadyVerified 付款已被訂單消耗
	ErrPaymentAlreadyVerified = errors.New("payment already verified")
)

type PaymentRepo struct {
	db *DbDao
}

func NewPaymentRepo(db *DbDao) *PaymentRepo {
	return &PaymentRepo{db: db}
}

// Create - 創建付款資訊，verified 一律為 false
func (s *PaymentRepo) CreatePayment(ctx context.Context, payment *model.PaymentInfo) error {
	return s.db.WithContext(ctx).Create(payment).Error
}

// Read - 根據ID查詢付款資訊
func (s *PaymentRepo) GetPaymentByID(ctx context.Context, id uint) (*model.PaymentInfo, error) {
	var payment model.PaymentInfo
	err := s.db.WithContext(ctx).First(&payment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// Read - 根據交易參考查詢付款資訊
func (s *PaymentRepo) GetPaymentByTxRef(ctx context.Context, txRef string) (*model.PaymentInfo, error) {
	var payment model.PaymentInfo
	err := s.db.WithContext(ctx).Where("tx_ref = ?", txRef).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// GetPaymentForUpdateTx 在既有交易內鎖定付款列後讀取
// 防止同一筆付款被兩張訂單同時消耗
func (s *PaymentRepo) GetPaymentForUpdateTx(tx *gorm.DB, txRef string) (*model.PaymentInfo, error) {
	var payment model.PaymentInfo
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tx_ref = ?", txRef).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// MarkVerifiedTx 在既有交易內將付款標記為 verified
func (s *PaymentRepo) MarkVerifiedTx(tx *gorm.DB, paymentID uint) error {
	return tx.Model(&model.PaymentInfo{}).
		Where("payment_id = ?", paymentID).
		Update("verified", true).Error
}
