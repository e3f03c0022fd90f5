package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/infra/gateway"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/redis_repo"
)

var (
	// ErrPaymentVerificationFailed 閘道驗證失敗、逾時或回覆非成功
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
	// ErrDuplicateTxRef 交易參考已被使用或正在被驗證
	ErrDuplicateTxRef = errors.New("transaction reference already used")
	ErrEmptyTxRef     = errors.New("transaction reference is empty")
)

type IPaymentService interface {
	VerifyTransaction(ctx context.Context, userID int, txRef string, productID *uint) (*model.PaymentInfo, error)
}

// PaymentService 只確立閘道側扣款成功並落地未驗證的付款資訊
// verified flag 由訂單建立交易設置，綁定庫存與地址
type PaymentService struct {
	store     db.UnifiedDB
	gateway   gateway.IPaymentGateway
	txRefRepo redis_repo.ITxRefRepository
}

func NewPaymentService(store db.UnifiedDB, gw gateway.IPaymentGateway, txRefRepo redis_repo.ITxRefRepository) *PaymentService {
	return &PaymentService{store: store, gateway: gw, txRefRepo: txRefRepo}
}

func (p *PaymentService) VerifyTransaction(ctx context.Context, userID int, txRef string, productID *uint) (*model.PaymentInfo, error) {
	if txRef == "" {
		return nil, ErrEmptyTxRef
	}

	// 同一個 tx_ref 只允許一個驗證流程進行
	ok, err := p.txRefRepo.Reserve(ctx, txRef)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDuplicateTxRef
	}
	defer p.txRefRepo.Release(ctx, txRef)

	existing, err := p.store.GetPaymentByTxRef(ctx, txRef)
	if err != nil && !errors.Is(err, db.ErrPaymentNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Verified {
			return nil, ErrDuplicateTxRef
		}
		// 已驗證過但尚未被訂單消耗，直接沿用
		return existing, nil
	}

	result, err := p.gateway.VerifyTransaction(ctx, txRef)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentVerificationFailed, err)
	}
	if !result.Success {
		return nil, ErrPaymentVerificationFailed
	}

	payment := &model.PaymentInfo{
		UserID:    userID,
		Amount:    result.Amount,
		Currency:  result.Currency,
		TxRef:     txRef,
		ProductID: productID,
		Verified:  false,
	}
	if err := p.store.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

var _ IPaymentService = (*PaymentService)(nil)
