package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RoyceAzure/lab/shop/internal/api"
	"github.com/RoyceAzure/lab/shop/internal/api/dto"
	"github.com/RoyceAzure/lab/shop/internal/api/handler"
	"github.com/RoyceAzure/lab/shop/internal/api/router"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/service"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// stub services，只回傳預先設定的結果
type stubOrderService struct {
	service.IOrderService
	createOrderFn func(ctx context.Context, userID int, txRef string, shippingAddressID uint, billingAddressID *uint) (string, error)
	updateStatusFn func(ctx context.Context, orderID uint, statusIndex int) (*model.Order, error)
}

func (s *stubOrderService) CreateOrder(ctx context.Context, userID int, txRef string, shippingAddressID uint, billingAddressID *uint) (string, error) {
	return s.createOrderFn(ctx, userID, txRef, shippingAddressID, billingAddressID)
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, orderID uint, statusIndex int) (*model.Order, error) {
	return s.updateStatusFn(ctx, orderID, statusIndex)
}

type stubPaymentService struct {
	verifyFn func(ctx context.Context, userID int, txRef string, productID *uint) (*model.PaymentInfo, error)
}

func (s *stubPaymentService) VerifyTransaction(ctx context.Context, userID int, txRef string, productID *uint) (*model.PaymentInfo, error) {
	return s.verifyFn(ctx, userID, txRef, productID)
}

type stubCartService struct {
	service.ICartService
}

type stubProductService struct {
	service.IProductService
}

func newTestRouter(orderService service.IOrderService, paymentService service.IPaymentService) http.Handler {
	logger := zerolog.Nop()
	server := handler.NewServer(
		handler.NewCartHandler(&stubCartService{}),
		handler.NewOrderHandler(orderService, paymentService),
		handler.NewProductHandler(&stubProductService{}),
	)
	return router.SetupRouter(server, &logger)
}

func okPayment(txRef string) *stubPaymentService {
	return &stubPaymentService{
		verifyFn: func(ctx context.Context, userID int, tr string, productID *uint) (*model.PaymentInfo, error) {
			return &model.PaymentInfo{
				PaymentID: 1,
				UserID:    userID,
				Amount:    decimal.NewFromInt(100),
				Currency:  "ETB",
				TxRef:     txRef,
			}, nil
		},
	}
}

func doJSON(t *testing.T, r http.Handler, method, path string, userID int, body any) (*httptest.ResponseRecorder, api.Response) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID > 0 {
		req.Header.Set("X-User-Id", fmt.Sprintf("%d", userID))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var resp api.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec, resp
}

func TestCreateOrder_Success(t *testing.T) {
	orderService := &stubOrderService{
		createOrderFn: func(ctx context.Context, userID int, txRef string, shippingAddressID uint, billingAddressID *uint) (string, error) {
			require.Equal(t, 7, userID)
			require.Equal(t, "TX-1", txRef)
			require.Equal(t, uint(3), shippingAddressID)
			return "ORD-20260901-ABCDEF12", nil
		},
	}
	r := newTestRouter(orderService, okPayment("TX-1"))

	rec, resp := doJSON(t, r, http.MethodPost, "/api/v1/order/", 7, dto.CreateOrderDTO{
		TxRef:             "TX-1",
		ShippingAddressID: 3,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)
	data := resp.Data.(map[string]any)
	require.Equal(t, "ORD-20260901-ABCDEF12", data["order_number"])
}

func TestCreateOrder_Unauthenticated(t *testing.T) {
	r := newTestRouter(&stubOrderService{}, okPayment("TX-1"))

	rec, resp := doJSON(t, r, http.MethodPost, "/api/v1/order/", 0, dto.CreateOrderDTO{TxRef: "TX-1"})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, resp.Success)
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	orderService := &stubOrderService{
		createOrderFn: func(ctx context.Context, userID int, txRef string, shippingAddressID uint, billingAddressID *uint) (string, error) {
			return "", fmt.Errorf("%w: product 1", service.ErrInsufficientStock)
		},
	}
	r := newTestRouter(orderService, okPayment("TX-1"))

	rec, resp := doJSON(t, r, http.MethodPost, "/api/v1/order/", 7, dto.CreateOrderDTO{
		TxRef:             "TX-1",
		ShippingAddressID: 3,
	})

	require.Equal(t, http.StatusConflict, rec.Code)
	require.False(t, resp.Success)
}

func TestCreateOrder_VerificationFailed_NoLeak(t *testing.T) {
	paymentService := &stubPaymentService{
		verifyFn: func(ctx context.Context, userID int, txRef string, productID *uint) (*model.PaymentInfo, error) {
			return nil, fmt.Errorf("%w: gateway said no, secret detail", service.ErrPaymentVerificationFailed)
		},
	}
	r := newTestRouter(&stubOrderService{}, paymentService)

	rec, resp := doJSON(t, r, http.MethodPost, "/api/v1/order/", 7, dto.CreateOrderDTO{
		TxRef:             "TX-1",
		ShippingAddressID: 3,
	})

	require.Equal(t, http.StatusBadGateway, rec.Code)
	// 5xx 不得洩漏內部細節
	require.Equal(t, "payment verification failed", resp.Message)
}

func TestCreateOrder_DuplicateTxRef(t *testing.T) {
	paymentService := &stubPaymentService{
		verifyFn: func(ctx context.Context, userID int, txRef string, productID *uint) (*model.PaymentInfo, error) {
			return nil, service.ErrDuplicateTxRef
		},
	}
	r := newTestRouter(&stubOrderService{}, paymentService)

	rec, resp := doJSON(t, r, http.MethodPost, "/api/v1/order/", 7, dto.CreateOrderDTO{
		TxRef:             "TX-USED",
		ShippingAddressID: 3,
	})

	require.Equal(t, http.StatusConflict, rec.Code)
	require.False(t, resp.Success)
}

func TestUpdateStatus_InvalidIndex(t *testing.T) {
	orderService := &stubOrderService{
		updateStatusFn: func(ctx context.Context, orderID uint, statusIndex int) (*model.Order, error) {
			return nil, service.ErrInvalidStatus
		},
	}
	r := newTestRouter(orderService, okPayment("TX-1"))

	rec, resp := doJSON(t, r, http.MethodPatch, "/api/v1/order/status/5", 7, dto.UpdateOrderStatusDTO{StatusIndex: 99})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, resp.Success)
}

func TestUpdateStatus_BackwardTransition(t *testing.T) {
	orderService := &stubOrderService{
		updateStatusFn: func(ctx context.Context, orderID uint, statusIndex int) (*model.Order, error) {
			return nil, fmt.Errorf("%w: Shipped -> Pending", service.ErrInvalidTransition)
		},
	}
	r := newTestRouter(orderService, okPayment("TX-1"))

	rec, _ := doJSON(t, r, http.MethodPatch, "/api/v1/order/status/5", 7, dto.UpdateOrderStatusDTO{StatusIndex: 1})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
