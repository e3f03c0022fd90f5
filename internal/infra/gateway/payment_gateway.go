package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrVerificationFailed 閘道回覆非成功狀態
	ErrVerificationFailed = errors.New("payment verification failed")
	// ErrGatewayUnavailable 閘道連線失敗或逾時
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

// VerifyResult 閘道確認過的扣款結果
type VerifyResult struct {
	Amount   decimal.Decimal
	Currency string
	Success  bool
}

// IPaymentGateway 金流閘道合約
// 只負責確認該交易參考在閘道側扣款成功，verified flag 由訂單交易設置
type IPaymentGateway interface {
	VerifyTransaction(ctx context.Context, txRef string) (*VerifyResult, error)
}

type PaymentGatewayClient struct {
	baseURL string
	secret  string
	client  *http.Client
}

// NewPaymentGatewayClient timeout 必須有界，逾時視為驗證失敗而不是讓請求懸著
func NewPaymentGatewayClient(baseURL, secret string, timeout time.Duration) *PaymentGatewayClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PaymentGatewayClient{
		baseURL: baseURL,
		secret:  secret,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// 閘道回應格式
type verifyResponse struct {
	Status string `json:"status"`
	Data   struct {
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
		Status   string          `json:"status"`
	} `json:"data"`
}

func (c *PaymentGatewayClient) VerifyTransaction(ctx context.Context, txRef string) (*VerifyResult, error) {
	url := fmt.Sprintf("%s/transaction/verify/%s", c.baseURL, txRef)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secret)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: gateway returned %d", ErrVerificationFailed, resp.StatusCode)
	}

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrGatewayUnavailable, err)
	}

	if body.Status != "success" || body.Data.Status != "success" {
		return nil, fmt.Errorf("%w: tx_ref %s status %s", ErrVerificationFailed, txRef, body.Data.Status)
	}

	return &VerifyResult{
		Amount:   body.Data.Amount,
		Currency: body.Data.Currency,
		Success:  true,
	}, nil
}

var _ IPaymentGateway = (*PaymentGatewayClient)(nil)
