package redis_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const txRefReserveTTL = 5 * time.Minute

// TxRefRepo 交易參考的預約鎖
// 同一個 tx_ref 在驗證流程進行中不允許第二個請求同時驗證
// 這是協調用的 key，不是實體快取
type TxRefRepo struct {
	cache *redis.Client
}

func NewTxRefRepo(cache *redis.Client) *TxRefRepo {
	return &TxRefRepo{cache: cache}
}

func generateTxRefKey(txRef string) string {
	return fmt.Sprintf("payment:txref:%s", txRef)
}

// Reserve 以 SETNX 取得預約，回傳 false 表示已有其他請求持有
func (r *TxRefRepo) Reserve(ctx context.Context, txRef string) (bool, error) {
	ok, err := r.cache.SetNX(ctx, generateTxRefKey(txRef), 1, txRefReserveTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve tx_ref: %w", err)
	}
	return ok, nil
}

// Release 釋放預約，驗證流程結束後呼叫
func (r *TxRefRepo) Release(ctx context.Context, txRef string) error {
	return r.cache.Del(ctx, generateTxRefKey(txRef)).Err()
}

// ITxRefRepository 預約鎖介面
type ITxRefRepository interface {
	Reserve(ctx context.Context, txRef string) (bool, error)
	Release(ctx context.Context, txRef string) error
}

var _ ITxRefRepository = (*TxRefRepo)(nil)
