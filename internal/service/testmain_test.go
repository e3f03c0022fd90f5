package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// 測試用本地資料庫
func getTestStore(t require.TestingT) (db.UnifiedDB, *gorm.DB) {
	conn, err := db.GetDbConn("lab_shop", "localhost", "5432", "royce", "password")
	require.NoError(t, err)
	store := db.NewUnifiedDB(conn)
	require.NoError(t, store.InitMigrate())
	return store, conn
}

// 清空資料表，依FK順序
func truncateAll(conn *gorm.DB) {
	conn.Exec("DELETE FROM order_items")
	conn.Exec("DELETE FROM orders")
	conn.Exec("DELETE FROM payment_infos")
	conn.Exec("DELETE FROM cart_items")
	conn.Exec("DELETE FROM carts")
	conn.Exec("DELETE FROM addresses")
	conn.Exec("DELETE FROM products")
	conn.Exec("DELETE FROM users")
}

// noopNotifier 測試時不真的發通知
type noopNotifier struct {
	sent atomic.Int32
}

func (n *noopNotifier) SendOrderConfirmation(ctx context.Context, orderID uint) error {
	n.sent.Add(1)
	return nil
}

var seq atomic.Int64

func uniqueSuffix() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), seq.Add(1))
}

func createTestUser(t require.TestingT, store db.UnifiedDB) *model.User {
	user := &model.User{
		UserName:  "Test User",
		UserEmail: fmt.Sprintf("user-%s@example.com", uniqueSuffix()),
	}
	_, err := store.CreateUser(context.Background(), user)
	require.NoError(t, err)
	return user
}

func createTestAddress(t require.TestingT, store db.UnifiedDB, userID int) *model.Address {
	address := &model.Address{
		UserID:  userID,
		Street:  "123 Test St",
		City:    "Addis Ababa",
		Country: "ET",
	}
	require.NoError(t, store.CreateAddress(context.Background(), address))
	return address
}

func createTestProduct(t require.TestingT, store db.UnifiedDB, price int64, stock uint) *model.Product {
	product := &model.Product{
		Code:  fmt.Sprintf("PROD-%s", uniqueSuffix()),
		Name:  "Test Product",
		Price: decimal.NewFromInt(price),
		Stock: stock,
	}
	require.NoError(t, store.CreateProduct(context.Background(), product))
	return product
}

// createTestPayment 落地一筆尚未被訂單消耗的付款
func createTestPayment(t require.TestingT, store db.UnifiedDB, userID int, amount int64, productID *uint) *model.PaymentInfo {
	payment := &model.PaymentInfo{
		UserID:    userID,
		Amount:    decimal.NewFromInt(amount),
		Currency:  "ETB",
		TxRef:     fmt.Sprintf("TX-%s", uniqueSuffix()),
		ProductID: productID,
	}
	require.NoError(t, store.CreatePayment(context.Background(), payment))
	return payment
}
