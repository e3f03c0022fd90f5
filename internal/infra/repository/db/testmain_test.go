package db

import (
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// 測試用本地資料庫
func getTestDbConn(t require.TestingT) *gorm.DB {
	db, err := GetDbConn("lab_shop", "localhost", "5432", "royce", "password")
	require.NoError(t, err)
	return db
}

// 清空資料表，依FK順序
func truncateAll(db *gorm.DB) {
	db.Exec("DELETE FROM order_items")
	db.Exec("DELETE FROM orders")
	db.Exec("DELETE FROM payment_infos")
	db.Exec("DELETE FROM cart_items")
	db.Exec("DELETE FROM carts")
	db.Exec("DELETE FROM addresses")
	db.Exec("DELETE FROM products")
	db.Exec("DELETE FROM users")
}
