package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderNumber 產生對外訂單編號
// 全域唯一且不可變，與內部 order_id 無關
func GenerateOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%s",
		time.Now().UTC().Format("20060102"),
		strings.ToUpper(uuid.New().String()[:8]))
}
