package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/shop/internal/api"
)

const (
	// UserIDKey 已認證用戶 id 的 context key
	UserIDKey contextKey = "user_id"

	userIDHeader = "X-User-Id"
)

// AuthMiddleware 解析上游認證服務塞入的用戶識別
// 認證本身由外部 authcenter 處理，這裡只消費其結果
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(userIDHeader)
		if raw == "" {
			api.ErrorJSON(w, http.StatusUnauthorized, "missing user identity")
			return
		}
		userID, err := strconv.Atoi(raw)
		if err != nil || userID <= 0 {
			api.ErrorJSON(w, http.StatusUnauthorized, "invalid user identity")
			return
		}
		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID 從 context 取出用戶 id，0 表示未認證
func GetUserID(r *http.Request) int {
	if v := r.Context().Value(UserIDKey); v != nil {
		return v.(int)
	}
	return 0
}
