package api

import (
	"encoding/json"
	"net/http"
)

// Response 統一回應格式
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func SuccessJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(Response{
		Success: true,
		Message: "success",
		Data:    data,
	})
}

// ErrorJSON 失敗回應，data 一律為 null
// 5xx 不得洩漏內部細節，message 由呼叫端給定
func ErrorJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}
