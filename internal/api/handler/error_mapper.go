package handler

import (
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/shop/internal/api"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shop/internal/service"
)

// writeServiceError 將 service 層錯誤映射為 HTTP 狀態
// 5xx 一律回generic message，不洩漏內部細節
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrProductNotFound),
		errors.Is(err, db.ErrCartNotFound),
		errors.Is(err, db.ErrCartItemNotFound),
		errors.Is(err, db.ErrAddressNotFound),
		errors.Is(err, db.ErrOrderNotFound),
		errors.Is(err, db.ErrPaymentNotFound),
		errors.Is(err, db.ErrUserNotFound):
		api.ErrorJSON(w, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrNotCartOwner),
		errors.Is(err, service.ErrNotOrderOwner),
		errors.Is(err, service.ErrNotPaymentOwner):
		api.ErrorJSON(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrDuplicateTxRef),
		errors.Is(err, db.ErrPaymentAlreadyVerified):
		api.ErrorJSON(w, http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrEmptyItems),
		errors.Is(err, service.ErrEmptyTxRef),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrInvalidPurchaseAmount):
		api.ErrorJSON(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrPaymentVerificationFailed):
		api.ErrorJSON(w, http.StatusBadGateway, "payment verification failed")

	default:
		api.ErrorJSON(w, http.StatusInternalServerError, "internal server error")
	}
}
