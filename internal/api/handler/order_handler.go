package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/shop/internal/api"
	"github.com/RoyceAzure/lab/shop/internal/api/dto"
	m "github.com/RoyceAzure/lab/shop/internal/api/middleware"
	"github.com/RoyceAzure/lab/shop/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orderService   service.IOrderService
	paymentService service.IPaymentService
}

func NewOrderHandler(orderService service.IOrderService, paymentService service.IPaymentService) *OrderHandler {
	if orderService == nil || paymentService == nil {
		panic("orderService and paymentService cannot be nil")
	}
	return &OrderHandler{orderService: orderService, paymentService: paymentService}
}

// POST /order
// 由付款驗證流程觸發：先確認閘道扣款成功，再於同一請求內建立訂單
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := m.GetUserID(r)

	payment, err := h.paymentService.VerifyTransaction(r.Context(), userID, req.TxRef, req.ProductID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	orderNumber, err := h.orderService.CreateOrder(r.Context(), userID, payment.TxRef, req.ShippingAddressID, req.BillingAddressID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.CreateOrderResponseDTO{OrderNumber: orderNumber})
}

// GET /order
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	orders, total, err := h.orderService.GetOrders(r.Context(), m.GetUserID(r), page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	orderDTOs := make([]dto.OrderDTO, 0, len(orders))
	for i := range orders {
		orderDTOs = append(orderDTOs, dto.ConvertOrderToDTO(&orders[i]))
	}
	api.SuccessJSON(w, dto.OrderListDTO{Orders: orderDTOs, Total: total})
}

// GET /order/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), m.GetUserID(r), uint(id))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ConvertOrderToDTO(order))
}

// GET /order/number/{orderNumber}
func (h *OrderHandler) GetOrderByNumber(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "orderNumber")
	if orderNumber == "" {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid order number")
		return
	}

	order, err := h.orderService.GetOrderByNumber(r.Context(), orderNumber)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ConvertOrderToDTO(order))
}

// PATCH /order/status/{orderID}
// 僅限後台角色呼叫，上游閘道負責擋權限
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "orderID"), 10, 32)
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req dto.UpdateOrderStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), uint(id), req.StatusIndex)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ConvertOrderToDTO(order))
}
