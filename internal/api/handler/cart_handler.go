package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/shop/internal/api"
	"github.com/RoyceAzure/lab/shop/internal/api/dto"
	m "github.com/RoyceAzure/lab/shop/internal/api/middleware"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shop/internal/service"
	"github.com/shopspring/decimal"
)

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{cartService: cartService}
}

// POST /cart/add
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.cartService.AddItem(r.Context(), m.GetUserID(r), req.ProductID, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ConvertCartToDTO(cart))
}

// POST /cart/add-multiple
func (h *CartHandler) AddItems(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCartItemsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]service.CartItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CartItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	cart, err := h.cartService.AddItems(r.Context(), m.GetUserID(r), items)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ConvertCartToDTO(cart))
}

// PUT /cart/update
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.cartService.UpdateQuantity(r.Context(), m.GetUserID(r), req.CartItemID, req.NewQuantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ConvertCartToDTO(cart))
}

// DELETE /cart/remove
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req dto.RemoveCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.cartService.RemoveItem(r.Context(), m.GetUserID(r), req.CartItemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ConvertCartToDTO(cart))
}

// DELETE /cart/remove-multiple
func (h *CartHandler) RemoveItems(w http.ResponseWriter, r *http.Request) {
	var req dto.RemoveCartItemsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.cartService.RemoveItems(r.Context(), m.GetUserID(r), req.CartItemIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ConvertCartToDTO(cart))
}

// DELETE /cart/clear
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cartService.Clear(r.Context(), m.GetUserID(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, nil)
}

// GET /cart/items
// 購物車是懶建立的，還沒有購物車時回空內容
func (h *CartHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartService.GetCart(r.Context(), m.GetUserID(r))
	if err != nil {
		if errors.Is(err, db.ErrCartNotFound) {
			api.SuccessJSON(w, dto.CartDTO{
				TotalPrice: decimal.Zero,
				Items:      []dto.CartItemDTO{},
			})
			return
		}
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ConvertCartToDTO(cart))
}
