package handler

import (
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/shop/internal/api"
	"github.com/RoyceAzure/lab/shop/internal/api/dto"
	"github.com/RoyceAzure/lab/shop/internal/service"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	productService service.IProductService
}

func NewProductHandler(productService service.IProductService) *ProductHandler {
	if productService == nil {
		panic("productService cannot be nil")
	}
	return &ProductHandler{productService: productService}
}

// GET /products
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	products, total, err := h.productService.GetProducts(r.Context(), page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	productDTOs := make([]dto.ProductDTO, 0, len(products))
	for i := range products {
		productDTOs = append(productDTOs, dto.ConvertProductToDTO(&products[i]))
	}
	api.SuccessJSON(w, map[string]any{
		"products": productDTOs,
		"total":    total,
	})
}

// GET /products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.productService.GetProduct(r.Context(), uint(id))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.SuccessJSON(w, dto.ConvertProductToDTO(product))
}
