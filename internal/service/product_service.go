package service

import (
	"context"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
)

type IProductService interface {
	GetProduct(ctx context.Context, productID uint) (*model.Product, error)
	GetProducts(ctx context.Context, page, pageSize int) ([]model.Product, int64, error)
}

// ProductService 目錄唯讀查詢
// 庫存寫入只走訂單交易，目錄管理屬於外部系統
type ProductService struct {
	store db.UnifiedDB
}

func NewProductService(store db.UnifiedDB) *ProductService {
	return &ProductService{store: store}
}

func (p *ProductService) GetProduct(ctx context.Context, productID uint) (*model.Product, error) {
	return p.store.GetProductByID(ctx, productID)
}

func (p *ProductService) GetProducts(ctx context.Context, page, pageSize int) ([]model.Product, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return p.store.GetProductsPaginated(ctx, page, pageSize)
}

var _ IProductService = (*ProductService)(nil)
