package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrProductStockNotEnough 商品庫存不足
	ErrProductStockNotEnough = errors.New("product stock not enough")
)

// 商品庫存只會在訂單提交時扣減，購物車操作不碰庫存
type ProductRepo struct {
	db *DbDao
}

func NewProductRepo(db *DbDao) *ProductRepo {
	return &ProductRepo{db: db}
}

func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *ProductRepo) GetProductByID(ctx context.Context, productID uint) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).First(&product, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *ProductRepo) GetProductByCode(ctx context.Context, code string) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *ProductRepo) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Find(&products).Error
	return products, err
}

// Read - 查詢有庫存的商品
func (s *ProductRepo) GetProductsInStock(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Where("stock > 0").Find(&products).Error
	return products, err
}

// Update - 更新商品
func (s *ProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Save(product).Error
}

// Delete - 硬刪除商品
func (s *ProductRepo) HardDeleteProduct(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Unscoped().Delete(&model.Product{}, id).Error
}

// 分頁查詢商品
func (s *ProductRepo) GetProductsPaginated(ctx context.Context, page, pageSize int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	offset := (page - 1) * pageSize

	// 計算總數
	s.db.WithContext(ctx).Model(&model.Product{}).Count(&total)

	// 分頁查詢
	err := s.db.WithContext(ctx).Offset(offset).Limit(pageSize).Find(&products).Error

	return products, total, err
}

// GetProductForUpdateTx 在既有交易內以 FOR UPDATE 鎖定商品列後讀取
// 庫存的 讀取-檢查-扣減 必須整段持有該鎖
func (s *ProductRepo) GetProductForUpdateTx(tx *gorm.DB, productID uint) (*model.Product, error) {
	var product model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// DeductStockTx 在既有交易內扣減庫存，呼叫前必須已持有該商品列的鎖
func (s *ProductRepo) DeductStockTx(tx *gorm.DB, productID uint, quantity uint) error {
	return tx.Model(&model.Product{}).
		Where("product_id = ?", productID).
		Update("stock", gorm.Expr("stock - ?", quantity)).Error
}

// DeductProductStock 獨立交易版本的庫存扣減，檢查與扣減為同一原子單位
func (s *ProductRepo) DeductProductStock(ctx context.Context, productID uint, quantity uint) (int, error) {
	var currentStock int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.GetProductForUpdateTx(tx, productID)
		if err != nil {
			return err
		}

		// 檢查庫存是否足夠
		if product.Stock < quantity {
			return ErrProductStockNotEnough
		}

		if err := s.DeductStockTx(tx, productID, quantity); err != nil {
			return err
		}

		currentStock = int(product.Stock) - int(quantity)
		return nil
	})

	if err != nil {
		return 0, err
	}
	return currentStock, nil
}

// AddProductStock 補貨
func (s *ProductRepo) AddProductStock(ctx context.Context, productID uint, quantity uint) (int, error) {
	var currentStock int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.GetProductForUpdateTx(tx, productID)
		if err != nil {
			return err
		}

		if err := tx.Model(&model.Product{}).
			Where("product_id = ?", productID).
			Update("stock", gorm.Expr("stock + ?", quantity)).Error; err != nil {
			return err
		}

		currentStock = int(product.Stock) + int(quantity)
		return nil
	})

	if err != nil {
		return 0, err
	}
	return currentStock, nil
}
