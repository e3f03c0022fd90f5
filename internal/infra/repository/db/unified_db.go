package db

import (
	"context"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"gorm.io/gorm"
)

// UnifiedDB 統一的資料庫介面
type UnifiedDB interface {
	// 基礎操作
	GetDB() *gorm.DB
	InitMigrate() error

	// Product 相關操作
	IProductRepository

	// Cart 相關操作
	ICartRepository

	// Order 相關操作
	IOrderRepository

	// Payment 相關操作
	IPaymentRepository

	// Address 相關操作
	IAddressRepository

	// User 相關操作
	IUserRepository
}

// IProductRepository Product 相關操作介面
type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, productID uint) (*model.Product, error)
	GetProductByCode(ctx context.Context, code string) (*model.Product, error)
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	GetProductsInStock(ctx context.Context) ([]model.Product, error)
	GetProductsPaginated(ctx context.Context, page, pageSize int) ([]model.Product, int64, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	HardDeleteProduct(ctx context.Context, id uint) error
	GetProductForUpdateTx(tx *gorm.DB, productID uint) (*model.Product, error)
	DeductStockTx(tx *gorm.DB, productID uint, quantity uint) error
	DeductProductStock(ctx context.Context, productID uint, quantity uint) (int, error)
	AddProductStock(ctx context.Context, productID uint, quantity uint) (int, error)
}

// ICartRepository Cart 相關操作介面
type ICartRepository interface {
	CreateCart(ctx context.Context, cart *model.Cart) error
	GetCartByUserID(ctx context.Context, userID int) (*model.Cart, error)
	GetCartItemByID(ctx context.Context, cartItemID uint) (*model.CartItem, error)
	CreateCartItem(ctx context.Context, item *model.CartItem) error
	UpdateCartItem(ctx context.Context, item *model.CartItem) error
	DeleteCartItem(ctx context.Context, cartItemID uint) error
	UpdateCartTotal(ctx context.Context, cartID uint) error
	DeleteCart(ctx context.Context, cartID uint) error
	DeleteCartTx(tx *gorm.DB, cartID uint) error
	GetCartForUpdateTx(tx *gorm.DB, userID int) (*model.Cart, error)
}

// IOrderRepository Order 相關操作介面
type IOrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	CreateOrderTx(tx *gorm.DB, order *model.Order) error
	GetOrderByID(ctx context.Context, id uint) (*model.Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*model.Order, error)
	GetOrdersByUserID(ctx context.Context, userID int) ([]model.Order, error)
	GetOrdersPaginated(ctx context.Context, userID int, page, pageSize int) ([]model.Order, int64, error)
	UpdateOrderStatus(ctx context.Context, id uint, status model.OrderStatus) error
	DeleteOrder(ctx context.Context, id uint) error
	HardDeleteOrder(ctx context.Context, id uint) error
}

// IPaymentRepository Payment 相關操作介面
type IPaymentRepository interface {
	CreatePayment(ctx context.Context, payment *model.PaymentInfo) error
	GetPaymentByID(ctx context.Context, id uint) (*model.PaymentInfo, error)
	GetPaymentByTxRef(ctx context.Context, txRef string) (*model.PaymentInfo, error)
	GetPaymentForUpdateTx(tx *gorm.DB, txRef string) (*model.PaymentInfo, error)
	MarkVerifiedTx(tx *gorm.DB, paymentID uint) error
}

// IAddressRepository Address 相關操作介面
type IAddressRepository interface {
	CreateAddress(ctx context.Context, address *model.Address) error
	GetAddressByID(ctx context.Context, userID int, addressID uint) (*model.Address, error)
	GetAddressByIDTx(tx *gorm.DB, userID int, addressID uint) (*model.Address, error)
	GetAddressesByUserID(ctx context.Context, userID int) ([]model.Address, error)
	DeleteAddress(ctx context.Context, userID int, addressID uint) error
}

// IUserRepository User 相關操作介面
type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id int) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id int) error
}

// UnifiedDBImpl 統一資料庫實現
type UnifiedDBImpl struct {
	db    *gorm.DB
	dbDao *DbDao
	*ProductRepo
	*CartRepo
	*OrderRepo
	*PaymentRepo
	*AddressRepo
	*UserRepo
}

// NewUnifiedDB 創建新的統一資料庫實例
func NewUnifiedDB(conn *gorm.DB) *UnifiedDBImpl {
	dbDao := NewDbDao(conn)
	return &UnifiedDBImpl{
		db:          conn,
		dbDao:       dbDao,
		ProductRepo: NewProductRepo(dbDao),
		CartRepo:    NewCartRepo(dbDao),
		OrderRepo:   NewOrderRepo(dbDao),
		PaymentRepo: NewPaymentRepo(dbDao),
		AddressRepo: NewAddressRepo(dbDao),
		UserRepo:    NewUserRepo(dbDao),
	}
}

func (u *UnifiedDBImpl) InitMigrate() error {
	return u.dbDao.InitMigrate()
}

// GetDB 獲取資料庫連接
func (u *UnifiedDBImpl) GetDB() *gorm.DB {
	return u.db
}

var _ UnifiedDB = (*UnifiedDBImpl)(nil)
