package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type OrderRepoTestSuite struct {
	suite.Suite
	db          *gorm.DB
	orderRepo   *OrderRepo
	userRepo    *UserRepo
	addressRepo *AddressRepo
	paymentRepo *PaymentRepo
	productRepo *ProductRepo
}

func (suite *OrderRepoTestSuite) SetupSuite() {
	conn := getTestDbConn(suite.T())
	dbDao := NewDbDao(conn)
	require.NoError(suite.T(), dbDao.InitMigrate())

	suite.db = conn
	suite.orderRepo = NewOrderRepo(dbDao)
	suite.userRepo = NewUserRepo(dbDao)
	suite.addressRepo = NewAddressRepo(dbDao)
	suite.paymentRepo = NewPaymentRepo(dbDao)
	suite.productRepo = NewProductRepo(dbDao)
}

func (suite *OrderRepoTestSuite) SetupTest() {
	truncateAll(suite.db)
}

func (suite *OrderRepoTestSuite) TearDownSuite() {
	sqlDB, _ := suite.db.DB()
	sqlDB.Close()
}

func (suite *OrderRepoTestSuite) createFixtures() (*model.User, *model.Address, *model.PaymentInfo, *model.Product) {
	ctx := context.Background()

	user := &model.User{UserName: "Test User", UserEmail: "order-test@example.com"}
	_, err := suite.userRepo.CreateUser(ctx, user)
	require.NoError(suite.T(), err)

	address := &model.Address{UserID: user.UserID, Street: "123 Test St", City: "Addis Ababa", Country: "ET"}
	require.NoError(suite.T(), suite.addressRepo.CreateAddress(ctx, address))

	payment := &model.PaymentInfo{
		UserID:   user.UserID,
		Amount:   decimal.NewFromInt(300),
		Currency: "ETB",
		TxRef:    fmt.Sprintf("TX-%d", time.Now().UnixNano()),
	}
	require.NoError(suite.T(), suite.paymentRepo.CreatePayment(ctx, payment))

	product := &model.Product{Code: "P1", Name: "Widget", Price: decimal.NewFromInt(100), Stock: 10}
	require.NoError(suite.T(), suite.productRepo.CreateProduct(ctx, product))

	return user, address, payment, product
}

func (suite *OrderRepoTestSuite) createTestOrder(user *model.User, address *model.Address, payment *model.PaymentInfo, product *model.Product) *model.Order {
	order := &model.Order{
		OrderNumber:       fmt.Sprintf("ORD-%d", time.Now().UnixNano()),
		UserID:            user.UserID,
		Status:            model.OrderStatusPending,
		ShippingAddressID: address.AddressID,
		PaymentID:         payment.PaymentID,
		Amount:            decimal.NewFromInt(300),
		OrderDate:         time.Now().UTC(),
		OrderItems: []model.OrderItem{
			{ProductID: product.ProductID, Quantity: 3, Price: decimal.NewFromInt(300)},
		},
	}
	require.NoError(suite.T(), suite.orderRepo.CreateOrder(context.Background(), order))
	return order
}

func (suite *OrderRepoTestSuite) TestCreateOrder() {
	order := suite.createTestOrder(suite.createFixtures())

	require.NotZero(suite.T(), order.OrderID)
	require.False(suite.T(), order.CreatedAt.IsZero())
}

func (suite *OrderRepoTestSuite) TestGetOrderByID_PreloadsAll() {
	user, address, payment, product := suite.createFixtures()
	order := suite.createTestOrder(user, address, payment, product)

	found, err := suite.orderRepo.GetOrderByID(context.Background(), order.OrderID)

	require.NoError(suite.T(), err)
	require.Len(suite.T(), found.OrderItems, 1)
	require.Equal(suite.T(), product.Name, found.OrderItems[0].Product.Name)
	require.Equal(suite.T(), address.Street, found.ShippingAddress.Street)
	require.Equal(suite.T(), payment.TxRef, found.Payment.TxRef)
	require.Nil(suite.T(), found.BillingAddress)
}

func (suite *OrderRepoTestSuite) TestGetOrderByNumber() {
	user, address, payment, product := suite.createFixtures()
	order := suite.createTestOrder(user, address, payment, product)

	found, err := suite.orderRepo.GetOrderByNumber(context.Background(), order.OrderNumber)

	require.NoError(suite.T(), err)
	require.Equal(suite.T(), order.OrderID, found.OrderID)

	// 重複查詢結果相同
	again, err := suite.orderRepo.GetOrderByNumber(context.Background(), order.OrderNumber)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), found.OrderID, again.OrderID)
	require.Equal(suite.T(), found.Status, again.Status)
}

func (suite *OrderRepoTestSuite) TestGetOrderByNumber_NotFound() {
	_, err := suite.orderRepo.GetOrderByNumber(context.Background(), "ORD-NOPE")

	require.ErrorIs(suite.T(), err, ErrOrderNotFound)
}

func (suite *OrderRepoTestSuite) TestUpdateOrderStatus() {
	user, address, payment, product := suite.createFixtures()
	order := suite.createTestOrder(user, address, payment, product)

	err := suite.orderRepo.UpdateOrderStatus(context.Background(), order.OrderID, model.OrderStatusShipped)

	require.NoError(suite.T(), err)
	found, err := suite.orderRepo.GetOrderByID(context.Background(), order.OrderID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), model.OrderStatusShipped, found.Status)
}

func (suite *OrderRepoTestSuite) TestUpdateOrderStatus_NotFound() {
	err := suite.orderRepo.UpdateOrderStatus(context.Background(), 99999, model.OrderStatusShipped)

	require.ErrorIs(suite.T(), err, ErrOrderNotFound)
}

func (suite *OrderRepoTestSuite) TestGetOrdersPaginated() {
	user, address, payment, product := suite.createFixtures()
	suite.createTestOrder(user, address, payment, product)

	orders, total, err := suite.orderRepo.GetOrdersPaginated(context.Background(), user.UserID, 1, 10)

	require.NoError(suite.T(), err)
	require.EqualValues(suite.T(), 1, total)
	require.Len(suite.T(), orders, 1)
}

func TestOrderRepoTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepoTestSuite))
}
