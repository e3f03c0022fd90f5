package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type CartServiceTestSuite struct {
	suite.Suite
	conn        *gorm.DB
	store       db.UnifiedDB
	cartService *CartService
}

func (suite *CartServiceTestSuite) SetupSuite() {
	store, conn := getTestStore(suite.T())
	suite.conn = conn
	suite.store = store
	suite.cartService = NewCartService(store)
}

func (suite *CartServiceTestSuite) SetupTest() {
	truncateAll(suite.conn)
}

func (suite *CartServiceTestSuite) TearDownSuite() {
	sqlDB, _ := suite.conn.DB()
	sqlDB.Close()
}

func (suite *CartServiceTestSuite) TestAddItem_CreatesCartLazily() {
	ctx := context.Background()
	user := createTestUser(suite.T(), suite.store)
	product := createTestProduct(suite.T(), suite.store, 100, 10)

	cart, err := suite.cartService.AddItem(ctx, user.UserID, product.ProductID, 2)

	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, 1)
	require.Equal(suite.T(), 2, cart.Items[0].Quantity)
	require.True(suite.T(), decimal.NewFromInt(200).Equal(cart.Items[0].Price))
	require.True(suite.T(), decimal.NewFromInt(200).Equal(cart.TotalPrice))
}

func (suite *CartServiceTestSuite) TestAddItem_AccumulatesQuantity() {
	ctx := context.Background()
	user := createTestUser(suite.T(), suite.store)
	product := createTestProduct(suite.T(), suite.store, 100, 10)

	_, err := suite.cartService.AddItem(ctx, user.UserID, product.ProductID, 2)
	require.NoError(suite.T(), err)
	cart, err := suite.cartService.AddItem(ctx, user.UserID, product.ProductID, 3)
	require.NoError(suite.T(), err)

	require.Len(suite.T(), cart.Items, 1)
	require.Equal(suite.T(), 5, cart.Items[0].Quantity)
	require.True(suite.T(), decimal.NewFromInt(500).Equal(cart.TotalPrice))
}

func (suite *CartServiceTestSuite) TestAddItem_InvalidQuantity() {
	user := createTestUser(suite.T(), suite.store)
	product := createTestProduct(suite.T(), suite.store, 100, 10)

	_, err := suite.cartService.AddItem(context.Background(), user.UserID, product.ProductID, 0)

	require.ErrorIs(suite.T(), err, ErrInvalidQuantity)
}

func (suite *CartServiceTestSuite) TestAddItem_ProductNotFound() {
	user := createTestUser(suite.T(), suite.store)

	_, err := suite.cartService.AddItem(context.Background(), user.UserID, 99999, 1)

	require.ErrorIs(suite.T(), err, db.ErrProductNotFound)
}

// 加入後改價，再次加入時整行以新單價重算
func (suite *CartServiceTestSuite) TestAddItem_RecalculatesLineOnPriceChange() {
	ctx := context.Background()
	user := createTestUser(suite.T(), suite.store)
	product := createTestProduct(suite.T(), suite.store, 100, 10)

	_, err := suite.cartService.AddItem(ctx, user.UserID, product.ProductID, 2)
	require.NoError(suite.T(), err)

	product.Price = decimal.NewFromInt(150)
	require.NoError(suite.T(), suite.store.UpdateProduct(ctx, product))

	cart, err := suite.cartService.AddItem(ctx, user.UserID, product.ProductID, 1)
	require.NoError(suite.T(), err)

	// 3 件全部以 150 計
	require.True(suite.T(), decimal.NewFromInt(450).Equal(cart.Items[0].Price))
}

func (suite *CartServiceTestSuite) TestAddItems_ValidatesAllBeforeApply() {
	ctx := context.Background()
	user := createTestUser(suite.T(), suite.store)
	product := createTestProduct(suite.T(), suite.store, 100, 10)

	_, err := suite.cartService.AddItems(ctx, user.UserID, []CartItemInput{
		{ProductID: product.ProductID, Quantity: 1},
		{ProductID: 99999, Quantity: 1},
	})
	require.ErrorIs(suite.T(), err, db.ErrProductNotFound)

	// 任一商品不存在就不得有部分套用
	_, err = suite.store.GetCartByUserID(ctx, user.UserID)
	require.ErrorIs(suite.T(), err, db.ErrCartNotFound)
}

func (suite *CartServiceTestSuite) TestUpdateQuantity() {
	ctx := context.Background()
	user := createTestUser(suite.T(), suite.store)
	product := createTestProduct(suite.T(), suite.store, 100, 10)
	cart, err := suite.cartService.AddItem(ctx, user.UserID, product.ProductID, 2)
	require.NoError(suite.T(), err)

	updated, err := suite.cartService.UpdateQuantity(ctx, user.UserID, cart.Items[0].CartItemID, 5)

	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 5, updated.Items[0].Quantity)
	require.True(suite.T(), decimal.NewFromInt(500).Equal(updated.TotalPrice))
}

func (suite *CartServiceTestSuite) TestUpdateQuantity_NotOwner() {
	ctx := context.Background()
	owner := createTestUser(suite.T(), suite.store)
	intruder := createTestUser(suite.T(), suite.store)
	product := createTestProduct(suite.T(), suite.store, 100, 10)
	cart, err := suite.cartService.AddItem(ctx, owner.UserID, product.ProductID, 2)
	require.NoError(suite.T(), err)

	_, err = suite.cartService.UpdateQuantity(ctx, intruder.UserID, cart.Items[0].CartItemID, 5)

	require.ErrorIs(suite.T(), err, ErrNotCartOwner)
}

func (suite *CartServiceTestSuite) TestRemoveItem() {
	ctx := context.Background()
	user := createTestUser(suite.T(), suite.store)
	productA := createTestProduct(suite.T(), suite.store, 100, 10)
	productB := createTestProduct(suite.T(), suite.store, 50, 10)
	_, err := suite.cartService.AddItem(ctx, user.UserID, productA.ProductID, 1)
	require.NoError(suite.T(), err)
	cart, err := suite.cartService.AddItem(ctx, user.UserID, productB.ProductID, 1)
	require.NoError(suite.T(), err)

	var targetID uint
	for _, item := range cart.Items {
		if item.ProductID == productA.ProductID {
			targetID = item.CartItemID
		}
	}

	updated, err := suite.cartService.RemoveItem(ctx, user.UserID, targetID)

	require.NoError(suite.T(), err)
	require.Len(suite.T(), updated.Items, 1)
	require.Equal(suite.T(), productB.ProductID, updated.Items[0].ProductID)
	require.True(suite.T(), decimal.NewFromInt(50).Equal(updated.TotalPrice))
}

// 批次移除時不存在或不屬於該用戶的項目直接略過
func (suite *CartServiceTestSuite) TestRemoveItems_SkipsForeignAndMissing() {
	ctx := context.Background()
	user := createTestUser(suite.T(), suite.store)
	other := createTestUser(suite.T(), suite.store)
	product := createTestProduct(suite.T(), suite.store, 100, 10)
	cart, err := suite.cartService.AddItem(ctx, user.UserID, product.ProductID, 1)
	require.NoError(suite.T(), err)
	otherCart, err := suite.cartService.AddItem(ctx, other.UserID, product.ProductID, 1)
	require.NoError(suite.T(), err)

	updated, err := suite.cartService.RemoveItems(ctx, user.UserID, []uint{
		cart.Items[0].CartItemID,
		otherCart.Items[0].CartItemID,
		99999,
	})

	require.NoError(suite.T(), err)
	require.Empty(suite.T(), updated.Items)

	// 別人的購物車不受影響
	foreign, err := suite.store.GetCartByUserID(ctx, other.UserID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), foreign.Items, 1)
}

func (suite *CartServiceTestSuite) TestClear() {
	ctx := context.Background()
	user := createTestUser(suite.T(), suite.store)
	product := createTestProduct(suite.T(), suite.store, 100, 10)
	_, err := suite.cartService.AddItem(ctx, user.UserID, product.ProductID, 1)
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.cartService.Clear(ctx, user.UserID))

	_, err = suite.store.GetCartByUserID(ctx, user.UserID)
	require.ErrorIs(suite.T(), err, db.ErrCartNotFound)
}

func (suite *CartServiceTestSuite) TestClear_NoCart() {
	user := createTestUser(suite.T(), suite.store)

	err := suite.cartService.Clear(context.Background(), user.UserID)

	require.ErrorIs(suite.T(), err, db.ErrCartNotFound)
}

func TestCartServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}
