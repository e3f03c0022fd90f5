package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrEmptyItems      = errors.New("item list is empty")
	// ErrNotCartOwner 項目存在但屬於其他用戶的購物車
	ErrNotCartOwner = errors.New("cart item does not belong to user")
)

// CartItemInput 批次加入購物車的輸入
type CartItemInput struct {
	ProductID uint
	Quantity  int
}

type ICartService interface {
	AddItem(ctx context.Context, userID int, productID uint, quantity int) (*model.Cart, error)
	AddItems(ctx context.Context, userID int, items []CartItemInput) (*model.Cart, error)
	UpdateQuantity(ctx context.Context, userID int, cartItemID uint, newQuantity int) (*model.Cart, error)
	RemoveItem(ctx context.Context, userID int, cartItemID uint) (*model.Cart, error)
	RemoveItems(ctx context.Context, userID int, cartItemIDs []uint) (*model.Cart, error)
	Clear(ctx context.Context, userID int) error
	GetCart(ctx context.Context, userID int) (*model.Cart, error)
}

// 購物車不預留庫存，庫存只在訂單提交時檢查與扣減
type CartService struct {
	store db.UnifiedDB
}

func NewCartService(store db.UnifiedDB) *CartService {
	return &CartService{store: store}
}

// AddItem 加入商品到購物車
// 同商品已存在時累加數量，行小計一律以當下目錄單價重算
func (c *CartService) AddItem(ctx context.Context, userID int, productID uint, quantity int) (*model.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := c.store.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := c.store.GetCartByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, db.ErrCartNotFound) {
			return nil, err
		}
		// 第一次加入時才建立購物車
		cart = &model.Cart{
			UserID:     userID,
			TotalPrice: decimal.Zero,
		}
		if err := c.store.CreateCart(ctx, cart); err != nil {
			return nil, err
		}
	}

	var existing *model.CartItem
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			existing = &cart.Items[i]
			break
		}
	}

	if existing != nil {
		existing.Quantity += quantity
		existing.Price = product.Price.Mul(decimal.NewFromInt(int64(existing.Quantity)))
		if err := c.store.UpdateCartItem(ctx, existing); err != nil {
			return nil, err
		}
	} else {
		item := &model.CartItem{
			CartID:    cart.CartID,
			ProductID: productID,
			Quantity:  quantity,
			Price:     product.Price.Mul(decimal.NewFromInt(int64(quantity))),
		}
		if err := c.store.CreateCartItem(ctx, item); err != nil {
			return nil, err
		}
	}

	if err := c.store.UpdateCartTotal(ctx, cart.CartID); err != nil {
		return nil, err
	}
	return c.store.GetCartByUserID(ctx, userID)
}

// AddItems 批次加入，先驗證所有商品存在才套用
func (c *CartService) AddItems(ctx context.Context, userID int, items []CartItemInput) (*model.Cart, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if _, err := c.store.GetProductByID(ctx, item.ProductID); err != nil {
			return nil, err
		}
	}

	var cart *model.Cart
	var err error
	for _, item := range items {
		cart, err = c.AddItem(ctx, userID, item.ProductID, item.Quantity)
		if err != nil {
			return nil, err
		}
	}
	return cart, nil
}

// UpdateQuantity 更新項目數量，行小計以當下目錄單價重算
func (c *CartService) UpdateQuantity(ctx context.Context, userID int, cartItemID uint, newQuantity int) (*model.Cart, error) {
	if newQuantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item, err := c.ownedCartItem(ctx, userID, cartItemID)
	if err != nil {
		return nil, err
	}

	product, err := c.store.GetProductByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}

	item.Quantity = newQuantity
	item.Price = product.Price.Mul(decimal.NewFromInt(int64(newQuantity)))
	if err := c.store.UpdateCartItem(ctx, item); err != nil {
		return nil, err
	}

	if err := c.store.UpdateCartTotal(ctx, item.CartID); err != nil {
		return nil, err
	}
	return c.store.GetCartByUserID(ctx, userID)
}

// RemoveItem 移除單一項目
func (c *CartService) RemoveItem(ctx context.Context, userID int, cartItemID uint) (*model.Cart, error) {
	item, err := c.ownedCartItem(ctx, userID, cartItemID)
	if err != nil {
		return nil, err
	}

	if err := c.store.DeleteCartItem(ctx, item.CartItemID); err != nil {
		return nil, err
	}
	if err := c.store.UpdateCartTotal(ctx, item.CartID); err != nil {
		return nil, err
	}
	return c.store.GetCartByUserID(ctx, userID)
}

// RemoveItems 批次移除，每個 id 獨立驗證，不屬於該用戶的直接略過
func (c *CartService) RemoveItems(ctx context.Context, userID int, cartItemIDs []uint) (*model.Cart, error) {
	if len(cartItemIDs) == 0 {
		return nil, ErrEmptyItems
	}

	cart, err := c.store.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, id := range cartItemIDs {
		item, err := c.store.GetCartItemByID(ctx, id)
		if err != nil {
			if errors.Is(err, db.ErrCartItemNotFound) {
				continue
			}
			return nil, err
		}
		if item.CartID != cart.CartID {
			continue
		}
		if err := c.store.DeleteCartItem(ctx, id); err != nil {
			return nil, err
		}
	}

	if err := c.store.UpdateCartTotal(ctx, cart.CartID); err != nil {
		return nil, err
	}
	return c.store.GetCartByUserID(ctx, userID)
}

// Clear 刪除所有項目與購物車本身
func (c *CartService) Clear(ctx context.Context, userID int) error {
	cart, err := c.store.GetCartByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return c.store.DeleteCart(ctx, cart.CartID)
}

func (c *CartService) GetCart(ctx context.Context, userID int) (*model.Cart, error) {
	return c.store.GetCartByUserID(ctx, userID)
}

// ownedCartItem 取出項目並驗證屬於該用戶的購物車
// 項目存在但屬於別人時回傳 ErrNotCartOwner，與單純不存在區分
func (c *CartService) ownedCartItem(ctx context.Context, userID int, cartItemID uint) (*model.CartItem, error) {
	item, err := c.store.GetCartItemByID(ctx, cartItemID)
	if err != nil {
		return nil, err
	}

	cart, err := c.store.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrCartNotFound) {
			return nil, ErrNotCartOwner
		}
		return nil, err
	}
	if item.CartID != cart.CartID {
		return nil, ErrNotCartOwner
	}
	return item, nil
}

var _ ICartService = (*CartService)(nil)
