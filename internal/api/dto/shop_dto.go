package dto

import (
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/shopspring/decimal"
)

type AddCartItemDTO struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type AddCartItemsDTO struct {
	Items []AddCartItemDTO `json:"items"`
}

type UpdateCartItemDTO struct {
	CartItemID  uint `json:"cart_item_id"`
	NewQuantity int  `json:"new_quantity"`
}

type RemoveCartItemDTO struct {
	CartItemID uint `json:"cart_item_id"`
}

type RemoveCartItemsDTO struct {
	CartItemIDs []uint `json:"cart_item_ids"`
}

type CartItemDTO struct {
	CartItemID uint            `json:"cart_item_id"`
	ProductID  uint            `json:"product_id"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
}

type CartDTO struct {
	CartID     uint            `json:"cart_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Items      []CartItemDTO   `json:"items"`
}

type CreateOrderDTO struct {
	TxRef             string `json:"tx_ref"`
	ProductID         *uint  `json:"product_id,omitempty"` // 單品直購時才帶
	ShippingAddressID uint   `json:"shipping_address_id"`
	BillingAddressID  *uint  `json:"billing_address_id,omitempty"`
}

type CreateOrderResponseDTO struct {
	OrderNumber string `json:"order_number"`
}

type UpdateOrderStatusDTO struct {
	StatusIndex int `json:"status_index"`
}

type AddressDTO struct {
	AddressID  uint   `json:"address_id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

type PaymentDTO struct {
	PaymentID uint            `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	TxRef     string          `json:"tx_ref"`
	Verified  bool            `json:"verified"`
}

type OrderItemDTO struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type OrderDTO struct {
	OrderID         uint            `json:"order_id"`
	OrderNumber     string          `json:"order_number"`
	Status          string          `json:"status"`
	Amount          decimal.Decimal `json:"amount"`
	OrderDate       string          `json:"order_date"`
	Items           []OrderItemDTO  `json:"items"`
	ShippingAddress AddressDTO      `json:"shipping_address"`
	BillingAddress  *AddressDTO     `json:"billing_address,omitempty"`
	Payment         PaymentDTO      `json:"payment"`
}

type OrderListDTO struct {
	Orders []OrderDTO `json:"orders"`
	Total  int64      `json:"total"`
}

type ProductDTO struct {
	ProductID   uint            `json:"product_id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       uint            `json:"stock"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

func ConvertCartToDTO(cart *model.Cart) CartDTO {
	items := make([]CartItemDTO, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartItemDTO{
			CartItemID: item.CartItemID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			Price:      item.Price,
		})
	}
	return CartDTO{
		CartID:     cart.CartID,
		TotalPrice: cart.TotalPrice,
		Items:      items,
	}
}

func convertAddressToDTO(address model.Address) AddressDTO {
	return AddressDTO{
		AddressID:  address.AddressID,
		Street:     address.Street,
		City:       address.City,
		State:      address.State,
		Country:    address.Country,
		PostalCode: address.PostalCode,
	}
}

func ConvertOrderToDTO(order *model.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, OrderItemDTO{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	orderDTO := OrderDTO{
		OrderID:         order.OrderID,
		OrderNumber:     order.OrderNumber,
		Status:          order.Status.String(),
		Amount:          order.Amount,
		OrderDate:       order.OrderDate.Format("2006-01-02T15:04:05Z07:00"),
		Items:           items,
		ShippingAddress: convertAddressToDTO(order.ShippingAddress),
		Payment: PaymentDTO{
			PaymentID: order.Payment.PaymentID,
			Amount:    order.Payment.Amount,
			Currency:  order.Payment.Currency,
			TxRef:     order.Payment.TxRef,
			Verified:  order.Payment.Verified,
		},
	}
	if order.BillingAddress != nil {
		billing := convertAddressToDTO(*order.BillingAddress)
		orderDTO.BillingAddress = &billing
	}
	return orderDTO
}

func ConvertProductToDTO(product *model.Product) ProductDTO {
	return ProductDTO{
		ProductID:   product.ProductID,
		Code:        product.Code,
		Name:        product.Name,
		Price:       product.Price,
		Stock:       product.Stock,
		Category:    product.Category,
		Description: product.Description,
	}
}
