package handler

// Server 彙整所有 handler，供 router 掛載
type Server struct {
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
	ProductHandler *ProductHandler
}

func NewServer(cartHandler *CartHandler, orderHandler *OrderHandler, productHandler *ProductHandler) *Server {
	return &Server{
		CartHandler:    cartHandler,
		OrderHandler:   orderHandler,
		ProductHandler: productHandler,
	}
}
