package mapper

import (
	"time"

	herddomain "github.com/Apurer/go-gin-yakshop/internal/domains/herd/domain"
	orderports "github.com/Apurer/go-gin-yakshop/internal/domains/orders/ports"
)

// Products is the wire shape of an order line: milk in litres and skins of wool.
// Zero products are omitted so a partial delivery lists only what was delivered.
type Products struct {
	Milk  *float64 `json:"milk,omitempty"`
	Skins *int64   `json:"skins,omitempty"`
}

// OrderRequest is the body of POST /yakshop/order/:days.
type OrderRequest struct {
	Customer string   `json:"customer"`
	Order    Products `json:"order"`
}

// Order is the transport representation of a recorded order.
type Order struct {
	ID        int64     `json:"id"`
	Customer  string    `json:"customer"`
	Day       uint32    `json:"day"`
	Status    string    `json:"status"`
	Requested Products  `json:"requested"`
	Delivered Products  `json:"delivered"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToPlaceOrderInput converts a request body into the service input for a day.
func ToPlaceOrderInput(day uint32, req OrderRequest) orderports.PlaceOrderInput {
	input := orderports.PlaceOrderInput{Customer: req.Customer, Day: day}
	if req.Order.Milk != nil {
		input.Milk = *req.Order.Milk
	}
	if req.Order.Skins != nil {
		input.Skins = *req.Order.Skins
	}
	return input
}

// FromDomainProducts drops zero quantities.
func FromDomainProducts(products herddomain.Products) Products {
	var out Products
	if products.Milk > 0 {
		milk := products.Milk.Liters()
		out.Milk = &milk
	}
	if products.Wool > 0 {
		skins := int64(products.Wool)
		out.Skins = &skins
	}
	return out
}

// FromProjection maps a recorded order into its transport form.
func FromProjection(p *orderports.OrderProjection) Order {
	if p == nil || p.Entity == nil {
		return Order{}
	}
	return Order{
		ID:        p.Entity.ID,
		Customer:  p.Entity.Customer,
		Day:       p.Entity.Day,
		Status:    string(p.Entity.Status),
		Requested: FromDomainProducts(p.Entity.Requested),
		Delivered: FromDomainProducts(p.Entity.Delivered),
		CreatedAt: p.Metadata.CreatedAt,
	}
}

func FromProjectionList(list []*orderports.OrderProjection) []Order {
	result := make([]Order, 0, len(list))
	for _, p := range list {
		result = append(result, FromProjection(p))
	}
	return result
}
