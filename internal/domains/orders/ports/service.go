package ports

import (
	"context"

	herddomain "github.com/Apurer/go-gin-yakshop/internal/domains/herd/domain"
)

// PlaceOrderInput is a request for milk (litres) and skins on a given day.
// A non-empty IdempotencyKey makes retries return the originally recorded order.
type PlaceOrderInput struct {
	Customer       string
	Day            uint32
	Milk           float64
	Skins          int64
	IdempotencyKey string
}

// Service exposes order use cases to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*OrderProjection, error)
	GetOrder(ctx context.Context, id int64) (*OrderProjection, error)
	ListOrders(ctx context.Context) ([]*OrderProjection, error)
}

// StockSource reports the stock a herd has accumulated after a number of days.
// The herd service satisfies it.
type StockSource interface {
	Stock(ctx context.Context, days uint32) (herddomain.Products, error)
}
