package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-yakshop/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-yakshop/internal/shared/projection"
)

var ErrNotFound = errors.New("order not found")

// OrderProjection is an order plus the timestamps its store recorded.
type OrderProjection = projection.Projection[*domain.Order]

// Repository records placed orders. IDs are assigned on first save.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*OrderProjection, error)
	GetByID(ctx context.Context, id int64) (*OrderProjection, error)
	List(ctx context.Context) ([]*OrderProjection, error)
	// Delete removes an order. Deleting an unknown id returns ErrNotFound.
	Delete(ctx context.Context, id int64) error
}
