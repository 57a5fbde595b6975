package ports

import (
	"context"

	"github.com/Apurer/go-gin-yakshop/internal/domains/herd/domain"
)

// Service exposes herd simulation use cases to adapters.
type Service interface {
	Report(ctx context.Context, days uint32) (domain.Report, error)
	Stock(ctx context.Context, days uint32) (domain.Products, error)
	Herd(ctx context.Context, days uint32) ([]domain.YakView, error)
}
