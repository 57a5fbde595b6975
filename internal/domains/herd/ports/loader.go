package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-yakshop/internal/domains/herd/domain"
)

var (
	// ErrHerdNotFound is returned when the herd definition does not exist.
	ErrHerdNotFound = errors.New("herd definition not found")
	// ErrHerdParse is returned when the herd definition cannot be decoded.
	ErrHerdParse = errors.New("herd definition is malformed")
)

// HerdSource yields the entries that seed a shop.
type HerdSource interface {
	Load(ctx context.Context) ([]domain.Entry, error)
}
