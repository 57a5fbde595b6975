package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Apurer/go-gin-yakshop/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-yakshop/internal/domains/orders/ports"
)

// Service orchestrates order use cases. Orders are checked against the stock
// of a freshly simulated herd and never consume it.
type Service struct {
	repo        ports.Repository
	stock       ports.StockSource
	idempotency ports.IdempotencyStore
}

type Option func(*Service)

// WithIdempotencyStore enables replay of orders placed with an idempotency key.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

func NewService(repo ports.Repository, stock ports.StockSource, opts ...Option) *Service {
	s := &Service{repo: repo, stock: stock}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*ports.OrderProjection, error) {
	order, err := domain.NewOrder(0, input.Customer, input.Day, input.Milk, input.Skins)
	if err != nil {
		return nil, mapError(err)
	}

	key := strings.TrimSpace(input.IdempotencyKey)
	var requestHash string
	if key != "" && s.idempotency != nil {
		requestHash, err = FingerprintPlaceOrder(input)
		if err != nil {
			return nil, err
		}
		existing, err := s.idempotency.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return s.replay(ctx, existing, requestHash)
		}
	}

	stock, err := s.stock.Stock(ctx, input.Day)
	if err != nil {
		return nil, err
	}
	order.Fulfil(stock)
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}

	if requestHash != "" {
		record, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{Key: key, RequestHash: requestHash, OrderID: saved.Entity.ID})
		if errors.Is(err, ports.ErrIdempotencyConflict) {
			// A concurrent request with the same key won the race; only its order is kept.
			if delErr := s.repo.Delete(ctx, saved.Entity.ID); delErr != nil {
				return nil, fmt.Errorf("discard order %d after idempotency conflict: %w", saved.Entity.ID, delErr)
			}
			if record == nil {
				return nil, err
			}
			return s.replay(ctx, record, requestHash)
		}
		if err != nil {
			return nil, err
		}
	}
	return saved, nil
}

func (s *Service) replay(ctx context.Context, record *ports.IdempotencyRecord, requestHash string) (*ports.OrderProjection, error) {
	if record.RequestHash != requestHash {
		return nil, fmt.Errorf("%w: key %q was used for a different order", ports.ErrIdempotencyConflict, record.Key)
	}
	return s.repo.GetByID(ctx, record.OrderID)
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*ports.OrderProjection, error) {
	return s.repo.GetByID(ctx, id)
}

// ListOrders returns every recorded order, oldest first.
func (s *Service) ListOrders(ctx context.Context) ([]*ports.OrderProjection, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Entity.ID < list[j].Entity.ID })
	return list, nil
}

var _ ports.Service = (*Service)(nil)
