package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Apurer/go-gin-yakshop/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-yakshop/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-yakshop/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	orders map[int64]*ports.OrderProjection
	nextID int64
	now    func() time.Time
}

type Option func(*Repository)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

func NewRepository(opts ...Option) *Repository {
	r := &Repository{orders: map[int64]*ports.OrderProjection{}, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) Save(_ context.Context, order *domain.Order) (*ports.OrderProjection, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := *order
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	now := r.now().UTC()
	meta := projection.NewMetadata(now)
	if existing, ok := r.orders[clone.ID]; ok {
		meta = existing.Metadata.Touched(now)
	}
	stored := &ports.OrderProjection{Entity: &clone, Metadata: meta}
	r.orders[clone.ID] = stored
	return cloneProjection(stored), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*ports.OrderProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneProjection(stored), nil
}

func (r *Repository) List(_ context.Context) ([]*ports.OrderProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*ports.OrderProjection, 0, len(r.orders))
	for _, stored := range r.orders {
		list = append(list, cloneProjection(stored))
	}
	return list, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func cloneProjection(p *ports.OrderProjection) *ports.OrderProjection {
	order := *p.Entity
	return &ports.OrderProjection{Entity: &order, Metadata: p.Metadata}
}
