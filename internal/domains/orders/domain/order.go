package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"

	herddomain "github.com/Apurer/go-gin-yakshop/internal/domains/herd/domain"
)

// Status records how much of an order the stock could cover.
type Status string

const (
	StatusFulfilled Status = "fulfilled"
	StatusPartial   Status = "partial"
	StatusRejected  Status = "rejected"
)

var (
	ErrEmptyCustomer   = errors.New("customer is required")
	ErrInvalidQuantity = errors.New("order quantities must be finite and non-negative")
	ErrEmptyOrder      = errors.New("order must request milk or skins")
	ErrInvalidStatus   = errors.New("order status is invalid")
)

// Order is a customer's request against the stock on a given day, together
// with what could be delivered. Placing an order never changes the herd.
type Order struct {
	ID        int64
	Customer  string
	Day       uint32
	Requested herddomain.Products
	Delivered herddomain.Products
	Status    Status
}

// NewOrder validates and constructs an order that has not been fulfilled yet.
func NewOrder(id int64, customer string, day uint32, milkLiters float64, skins int64) (*Order, error) {
	if math.IsNaN(milkLiters) || math.IsInf(milkLiters, 0) || milkLiters < 0 {
		return nil, fmt.Errorf("%w: milk %v", ErrInvalidQuantity, milkLiters)
	}
	if skins < 0 || skins > math.MaxUint32 {
		return nil, fmt.Errorf("%w: skins %d", ErrInvalidQuantity, skins)
	}
	order := &Order{
		ID:       id,
		Customer: strings.TrimSpace(customer),
		Day:      day,
		Requested: herddomain.Products{
			Milk: herddomain.MilkFromLiters(milkLiters),
			Wool: uint32(skins),
		},
		Status: StatusRejected,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.Customer == "" {
		return ErrEmptyCustomer
	}
	if o.Requested.IsZero() {
		return ErrEmptyOrder
	}
	if !isValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	if o.Delivered.Milk > o.Requested.Milk || o.Delivered.Wool > o.Requested.Wool {
		return fmt.Errorf("%w: delivered more than requested", ErrInvalidQuantity)
	}
	return nil
}

// Fulfil delivers each requested product in full when the stock covers it and
// not at all otherwise, then derives the status.
func (o *Order) Fulfil(stock herddomain.Products) {
	o.Delivered = herddomain.Products{}
	if o.Requested.Milk > 0 && o.Requested.Milk <= stock.Milk {
		o.Delivered.Milk = o.Requested.Milk
	}
	if o.Requested.Wool > 0 && o.Requested.Wool <= stock.Wool {
		o.Delivered.Wool = o.Requested.Wool
	}
	switch {
	case o.Delivered == o.Requested:
		o.Status = StatusFulfilled
	case o.Delivered.IsZero():
		o.Status = StatusRejected
	default:
		o.Status = StatusPartial
	}
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusFulfilled, StatusPartial, StatusRejected:
		return true
	default:
		return false
	}
}
