package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	herddomain "github.com/Apurer/go-gin-yakshop/internal/domains/herd/domain"
	"github.com/Apurer/go-gin-yakshop/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-yakshop/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-yakshop/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle
// and schema (see platform/migrations).
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate to a relational table.
type orderRecord struct {
	ID             int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Customer       string    `gorm:"column:customer;index"`
	Day            int64     `gorm:"column:day"`
	RequestedMilk  int64     `gorm:"column:requested_milk"`
	RequestedSkins int64     `gorm:"column:requested_skins"`
	DeliveredMilk  int64     `gorm:"column:delivered_milk"`
	DeliveredSkins int64     `gorm:"column:delivered_skins"`
	Status         string    `gorm:"column:status;type:varchar(32);index"`
	CreatedAt      time.Time `gorm:"column:created_at;index"`
	UpdatedAt      time.Time `gorm:"column:updated_at;index"`
}

func (orderRecord) TableName() string { return "orders" }

// Save inserts a new order or updates an existing one.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*ports.OrderProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(order)
	db := r.db.WithContext(ctx)
	if record.ID == 0 {
		if err := db.Create(&record).Error; err != nil {
			return nil, err
		}
		return r.GetByID(ctx, record.ID)
	}
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"customer":        record.Customer,
			"day":             record.Day,
			"requested_milk":  record.RequestedMilk,
			"requested_skins": record.RequestedSkins,
			"delivered_milk":  record.DeliveredMilk,
			"delivered_skins": record.DeliveredSkins,
			"status":          record.Status,
			"updated_at":      gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*ports.OrderProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// List returns all orders ordered by id.
func (r *Repository) List(ctx context.Context) ([]*ports.OrderProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*ports.OrderProjection, 0, len(records))
	for i := range records {
		list = append(list, records[i].toProjection())
	}
	return list, nil
}

// Delete removes an order by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&orderRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:             order.ID,
		Customer:       order.Customer,
		Day:            int64(order.Day),
		RequestedMilk:  int64(order.Requested.Milk),
		RequestedSkins: int64(order.Requested.Wool),
		DeliveredMilk:  int64(order.Delivered.Milk),
		DeliveredSkins: int64(order.Delivered.Wool),
		Status:         string(order.Status),
	}
}

func (r orderRecord) toProjection() *ports.OrderProjection {
	return &ports.OrderProjection{
		Entity: &domain.Order{
			ID:        r.ID,
			Customer:  r.Customer,
			Day:       uint32(r.Day),
			Requested: herddomain.Products{Milk: herddomain.Milk(r.RequestedMilk), Wool: uint32(r.RequestedSkins)},
			Delivered: herddomain.Products{Milk: herddomain.Milk(r.DeliveredMilk), Wool: uint32(r.DeliveredSkins)},
			Status:    domain.Status(r.Status),
		},
		Metadata: projection.Metadata{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
	}
}
