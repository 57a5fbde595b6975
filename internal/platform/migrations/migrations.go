package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts that persist state.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&orderRecord{},
		&orderIdempotencyRecord{},
	)
}

// Order schema mirrors the orders Postgres adapter. Milk columns hold
// hundredths of a litre.
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

// Idempotency keys mirror the orders idempotency store.
type orderIdempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	OrderID     int64     `gorm:"column:order_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (orderIdempotencyRecord) TableName() string { return "order_idempotency_keys" }
