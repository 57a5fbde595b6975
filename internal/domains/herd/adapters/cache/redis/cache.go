// Package redis stores simulated herd reports in Redis so that replicas
// serving the same herd share work.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Apurer/go-gin-yakshop/internal/domains/herd/domain"
	"github.com/Apurer/go-gin-yakshop/internal/domains/herd/ports"
)

// DefaultKeyPrefix namespaces snapshot keys.
const DefaultKeyPrefix = "yakshop:snapshot:"

var _ ports.SnapshotCache = (*Cache)(nil)

// Cache is a Redis-backed snapshot cache. Caller manages the client lifecycle.
type Cache struct {
	rdb    goredis.Cmdable
	prefix string
	ttl    time.Duration
}

type Option func(*Cache)

// WithTTL expires entries after ttl. Zero keeps them until evicted by Redis.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithKeyPrefix replaces DefaultKeyPrefix.
func WithKeyPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

func NewCache(rdb goredis.Cmdable, opts ...Option) *Cache {
	c := &Cache{rdb: rdb, prefix: DefaultKeyPrefix}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *Cache) Get(ctx context.Context, key ports.SnapshotKey) (domain.Report, bool, error) {
	if err := c.ensureClient(); err != nil {
		return domain.Report{}, false, err
	}
	raw, err := c.rdb.Get(ctx, c.redisKey(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.Report{}, false, nil
	}
	if err != nil {
		return domain.Report{}, false, err
	}
	report, err := decodeReport(raw)
	if err != nil {
		return domain.Report{}, false, err
	}
	return report, true, nil
}

func (c *Cache) Put(ctx context.Context, key ports.SnapshotKey, report domain.Report) error {
	if err := c.ensureClient(); err != nil {
		return err
	}
	raw, err := encodeReport(report)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.redisKey(key), raw, c.ttl).Err()
}

func (c *Cache) redisKey(key ports.SnapshotKey) string {
	return fmt.Sprintf("%s%s:%d", c.prefix, key.Herd, key.Days)
}

func (c *Cache) ensureClient() error {
	if c == nil || c.rdb == nil {
		return errors.New("redis snapshot cache not configured")
	}
	return nil
}

// reportRecord is the JSON shape stored in Redis. Milk stays in minor units.
type reportRecord struct {
	ElapsedDays uint64      `json:"elapsed_days"`
	Milk        uint64      `json:"milk"`
	Wool        uint32      `json:"wool"`
	Herd        []yakRecord `json:"herd"`
}

type yakRecord struct {
	Name           string `json:"name"`
	AgeDays        uint32 `json:"age_days"`
	LastShavedDays uint32 `json:"last_shaved_days"`
}

func encodeReport(report domain.Report) ([]byte, error) {
	record := reportRecord{
		ElapsedDays: report.ElapsedDays,
		Milk:        uint64(report.Stock.Milk),
		Wool:        report.Stock.Wool,
		Herd:        make([]yakRecord, 0, len(report.Herd)),
	}
	for _, yak := range report.Herd {
		record.Herd = append(record.Herd, yakRecord{Name: yak.Name, AgeDays: yak.AgeDays, LastShavedDays: yak.LastShavedDays})
	}
	return json.Marshal(record)
}

func decodeReport(raw []byte) (domain.Report, error) {
	var record reportRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return domain.Report{}, fmt.Errorf("decode cached snapshot: %w", err)
	}
	report := domain.Report{
		ElapsedDays: record.ElapsedDays,
		Stock:       domain.Products{Milk: domain.Milk(record.Milk), Wool: record.Wool},
		Herd:        make([]domain.YakView, 0, len(record.Herd)),
	}
	for _, yak := range record.Herd {
		report.Herd = append(report.Herd, domain.YakView{Name: yak.Name, AgeDays: yak.AgeDays, LastShavedDays: yak.LastShavedDays})
	}
	return report, nil
}
