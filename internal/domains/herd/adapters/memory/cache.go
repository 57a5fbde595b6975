package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-gin-yakshop/internal/domains/herd/domain"
	"github.com/Apurer/go-gin-yakshop/internal/domains/herd/ports"
)

var _ ports.SnapshotCache = (*Cache)(nil)

// DefaultCapacity bounds the number of reports kept by NewCache.
const DefaultCapacity = 1024

// Cache is an in-memory snapshot cache. When full, the oldest entry is evicted.
type Cache struct {
	mu       sync.RWMutex
	capacity int
	reports  map[ports.SnapshotKey]domain.Report
	order    []ports.SnapshotKey
}

func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		reports:  map[ports.SnapshotKey]domain.Report{},
	}
}

func (c *Cache) Get(_ context.Context, key ports.SnapshotKey) (domain.Report, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	report, ok := c.reports[key]
	if !ok {
		return domain.Report{}, false, nil
	}
	return cloneReport(report), true, nil
}

func (c *Cache) Put(_ context.Context, key ports.SnapshotKey, report domain.Report) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.reports[key]; !ok {
		if len(c.order) >= c.capacity {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.reports, oldest)
		}
		c.order = append(c.order, key)
	}
	c.reports[key] = cloneReport(report)
	return nil
}

// Len reports how many snapshots are cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.reports)
}

func cloneReport(report domain.Report) domain.Report {
	clone := report
	clone.Herd = append([]domain.YakView(nil), report.Herd...)
	return clone
}
