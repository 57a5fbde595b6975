package ports

import (
	"context"
	"fmt"

	"github.com/Apurer/go-gin-yakshop/internal/domains/herd/domain"
)

// SnapshotKey identifies a simulated report: the herd it started from and how
// many days it was advanced.
type SnapshotKey struct {
	Herd string
	Days uint32
}

func (k SnapshotKey) String() string {
	return fmt.Sprintf("%s/%d", k.Herd, k.Days)
}

// SnapshotCache stores reports. Simulation is deterministic, so a cached
// report for a key is always equal to a freshly computed one.
type SnapshotCache interface {
	Get(ctx context.Context, key SnapshotKey) (domain.Report, bool, error)
	Put(ctx context.Context, key SnapshotKey, report domain.Report) error
}
