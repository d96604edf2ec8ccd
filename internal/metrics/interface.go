package metrics

import (
	"context"
	"time"

	"codeberg.org/mutker/nvstat/internal/gpu"
)

// Collector is the recording interface the driver sees. The no-op
// implementation stands in when recording is disabled.
type Collector interface {
	Record(ctx context.Context, snapshot *Snapshot) error
	Close() error
}

// Repository persists snapshots.
type Repository interface {
	Record(snapshot *Snapshot) error
	Close() error
}

// Snapshot is one refresh tick's worth of device readings.
type Snapshot struct {
	Timestamp time.Time
	Samples   []gpu.Sample
}
