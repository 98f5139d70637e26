package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"github.com/milv-tools/rvu-atlas/pkg/models/domain"
	"github.com/milv-tools/rvu-atlas/pkg/services/dataset"
	"github.com/milv-tools/rvu-atlas/pkg/services/kpi"
	"github.com/milv-tools/rvu-atlas/pkg/services/modality"
	"github.com/milv-tools/rvu-atlas/pkg/services/temporal"
)

type State string

const (
	StateEmpty State = "empty"
	StateReady State = "ready"
)

// Controller is the single owner of the current dashboard snapshot.
// Refresh replaces the snapshot atomically; on any failure the prior
// snapshot stays in place and the error is kept as a side channel so
// the presentation layer can show stale-but-valid data.
type Controller interface {
	Refresh(ctx context.Context) (*domain.DashboardSnapshot, error)
	Snapshot() (*domain.DashboardSnapshot, error)
	State() State
	LastError() error
}

type controller struct {
	loader   *dataset.Loader
	reader   dataset.Reader
	kpi      kpi.Aggregator
	modality modality.Aggregator
	temporal temporal.Aggregator

	// mu serializes refreshes and guards the snapshot reference;
	// consumers only ever read a fully built snapshot.
	mu       sync.Mutex
	snapshot *domain.DashboardSnapshot
	lastErr  error
}

func NewController(loader *dataset.Loader, reader dataset.Reader) Controller {
	return &controller{
		loader:   loader,
		reader:   reader,
		kpi:      kpi.NewAggregator(),
		modality: modality.NewAggregator(),
		temporal: temporal.NewAggregator(),
	}
}

func (c *controller) Refresh(ctx context.Context) (*domain.DashboardSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	logger := zerolog.Ctx(ctx)

	snapshot, err := c.build(ctx)
	if err != nil {
		c.lastErr = err
		logger.Error().Err(err).Msg("dashboard refresh failed, keeping previous snapshot")
		return nil, err
	}

	c.snapshot = snapshot
	c.lastErr = nil
	logger.Info().
		Str("snapshot_id", snapshot.ID).
		Int("records", snapshot.Stats.RecordCount).
		Int("excluded", snapshot.Stats.Excluded).
		Msg("dashboard snapshot refreshed")

	return snapshot, nil
}

// build runs the whole pipeline over one dataset. Every derived table
// comes from the same dataset instance; a failure in any aggregator
// fails the refresh as a whole.
func (c *controller) build(ctx context.Context) (*domain.DashboardSnapshot, error) {
	ds, err := c.loader.Load(ctx, c.reader)
	if err != nil {
		return nil, err
	}

	var aggErr error

	kpis, err := c.kpi.Compute(ds)
	aggErr = multierr.Append(aggErr, err)

	modalities, err := c.modality.Compute(ds, domain.ScopeGlobal)
	aggErr = multierr.Append(aggErr, err)

	cross, err := c.modality.ComputeAll(ds)
	aggErr = multierr.Append(aggErr, err)

	dayOfWeek, err := c.temporal.DayOfWeek(ds)
	aggErr = multierr.Append(aggErr, err)

	hourly, err := c.temporal.Hourly(ds)
	aggErr = multierr.Append(aggErr, err)

	series, err := c.temporal.MonthlySeries(ds)
	aggErr = multierr.Append(aggErr, err)

	if aggErr != nil {
		return nil, &domain.AggregationError{Err: aggErr}
	}

	return &domain.DashboardSnapshot{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now(),
		Stats: domain.DatasetStats{
			Source:      ds.Source,
			RecordCount: ds.Len(),
			Excluded:    ds.Excluded,
			Period:      ds.Period,
		},
		KPIs:              kpis,
		Modalities:        modalities,
		PhysicianModality: cross,
		DayOfWeek:         dayOfWeek,
		Hourly:            hourly,
		MonthlySeries:     series,
	}, nil
}

func (c *controller) Snapshot() (*domain.DashboardSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot == nil {
		return nil, domain.ErrNoSnapshot
	}
	return c.snapshot, nil
}

func (c *controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot == nil {
		return StateEmpty
	}
	return StateReady
}

func (c *controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
