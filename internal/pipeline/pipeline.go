package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/marine-zones-etl/internal/domain"
	"github.com/couchcryptid/marine-zones-etl/internal/observability"
	"github.com/jonboulle/clockwork"
)

// ErrNoData means the fetch failed or returned nothing, so no sink was written.
var ErrNoData = errors.New("no zone data fetched")

// Fetcher downloads the zone file as lines.
type Fetcher interface {
	FetchLines(ctx context.Context) ([]string, error)
}

// Loader writes a snapshot of marine zones to a destination.
type Loader interface {
	Name() string
	LoadBatch(ctx context.Context, snap domain.Snapshot) error
}

// Pipeline runs fetch -> parse -> load and keeps the last good snapshot.
type Pipeline struct {
	fetcher Fetcher
	loaders []Loader
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock

	mu       sync.RWMutex
	snapshot domain.Snapshot
	ready    atomic.Bool
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithClock sets the clock driving the refresh ticker and success timestamps.
func WithClock(c clockwork.Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// New creates a Pipeline. Loaders run in the given order; a failing loader
// stops the ones after it.
func New(f Fetcher, loaders []Loader, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher: f,
		loaders: loaders,
		logger:  logger,
		metrics: metrics,
		clock:   clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CheckReadiness returns nil once a run has loaded zones into every sink.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no marine zones loaded yet")
	}
	return nil
}

// Snapshot returns the last successfully loaded snapshot, and false before the first one.
func (p *Pipeline) Snapshot() (domain.Snapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot, p.ready.Load()
}

// RunOnce performs a single fetch, parse and load. A failed or empty fetch
// returns an error wrapping ErrNoData and leaves every sink untouched.
func (p *Pipeline) RunOnce(ctx context.Context) (domain.Snapshot, error) {
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	lines, err := p.fetcher.FetchLines(ctx)
	if err != nil {
		p.logger.Error("zone fetch failed", "error", err)
		return domain.Snapshot{}, fmt.Errorf("%w: %w", ErrNoData, err)
	}
	if len(lines) == 0 {
		p.logger.Warn("zone file is empty")
		return domain.Snapshot{}, fmt.Errorf("%w: empty response body", ErrNoData)
	}

	zones, stats := domain.ParseZonesWithStats(lines)
	p.recordParse(stats)
	p.logger.Info("zones parsed", "lines", stats.Lines, "zones", stats.Emitted)

	snap := domain.NewSnapshot(zones)
	for _, l := range p.loaders {
		if err := l.LoadBatch(ctx, snap); err != nil {
			p.metrics.LoadErrors.WithLabelValues(l.Name()).Inc()
			p.logger.Error("load failed", "sink", l.Name(), "error", err)
			return snap, fmt.Errorf("load %s: %w", l.Name(), err)
		}
		p.metrics.ZonesLoaded.WithLabelValues(l.Name()).Add(float64(len(zones)))
	}

	p.mu.Lock()
	p.snapshot = snap
	p.mu.Unlock()
	p.ready.Store(true)
	p.metrics.LastSuccess.Set(float64(p.clock.Now().Unix()))

	return snap, nil
}

// Run calls RunOnce immediately and then every interval until ctx is cancelled.
// Failed runs are logged and the previous snapshot stays in place.
func (p *Pipeline) Run(ctx context.Context, interval time.Duration) error {
	p.logger.Info("refresh loop started", "interval", interval)

	ticker := p.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := p.RunOnce(ctx); err != nil && ctx.Err() == nil {
			p.logger.Warn("refresh failed, keeping previous zones", "error", err)
		}

		select {
		case <-ctx.Done():
			p.logger.Info("refresh loop stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
		}
	}
}

func (p *Pipeline) recordParse(stats domain.ParseStats) {
	p.metrics.LinesRead.Add(float64(stats.Lines))
	p.metrics.ZonesEmitted.Add(float64(stats.Emitted))
	for _, reason := range domain.SkipReasons {
		if n := stats.Skipped[reason]; n > 0 {
			p.metrics.LinesSkipped.WithLabelValues(string(reason)).Add(float64(n))
		}
	}
}
