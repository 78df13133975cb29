package files

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/rumiadrian30/techdivulga/internal/observability"
)

// Reindexer rebuilds an Index on a cron schedule.
type Reindexer struct {
	store  *Store
	index  *Index
	cron   *cron.Cron
	logger *observability.Logger

	mu      sync.Mutex
	running bool
}

// NewReindexer validates the schedule ("@every 10m", "0 */5 * * * *"...)
// and returns a stopped reindexer.
func NewReindexer(store *Store, index *Index, schedule string, logger *observability.Logger) (*Reindexer, error) {
	if logger == nil {
		logger = observability.NopLogger()
	}
	r := &Reindexer{
		store:  store,
		index:  index,
		cron:   cron.New(cron.WithParser(cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor))),
		logger: logger.WithComponent("reindexer"),
	}
	if _, err := r.cron.AddFunc(schedule, func() { _ = r.Run(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid reindex schedule %q: %w", schedule, err)
	}
	return r, nil
}

// Start builds the index once and then follows the schedule.
func (r *Reindexer) Start(ctx context.Context) error {
	if err := r.Run(ctx); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running rebuild to finish or ctx
// to end.
func (r *Reindexer) Stop(ctx context.Context) {
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Run rebuilds the index now. Overlapping runs are skipped.
func (r *Reindexer) Run(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		r.logger.Debug().Msg("Reindex already running, skipped")
		return nil
	}
	r.running = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	logger := r.logger.WithOperation("reindex")
	stats, err := r.index.Rebuild(ctx, r.store)
	if err != nil {
		logger.Error().Err(err).Msg("Document reindex failed")
		return err
	}
	logger.Info().
		Int("documents", stats.Documents).
		Int("chunks", stats.Chunks).
		Msg("Document index rebuilt")
	return nil
}
