package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rumiadrian30/techdivulga/internal/cache"
	"github.com/rumiadrian30/techdivulga/internal/observability"
)

const analysisKey = "chat:analyses"

// AnalysisLog keeps the most recent exchanges, dropping the oldest once the
// cap is reached. The log is mirrored to the cache on a best-effort basis.
type AnalysisLog struct {
	mu      sync.Mutex
	records []AnalysisRecord
	// writeMu orders cache writes so the mirror always ends on the newest
	// snapshot. It is taken before mu.
	writeMu sync.Mutex
	limit   int

	store  cache.Client
	logger *observability.Logger
}

// NewAnalysisLog creates a log holding at most limit records. store may be
// nil.
func NewAnalysisLog(limit int, store cache.Client, logger *observability.Logger) *AnalysisLog {
	if limit <= 0 {
		limit = 100
	}
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &AnalysisLog{limit: limit, store: store, logger: logger}
}

// Restore loads a previously mirrored log. A missing entry is not an error.
func (l *AnalysisLog) Restore(ctx context.Context) error {
	if l.store == nil {
		return nil
	}
	data, err := l.store.Get(ctx, analysisKey)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load analyses: %w", err)
	}

	var records []AnalysisRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("decode analyses: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = records[max(0, len(records)-l.limit):]
	return nil
}

// Append adds a record.
func (l *AnalysisLog) Append(ctx context.Context, rec AnalysisRecord) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	l.mu.Lock()
	l.records = append(l.records, rec)
	if over := len(l.records) - l.limit; over > 0 {
		l.records = append([]AnalysisRecord(nil), l.records[over:]...)
	}
	snapshot := l.snapshotLocked()
	l.mu.Unlock()

	l.persist(ctx, snapshot)
}

// RateLast sets the feedback of the newest record of a session.
func (l *AnalysisLog) RateLast(ctx context.Context, sessionID string, fb Feedback) (AnalysisRecord, error) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	l.mu.Lock()
	idx := -1
	for i := len(l.records) - 1; i >= 0; i-- {
		if l.records[i].SessionID == sessionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.mu.Unlock()
		return AnalysisRecord{}, ErrNoExchange
	}
	l.records[idx].Feedback = fb
	rec := l.records[idx]
	snapshot := l.snapshotLocked()
	l.mu.Unlock()

	l.persist(ctx, snapshot)
	return rec, nil
}

// Records returns a copy of the log, oldest first.
func (l *AnalysisLog) Records() []AnalysisRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Len returns the number of records held.
func (l *AnalysisLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

func (l *AnalysisLog) snapshotLocked() []AnalysisRecord {
	return append([]AnalysisRecord(nil), l.records...)
}

func (l *AnalysisLog) persist(ctx context.Context, records []AnalysisRecord) {
	if l.store == nil {
		return
	}
	data, err := json.Marshal(records)
	if err == nil {
		err = l.store.Set(ctx, analysisKey, data, 0)
	}
	if err != nil {
		l.logger.Warn().Err(err).Int("records", len(records)).Msg("Failed to store analysis log")
	}
}
