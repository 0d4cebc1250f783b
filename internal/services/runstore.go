package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/tennis-sim/internal/models"
)

// ErrRunNotFound is returned when a run ID was never stored or has expired.
var ErrRunNotFound = errors.New("simulation run not found")

const sweepSchedule = "@every 1m"

// StoredRun is a finished simulation kept around for retrieval and export.
type StoredRun struct {
	RunID     string                    `json:"run_id"`
	CreatedAt time.Time                 `json:"created_at"`
	Config    models.MatchConfig        `json:"config"`
	Summary   *models.SummaryStatistics `json:"summary"`
	Batch     *models.SimulationBatch   `json:"batch"`
}

// RunStore keeps finished runs for the configured result TTL.
type RunStore interface {
	Save(ctx context.Context, run *StoredRun) error
	Get(ctx context.Context, runID string) (*StoredRun, error)
	Delete(ctx context.Context, runID string) error
	Close() error
}

type memoryEntry struct {
	run       *StoredRun
	expiresAt time.Time
}

// MemoryRunStore holds runs in process memory. A cron sweeper drops expired
// entries once a minute so abandoned runs do not accumulate; reads also
// check expiry so a run never outlives its TTL between sweeps.
type MemoryRunStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	cron    *cron.Cron
	logger  *logrus.Logger
}

// NewMemoryRunStore creates an in-memory store and starts its sweeper.
func NewMemoryRunStore(ttl time.Duration, logger *logrus.Logger) *MemoryRunStore {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &MemoryRunStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		cron:    cron.New(),
		logger:  logger,
	}
	if _, err := s.cron.AddFunc(sweepSchedule, s.sweep); err != nil {
		logger.WithError(err).Warn("Failed to schedule run store sweeper")
	}
	s.cron.Start()
	return s
}

func (s *MemoryRunStore) Save(ctx context.Context, run *StoredRun) error {
	s.mu.Lock()
	s.entries[run.RunID] = memoryEntry{run: run, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryRunStore) Get(ctx context.Context, runID string) (*StoredRun, error) {
	s.mu.RLock()
	entry, ok := s.entries[runID]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrRunNotFound
	}
	return entry.run, nil
}

func (s *MemoryRunStore) Delete(ctx context.Context, runID string) error {
	s.mu.Lock()
	delete(s.entries, runID)
	s.mu.Unlock()
	return nil
}

// Close stops the sweeper. Stored runs stay readable until the process
// exits.
func (s *MemoryRunStore) Close() error {
	s.cron.Stop()
	return nil
}

func (s *MemoryRunStore) sweep() {
	now := time.Now()
	s.mu.Lock()
	removed := 0
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	remaining := len(s.entries)
	s.mu.Unlock()

	if removed > 0 {
		s.logger.WithFields(logrus.Fields{
			"removed":   removed,
			"remaining": remaining,
		}).Debug("Swept expired simulation runs")
	}
}
