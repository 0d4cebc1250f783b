package simulator

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/tennis-sim/internal/engine"
	"github.com/stitts-dev/tennis-sim/internal/models"
)

// ProgressUpdate reports how far an ensemble has advanced. Updates are
// throttled and best-effort; only the final one is guaranteed.
type ProgressUpdate struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
}

const progressInterval = 100 * time.Millisecond

// Simulator runs match ensembles across a worker pool.
type Simulator struct {
	workers int
	logger  *logrus.Logger
}

// New creates a simulator. workers <= 0 selects one worker per CPU.
func New(workers int, logger *logrus.Logger) *Simulator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Simulator{workers: workers, logger: logger}
}

// Run plays cfg.SimulationCount independent matches and returns them in
// order. Match i always draws from seed base+i, so a fixed-seed batch
// reproduces exactly no matter how many workers execute it. When the
// context is cancelled, dispatching stops between matches and the
// contiguous prefix of finished matches is returned together with
// ctx.Err().
func (s *Simulator) Run(ctx context.Context, cfg models.MatchConfig, progress chan<- ProgressUpdate) (*models.SimulationBatch, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseSeed := time.Now().UnixNano()
	if cfg.Seed != nil {
		baseSeed = *cfg.Seed
	}

	total := cfg.SimulationCount
	workers := s.workers
	if cfg.Workers > 0 {
		workers = cfg.Workers
	}
	if workers > total {
		workers = total
	}

	s.logger.WithFields(logrus.Fields{
		"player1":     cfg.Player1.Name,
		"player2":     cfg.Player2.Name,
		"simulations": total,
		"workers":     workers,
		"seed":        baseSeed,
	}).Info("Starting simulation run")
	started := time.Now()

	results := make([]models.MatchResult, total)
	tasks := make(chan int)
	var completed atomic.Int64
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range tasks {
				eng := engine.NewMatchEngine(cfg.Player1, cfg.Player2, cfg.Format, baseSeed+int64(i), s.logger)
				results[i] = *eng.Play()
				completed.Add(1)
			}
		}()
	}

	reporterDone := make(chan struct{})
	if progress != nil {
		go func() {
			ticker := time.NewTicker(progressInterval)
			defer ticker.Stop()
			for {
				select {
				case <-reporterDone:
					return
				case <-ticker.C:
					sendProgress(progress, int(completed.Load()), total)
				}
			}
		}()
	}

	// Tasks go out unbuffered and in order, so on cancellation every
	// dispatched index finishes and the completed prefix stays contiguous.
	dispatched := 0
feed:
	for i := 0; i < total; i++ {
		select {
		case tasks <- i:
			dispatched++
		case <-ctx.Done():
			break feed
		}
	}
	close(tasks)
	wg.Wait()
	close(reporterDone)

	if progress != nil {
		sendProgress(progress, int(completed.Load()), total)
	}

	batch := &models.SimulationBatch{
		Config:  cfg,
		Seed:    baseSeed,
		Matches: results[:dispatched],
	}

	if err := ctx.Err(); err != nil {
		s.logger.WithFields(logrus.Fields{
			"completed": dispatched,
			"total":     total,
		}).Warn("Simulation run cancelled")
		return batch, err
	}

	s.logger.WithFields(logrus.Fields{
		"simulations": total,
		"duration":    time.Since(started).String(),
	}).Info("Simulation run complete")
	return batch, nil
}

func sendProgress(ch chan<- ProgressUpdate, completed, total int) {
	update := ProgressUpdate{Completed: completed, Total: total}
	if total > 0 {
		update.Percent = float64(completed) / float64(total) * 100
	}
	select {
	case ch <- update:
	default:
	}
}
