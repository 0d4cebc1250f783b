package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/stitts-dev/tennis-sim/internal/models"
	"github.com/stitts-dev/tennis-sim/internal/services"
	"github.com/stitts-dev/tennis-sim/internal/simulator"
	"github.com/stitts-dev/tennis-sim/pkg/logger"
)

func main() {
	var (
		p1Name   = flag.String("p1", "Player 1", "player 1 name")
		p1Serve  = flag.Float64("p1-serve", 65, "player 1 serve win percentage (0-100, 55-75 typical)")
		p1Var    = flag.Float64("p1-var", 4, "player 1 serve variability (1-8)")
		p1Clutch = flag.Float64("p1-clutch", 0, "player 1 clutch factor (-5 to 5)")

		p2Name   = flag.String("p2", "Player 2", "player 2 name")
		p2Serve  = flag.Float64("p2-serve", 65, "player 2 serve win percentage (0-100, 55-75 typical)")
		p2Var    = flag.Float64("p2-var", 4, "player 2 serve variability (1-8)")
		p2Clutch = flag.Float64("p2-clutch", 0, "player 2 clutch factor (-5 to 5)")

		sims      = flag.Int("sims", 500, "number of matches to simulate")
		numSets   = flag.Int("sets", 3, "match length: 1, 3, or 5 sets")
		setFormat = flag.String("set-format", "traditional", "set format: traditional, fast4, proset, short_zero, short_two")
		tiebreak  = flag.String("tiebreak", "slam", "tiebreak format: slam, five_all, ten_all, twelve_all")
		noAd      = flag.Bool("no-ad", false, "use no-ad scoring instead of advantage scoring")

		seed    = flag.Int64("seed", 0, "RNG seed for a reproducible run (omit for a random seed)")
		workers = flag.Int("workers", 0, "simulation workers (0 uses all CPUs)")
		outDir  = flag.String("out", "", "directory to write CSV and summary exports (omit to skip)")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	logLevel := "warn"
	if *verbose {
		logLevel = "debug"
	}
	log := logger.InitLogger(logLevel, true)

	cfg := models.MatchConfig{
		Player1: models.PlayerProfile{
			Name:             *p1Name,
			ServeWinPct:      *p1Serve,
			ServeVariability: *p1Var,
			ClutchFactor:     *p1Clutch,
		},
		Player2: models.PlayerProfile{
			Name:             *p2Name,
			ServeWinPct:      *p2Serve,
			ServeVariability: *p2Var,
			ClutchFactor:     *p2Clutch,
		},
		Format: models.MatchFormat{
			NumSets:        *numSets,
			SetFormat:      models.SetFormat(*setFormat),
			TiebreakFormat: models.TiebreakFormat(*tiebreak),
			AdScoring:      !*noAd,
		},
		SimulationCount: *sims,
		Workers:         *workers,
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.Seed = seed
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	progress := make(chan simulator.ProgressUpdate, 16)
	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		for u := range progress {
			fmt.Fprintf(os.Stderr, "\rSimulating... %d/%d (%.0f%%)", u.Completed, u.Total, u.Percent)
		}
		fmt.Fprintln(os.Stderr)
	}()

	sim := simulator.New(*workers, log)
	batch, err := sim.Run(ctx, cfg, progress)
	close(progress)
	<-progressDone

	if err != nil {
		fmt.Fprintf(os.Stderr, "run stopped early: %v (%d of %d matches finished)\n",
			err, len(batch.Matches), cfg.SimulationCount)
		if len(batch.Matches) == 0 {
			os.Exit(1)
		}
	}

	summary, err := simulator.Aggregate(batch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "aggregation failed: %v\n", err)
		os.Exit(1)
	}

	run := &services.StoredRun{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now(),
		Config:    batch.Config,
		Summary:   summary,
		Batch:     batch,
	}
	fmt.Print(services.RenderSummaryText(run))

	if *outDir != "" {
		if err := writeExports(*outDir, run); err != nil {
			fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
			os.Exit(1)
		}
	}
}

func writeExports(dir string, run *services.StoredRun) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := services.RenderCSV(run.Batch)
	if err != nil {
		return err
	}
	csvPath := filepath.Join(dir, services.CSVFilename(run.Config, run.CreatedAt))
	if err := os.WriteFile(csvPath, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", csvPath)

	txtPath := filepath.Join(dir, services.SummaryFilename(run.Config, run.CreatedAt))
	if err := os.WriteFile(txtPath, []byte(services.RenderSummaryText(run)), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", txtPath)
	return nil
}
