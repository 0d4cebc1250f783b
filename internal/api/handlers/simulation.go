package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/tennis-sim/internal/models"
	"github.com/stitts-dev/tennis-sim/internal/services"
	"github.com/stitts-dev/tennis-sim/internal/simulator"
	"github.com/stitts-dev/tennis-sim/pkg/config"
	"github.com/stitts-dev/tennis-sim/pkg/utils"
)

const (
	defaultMatchesPerPage = 50
	maxMatchesPerPage     = 500
)

type SimulationHandler struct {
	store  services.RunStore
	hub    *services.ProgressHub
	sim    *simulator.Simulator
	cfg    *config.Config
	logger *logrus.Logger
}

func NewSimulationHandler(store services.RunStore, hub *services.ProgressHub, sim *simulator.Simulator, cfg *config.Config, logger *logrus.Logger) *SimulationHandler {
	return &SimulationHandler{
		store:  store,
		hub:    hub,
		sim:    sim,
		cfg:    cfg,
		logger: logger,
	}
}

// RunSimulation runs a full match ensemble synchronously and returns the
// aggregate summary. Progress streams out over the websocket hub while the
// run is in flight; the per-match detail stays retrievable under the
// returned run ID until the result TTL expires.
func (h *SimulationHandler) RunSimulation(c *gin.Context) {
	var matchCfg models.MatchConfig
	if err := c.ShouldBindJSON(&matchCfg); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	matchCfg.ApplyDefaults(h.cfg.DefaultSimulations)
	if matchCfg.SimulationCount > h.cfg.MaxSimulations {
		utils.SendValidationError(c, "Simulation count too large",
			"simulation_count must not exceed "+strconv.Itoa(h.cfg.MaxSimulations))
		return
	}
	if err := matchCfg.Validate(); err != nil {
		utils.SendValidationError(c, "Invalid simulation config", err.Error())
		return
	}

	runID := uuid.NewString()
	log := h.logger.WithFields(logrus.Fields{
		"run_id":  runID,
		"player1": matchCfg.Player1.Name,
		"player2": matchCfg.Player2.Name,
	})

	progress := make(chan simulator.ProgressUpdate, 16)
	forwarderDone := make(chan struct{})
	go func() {
		defer close(forwarderDone)
		for update := range progress {
			h.hub.BroadcastProgress(runID, update)
		}
	}()

	batch, err := h.sim.Run(c.Request.Context(), matchCfg, progress)
	close(progress)
	<-forwarderDone
	if err != nil {
		log.WithError(err).Warn("Simulation run did not complete")
		utils.SendInternalError(c, "Simulation did not complete: "+err.Error())
		return
	}

	summary, err := simulator.Aggregate(batch)
	if err != nil {
		log.WithError(err).Error("Failed to aggregate simulation batch")
		utils.SendInternalError(c, "Failed to aggregate results")
		return
	}

	run := &services.StoredRun{
		RunID:     runID,
		CreatedAt: time.Now(),
		Config:    matchCfg,
		Summary:   summary,
		Batch:     batch,
	}
	// Storage failure degrades exports, not the response itself.
	if err := h.store.Save(context.Background(), run); err != nil {
		log.WithError(err).Error("Failed to store simulation run")
	}

	h.hub.BroadcastComplete(runID, summary)

	utils.SendSuccess(c, gin.H{
		"run_id":     runID,
		"created_at": run.CreatedAt,
		"summary":    summary,
	})
}

// GetSimulation returns the stored summary for a run.
func (h *SimulationHandler) GetSimulation(c *gin.Context) {
	run, ok := h.loadRun(c)
	if !ok {
		return
	}
	utils.SendSuccess(c, gin.H{
		"run_id":     run.RunID,
		"created_at": run.CreatedAt,
		"config":     run.Config,
		"summary":    run.Summary,
	})
}

// ListMatches pages through a run's per-match results.
func (h *SimulationHandler) ListMatches(c *gin.Context) {
	run, ok := h.loadRun(c)
	if !ok {
		return
	}

	page, perPage := parsePagination(c)
	matches := run.Batch.Matches
	total := len(matches)
	totalPages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	utils.SendSuccessWithMeta(c, matches[start:end], &utils.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      int64(total),
		TotalPages: totalPages,
	})
}

func (h *SimulationHandler) loadRun(c *gin.Context) (*services.StoredRun, bool) {
	runID := c.Param("id")
	run, err := h.store.Get(c.Request.Context(), runID)
	if err != nil {
		if err == services.ErrRunNotFound {
			utils.SendNotFound(c, "Simulation run not found or expired")
		} else {
			h.logger.WithError(err).Error("Failed to load simulation run")
			utils.SendInternalError(c, "Failed to load simulation run")
		}
		return nil, false
	}
	return run, true
}

func parsePagination(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultMatchesPerPage)))
	if perPage < 1 {
		perPage = defaultMatchesPerPage
	}
	if perPage > maxMatchesPerPage {
		perPage = maxMatchesPerPage
	}
	return page, perPage
}
