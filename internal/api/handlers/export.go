package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/tennis-sim/internal/services"
	"github.com/stitts-dev/tennis-sim/pkg/utils"
)

type ExportHandler struct {
	store  services.RunStore
	logger *logrus.Logger
}

func NewExportHandler(store services.RunStore, logger *logrus.Logger) *ExportHandler {
	return &ExportHandler{store: store, logger: logger}
}

// ExportCSV streams the per-match detail table for a stored run.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	run, ok := h.loadRun(c)
	if !ok {
		return
	}

	data, err := services.RenderCSV(run.Batch)
	if err != nil {
		h.logger.WithError(err).Error("Failed to render CSV export")
		utils.SendInternalError(c, "Failed to render CSV export")
		return
	}

	filename := services.CSVFilename(run.Config, run.CreatedAt)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// ExportSummary streams the human-readable report for a stored run.
func (h *ExportHandler) ExportSummary(c *gin.Context) {
	run, ok := h.loadRun(c)
	if !ok {
		return
	}

	text := services.RenderSummaryText(run)
	filename := services.SummaryFilename(run.Config, run.CreatedAt)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

func (h *ExportHandler) loadRun(c *gin.Context) (*services.StoredRun, bool) {
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
