package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/tennis-sim/internal/api/handlers"
	"github.com/stitts-dev/tennis-sim/internal/api/middleware"
	"github.com/stitts-dev/tennis-sim/internal/services"
	"github.com/stitts-dev/tennis-sim/internal/simulator"
	"github.com/stitts-dev/tennis-sim/pkg/config"
)

// SetupRoutes mounts the versioned API on the given group. The websocket
// endpoint lives at the root level and is wired in main.
func SetupRoutes(group *gin.RouterGroup, store services.RunStore, hub *services.ProgressHub, sim *simulator.Simulator, cfg *config.Config, logger *logrus.Logger) {
	simulationHandler := handlers.NewSimulationHandler(store, hub, sim, cfg, logger)
	exportHandler := handlers.NewExportHandler(store, logger)
	referenceHandler := handlers.NewReferenceHandler()

	// Only the run endpoint is rate limited; reads are cheap.
	simulations := group.Group("/simulations")
	simulations.POST("", middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst), simulationHandler.RunSimulation)
	simulations.GET("/:id", simulationHandler.GetSimulation)
	simulations.GET("/:id/matches", simulationHandler.ListMatches)
	simulations.GET("/:id/export/csv", exportHandler.ExportCSV)
	simulations.GET("/:id/export/summary", exportHandler.ExportSummary)

	reference := group.Group("/reference")
	reference.GET("/matchups", referenceHandler.GetMatchups)
	reference.GET("/parameters", referenceHandler.GetParameters)
	reference.GET("/formats", referenceHandler.GetFormats)
}
