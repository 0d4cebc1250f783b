package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/tennis-sim/internal/services"
	"github.com/stitts-dev/tennis-sim/pkg/utils"
)

// ReferenceHandler serves the static catalogs clients build their input
// forms from.
type ReferenceHandler struct{}

func NewReferenceHandler() *ReferenceHandler {
	return &ReferenceHandler{}
}

// GetMatchups returns the published head-to-head parameter presets.
func (h *ReferenceHandler) GetMatchups(c *gin.Context) {
	utils.SendSuccess(c, services.MatchupPresets())
}

// GetParameters returns the guidance bands for each simulation input.
func (h *ReferenceHandler) GetParameters(c *gin.Context) {
	utils.SendSuccess(c, services.ParameterGuides())
}

// GetFormats returns every accepted match format value.
func (h *ReferenceHandler) GetFormats(c *gin.Context) {
	utils.SendSuccess(c, services.Formats())
}
