package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/tennis-sim/internal/models"
)

// playPoint resolves one service point. The server's base probability is
// perturbed by the profile's variability, shifted by the clutch delta for
// the assessed pressure, clamped into [0,100], and compared against a
// uniform draw. Returns true when the server takes the point.
func (e *MatchEngine) playPoint(server models.Player, a Assessment) bool {
	profile := e.profile(server)
	e.statsFor(server).ServePointsTotal++

	pct := profile.ServeWinPct + e.rng.NormFloat64()*profile.ServeVariability
	if a.Pressure > 0 {
		pct += ClutchAdjustment(profile.ClutchFactor, a.Pressure)
	}
	if pct < 0 || pct > 100 {
		clamped := 0.0
		if pct > 100 {
			clamped = 100.0
		}
		if e.logger != nil {
			e.logger.WithFields(logrus.Fields{
				"server":        profile.Name,
				"base_pct":      profile.ServeWinPct,
				"effective_pct": pct,
				"clamped_pct":   clamped,
			}).Warn("Serve win probability clamped to valid range")
		}
		pct = clamped
	}

	serverWins := e.rng.Float64() < pct/100
	if serverWins {
		e.statsFor(server).ServePointsWon++
		e.statsFor(server).PointsWon++
	} else {
		e.statsFor(server.Other()).PointsWon++
	}
	return serverWins
}
