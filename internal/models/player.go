package models

import "fmt"

// Documented parameter bounds. Callers enforce these before handing a config
// to the engine; the engine itself saturates rather than fails when a value
// drifts outside them.
const (
	MinServeWinPct      = 0.0
	MaxServeWinPct      = 100.0
	MinServeVariability = 1.0
	MaxServeVariability = 8.0
	MinClutchFactor     = -5.0
	MaxClutchFactor     = 5.0
)

// Defaults used when a caller omits a player block entirely.
const (
	DefaultServeWinPct      = 65.0
	DefaultServeVariability = 4.0
	DefaultClutchFactor     = 0.0
)

// DefaultPlayerProfile is an average tour-level baseline under the given name.
func DefaultPlayerProfile(name string) PlayerProfile {
	return PlayerProfile{
		Name:             name,
		ServeWinPct:      DefaultServeWinPct,
		ServeVariability: DefaultServeVariability,
	}
}

// PlayerProfile describes one side of a specific head-to-head matchup. The
// parameters are matchup-specific, not general player ability: the same
// player carries different numbers against different opponents.
//
// ServeWinPct is the serve-point win percentage against this opponent
// (55-75 typical for top-20 matchups). ServeVariability is the point-to-point
// standard deviation of serve performance (2-3 very consistent, 5-8 erratic).
// ClutchFactor shifts performance on pressure points (-5 major choker,
// 0 neutral, +5 elite).
type PlayerProfile struct {
	Name             string  `json:"name"`
	ServeWinPct      float64 `json:"serve_win_pct"`
	ServeVariability float64 `json:"serve_variability"`
	ClutchFactor     float64 `json:"clutch_factor"`
}

func (p *PlayerProfile) Validate(label string) error {
	if p.ServeWinPct < MinServeWinPct || p.ServeWinPct > MaxServeWinPct {
		return NewConfigError(label+".serve_win_pct", fmt.Sprintf("must be %g-%g", MinServeWinPct, MaxServeWinPct))
	}
	if p.ServeVariability < MinServeVariability || p.ServeVariability > MaxServeVariability {
		return NewConfigError(label+".serve_variability", fmt.Sprintf("must be %g-%g", MinServeVariability, MaxServeVariability))
	}
	if p.ClutchFactor < MinClutchFactor || p.ClutchFactor > MaxClutchFactor {
		return NewConfigError(label+".clutch_factor", fmt.Sprintf("must be %g to %g", MinClutchFactor, MaxClutchFactor))
	}
	return nil
}
