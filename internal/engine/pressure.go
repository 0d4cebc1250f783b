package engine

import "github.com/stitts-dev/tennis-sim/internal/models"

// MaxPressure caps the combined situational score.
const MaxPressure = 10.0

// PointContext is the state the pressure model reads before a service point:
// the in-game point counts from the server's perspective and the game score
// within the current set.
type PointContext struct {
	ServerPoints   int
	ReturnerPoints int
	ServerGames    int
	ReturnerGames  int
	GamesToWin     int
	AdScoring      bool
}

// Assessment is the pressure model's verdict for one point.
type Assessment struct {
	Pressure   float64
	BreakPoint bool
}

type pressureRule struct {
	name       string
	weight     float64
	breakPoint bool
	applies    func(PointContext) bool
}

// Game-deficit tiers. Evaluated in order, first match wins; the set-loss
// situations outrank the plain deficit tiers. Being down breaks contributes
// a baseline independent of the point score.
var deficitRules = []pressureRule{
	{name: "about_to_lose_set", weight: 8.5, applies: func(c PointContext) bool {
		return c.ReturnerGames >= c.GamesToWin-1 && c.ReturnerGames-c.ServerGames >= 2
	}},
	{name: "serving_to_stay_in_set", weight: 6.0, applies: func(c PointContext) bool {
		return c.ReturnerGames == c.GamesToWin-1 && c.ServerGames == c.GamesToWin-2
	}},
	{name: "down_three_breaks", weight: 8.5, applies: func(c PointContext) bool {
		return c.ReturnerGames-c.ServerGames >= 3
	}},
	{name: "down_two_breaks", weight: 6.0, applies: func(c PointContext) bool {
		return c.ReturnerGames-c.ServerGames == 2
	}},
	{name: "down_one_break", weight: 3.5, applies: func(c PointContext) bool {
		return c.ReturnerGames-c.ServerGames == 1
	}},
}

// In-game tiers under advantage scoring. The deeper the hole, the heavier
// the point.
var adGameRules = []pressureRule{
	{name: "triple_break_point", weight: 5.0, breakPoint: true, applies: func(c PointContext) bool {
		return c.ServerPoints == 0 && c.ReturnerPoints == 3
	}},
	{name: "double_break_point", weight: 4.5, breakPoint: true, applies: func(c PointContext) bool {
		return c.ServerPoints == 1 && c.ReturnerPoints == 3
	}},
	{name: "single_break_point", weight: 4.0, breakPoint: true, applies: func(c PointContext) bool {
		return c.ServerPoints == 2 && c.ReturnerPoints == 3
	}},
	{name: "advantage_returner", weight: 4.0, breakPoint: true, applies: func(c PointContext) bool {
		return c.ServerPoints >= 3 && c.ReturnerPoints == c.ServerPoints+1
	}},
	{name: "advantage_server", weight: 2.0, applies: func(c PointContext) bool {
		return c.ReturnerPoints >= 3 && c.ServerPoints == c.ReturnerPoints+1
	}},
	{name: "deuce", weight: 2.5, applies: func(c PointContext) bool {
		return c.ServerPoints >= 3 && c.ServerPoints == c.ReturnerPoints
	}},
	{name: "thirty_all", weight: 1.5, applies: func(c PointContext) bool {
		return c.ServerPoints == 2 && c.ReturnerPoints == 2
	}},
}

// In-game tiers under no-ad scoring. Every returner point at 3 is a break
// point, including the deciding point at 40-40.
var noAdGameRules = []pressureRule{
	{name: "triple_break_point", weight: 5.0, breakPoint: true, applies: func(c PointContext) bool {
		return c.ServerPoints == 0 && c.ReturnerPoints == 3
	}},
	{name: "double_break_point", weight: 4.5, breakPoint: true, applies: func(c PointContext) bool {
		return c.ServerPoints == 1 && c.ReturnerPoints == 3
	}},
	{name: "single_break_point", weight: 4.5, breakPoint: true, applies: func(c PointContext) bool {
		return c.ServerPoints == 2 && c.ReturnerPoints == 3
	}},
	{name: "deciding_point", weight: 4.5, breakPoint: true, applies: func(c PointContext) bool {
		return c.ServerPoints == 3 && c.ReturnerPoints == 3
	}},
	{name: "thirty_all", weight: 1.5, applies: func(c PointContext) bool {
		return c.ServerPoints == 2 && c.ReturnerPoints == 2
	}},
}

// AssessPressure computes the situational pressure on the server before a
// point. The deficit group and the in-game group each contribute their first
// matching rule; the groups sum and the total is capped at MaxPressure.
// Pure and deterministic given the context.
func AssessPressure(c PointContext) Assessment {
	var a Assessment
	for _, r := range deficitRules {
		if r.applies(c) {
			a.Pressure += r.weight
			break
		}
	}
	gameRules := adGameRules
	if !c.AdScoring {
		gameRules = noAdGameRules
	}
	for _, r := range gameRules {
		if r.applies(c) {
			a.Pressure += r.weight
			a.BreakPoint = r.breakPoint
			break
		}
	}
	if a.Pressure > MaxPressure {
		a.Pressure = MaxPressure
	}
	return a
}

// contextFor builds the pressure context for the given server from the
// player-indexed game score.
func contextFor(server models.Player, serverPoints, returnerPoints, p1Games, p2Games, gamesToWin int, adScoring bool) PointContext {
	sg, rg := p1Games, p2Games
	if server == models.Player2 {
		sg, rg = p2Games, p1Games
	}
	return PointContext{
		ServerPoints:   serverPoints,
		ReturnerPoints: returnerPoints,
		ServerGames:    sg,
		ReturnerGames:  rg,
		GamesToWin:     gamesToWin,
		AdScoring:      adScoring,
	}
}
