package engine

import "github.com/stitts-dev/tennis-sim/internal/models"

// tiebreakOver applies the resolved tiebreak rules to a point pair.
func tiebreakOver(p1Points, p2Points int, spec models.TiebreakSpec) (models.Player, bool) {
	if p1Points >= spec.Target && (!spec.WinByTwo || p1Points >= p2Points+2) {
		return models.Player1, true
	}
	if p2Points >= spec.Target && (!spec.WinByTwo || p2Points >= p1Points+2) {
		return models.Player2, true
	}
	return 0, false
}

// playTiebreak runs the mini-game that decides a set at the trigger score.
// Serve switches after the first point and then every two points. Tiebreak
// points carry no game score for the pressure model to read, so they resolve
// on base probability and variability alone.
func (e *MatchEngine) playTiebreak(firstServer models.Player, spec models.TiebreakSpec) (models.TiebreakResult, models.Player) {
	var tb models.TiebreakResult
	server := firstServer

	for played := 0; ; played++ {
		if played%2 == 1 {
			server = server.Other()
		}

		pointWinner := server
		if !e.playPoint(server, Assessment{}) {
			pointWinner = server.Other()
		}
		if pointWinner == models.Player1 {
			tb.P1Points++
		} else {
			tb.P2Points++
		}

		if winner, over := tiebreakOver(tb.P1Points, tb.P2Points, spec); over {
			e.statsFor(winner).GamesWon++
			return tb, winner
		}
	}
}
