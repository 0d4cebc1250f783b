package engine

import "github.com/stitts-dev/tennis-sim/internal/models"

// gameOver applies the scoring mode's win condition to a raw point pair.
// Advantage scoring requires four points and a two-point margin; no-ad play
// is first to four, with the 3-3 point deciding the game.
func gameOver(serverPoints, returnerPoints int, adScoring bool) (serverWon, over bool) {
	if adScoring {
		if serverPoints >= 4 && serverPoints >= returnerPoints+2 {
			return true, true
		}
		if returnerPoints >= 4 && returnerPoints >= serverPoints+2 {
			return false, true
		}
		return false, false
	}
	if serverPoints >= 4 {
		return true, true
	}
	if returnerPoints >= 4 {
		return false, true
	}
	return false, false
}

// playGame runs one service game from the given set score. The score feeds
// the pressure model before every point, and break points update both
// players' counters as they occur: faced and saved for the server,
// opportunities and conversions for the returner.
func (e *MatchEngine) playGame(server models.Player, p1Games, p2Games int) models.GameResult {
	result := models.GameResult{Server: server}
	gamesToWin := e.format.SetFormat.GamesToWin()
	serverPoints, returnerPoints := 0, 0

	for {
		a := AssessPressure(contextFor(server, serverPoints, returnerPoints, p1Games, p2Games, gamesToWin, e.format.AdScoring))
		if a.BreakPoint {
			result.BreakPointsFaced++
			e.statsFor(server).BreakPointsFaced++
			e.statsFor(server.Other()).BreakPointOpportunities++
		}

		if e.playPoint(server, a) {
			serverPoints++
			if a.BreakPoint {
				result.BreakPointsSaved++
				e.statsFor(server).BreakPointsSaved++
			}
		} else {
			returnerPoints++
			if a.BreakPoint {
				e.statsFor(server.Other()).BreakPointsConverted++
			}
		}

		if serverWon, over := gameOver(serverPoints, returnerPoints, e.format.AdScoring); over {
			result.ServerPoints = serverPoints
			result.ReturnerPoints = returnerPoints
			result.Winner = server
			if !serverWon {
				result.Winner = server.Other()
			}
			e.statsFor(result.Winner).GamesWon++
			return result
		}
	}
}
