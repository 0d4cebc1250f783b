package engine

import "github.com/stitts-dev/tennis-sim/internal/models"

// playSet runs one set opened by firstServer. The returned player is due to
// serve the next game of the match; a tiebreak counts as one game in the
// rotation, so the player who did not open it serves first afterward.
func (e *MatchEngine) playSet(firstServer models.Player, finalSet bool) (models.SetResult, models.Player) {
	gamesToWin := e.format.SetFormat.GamesToWin()
	trigger := e.format.SetFormat.TiebreakTrigger()

	var result models.SetResult
	p1Games := e.format.SetFormat.StartingGames()
	p2Games := p1Games
	server := firstServer

	for {
		game := e.playGame(server, p1Games, p2Games)
		result.Games = append(result.Games, game)
		if game.Winner == models.Player1 {
			p1Games++
			if game.Broken() {
				result.P1Breaks++
			}
		} else {
			p2Games++
			if game.Broken() {
				result.P2Breaks++
			}
		}
		server = server.Other()

		if p1Games >= gamesToWin && p1Games >= p2Games+2 {
			result.Winner = models.Player1
			break
		}
		if p2Games >= gamesToWin && p2Games >= p1Games+2 {
			result.Winner = models.Player2
			break
		}
		if p1Games == trigger && p2Games == trigger {
			tb, tbWinner := e.playTiebreak(server, e.format.TiebreakSpec(finalSet))
			result.Tiebreak = &tb
			result.Winner = tbWinner
			if tbWinner == models.Player1 {
				p1Games++
			} else {
				p2Games++
			}
			server = server.Other()
			break
		}
	}

	result.P1Games = p1Games
	result.P2Games = p2Games
	return result, server
}
