package engine

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/tennis-sim/internal/models"
)

// MatchEngine resolves a single match point by point. Each engine owns its
// random stream, so independent engines share no state; construct one per
// simulated match.
type MatchEngine struct {
	p1     models.PlayerProfile
	p2     models.PlayerProfile
	format models.MatchFormat
	rng    *rand.Rand
	logger *logrus.Logger
	stats  [2]models.PlayerMatchStats
}

// NewMatchEngine builds an engine seeded for one match. The logger may be
// nil in library use; it only receives degenerate-probability warnings.
func NewMatchEngine(p1, p2 models.PlayerProfile, format models.MatchFormat, seed int64, logger *logrus.Logger) *MatchEngine {
	return &MatchEngine{
		p1:     p1,
		p2:     p2,
		format: format,
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
	}
}

func (e *MatchEngine) profile(p models.Player) *models.PlayerProfile {
	if p == models.Player1 {
		return &e.p1
	}
	return &e.p2
}

func (e *MatchEngine) statsFor(p models.Player) *models.PlayerMatchStats {
	return &e.stats[p-models.Player1]
}

// Play resolves the full match and returns an immutable result with
// statistics aggregated bottom-up. Serve order alternates game by game and
// carries across set boundaries, with a tiebreak counting as one game in
// the rotation.
func (e *MatchEngine) Play() *models.MatchResult {
	setsToWin := e.format.SetsToWin()
	result := &models.MatchResult{}
	server := models.Player1
	p1Sets, p2Sets := 0, 0

	for p1Sets < setsToWin && p2Sets < setsToWin {
		finalSet := len(result.Sets) == e.format.NumSets-1
		set, nextServer := e.playSet(server, finalSet)
		server = nextServer
		if set.Winner == models.Player1 {
			p1Sets++
		} else {
			p2Sets++
		}
		result.Sets = append(result.Sets, set)
	}

	result.Winner = models.Player1
	if p2Sets > p1Sets {
		result.Winner = models.Player2
	}
	result.P1Stats = e.stats[0]
	result.P2Stats = e.stats[1]
	for _, s := range result.Sets {
		result.TotalGames += s.P1Games + s.P2Games
	}
	result.TotalPoints = e.stats[0].PointsWon + e.stats[1].PointsWon
	return result
}
