package models

import (
	"fmt"
	"strings"
)

// Player identifies one side of the matchup.
type Player int

const (
	Player1 Player = 1
	Player2 Player = 2
)

// Other returns the opposing side.
func (p Player) Other() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// GameResult records one service game from the server's perspective.
type GameResult struct {
	Server           Player `json:"server"`
	Winner           Player `json:"winner"`
	ServerPoints     int    `json:"server_points"`
	ReturnerPoints   int    `json:"returner_points"`
	BreakPointsFaced int    `json:"break_points_faced"`
	BreakPointsSaved int    `json:"break_points_saved"`
}

// Broken reports whether the returner took the game.
func (g GameResult) Broken() bool {
	return g.Winner != g.Server
}

// TiebreakResult records the point score of a tiebreak.
type TiebreakResult struct {
	P1Points int `json:"p1_points"`
	P2Points int `json:"p2_points"`
}

// SetResult records one completed set. Games holds the per-game log in
// playing order (regular games only; a tiebreak is recorded separately).
// The log stays in memory for analysis but is kept out of serialized runs.
type SetResult struct {
	Winner   Player          `json:"winner"`
	P1Games  int             `json:"p1_games"`
	P2Games  int             `json:"p2_games"`
	P1Breaks int             `json:"p1_breaks"`
	P2Breaks int             `json:"p2_breaks"`
	Tiebreak *TiebreakResult `json:"tiebreak,omitempty"`
	Games    []GameResult    `json:"-"`
}

// HadTiebreak reports whether the set was decided by a tiebreak.
func (s SetResult) HadTiebreak() bool {
	return s.Tiebreak != nil
}

// NetBreaks returns the break margin favoring the set winner, zero for a
// set decided by a tiebreak.
func (s SetResult) NetBreaks() int {
	if s.Tiebreak != nil {
		return 0
	}
	if s.Winner == Player1 {
		return s.P1Breaks - s.P2Breaks
	}
	return s.P2Breaks - s.P1Breaks
}

// Score renders the set winner-first, with the loser's tiebreak points in
// parentheses, e.g. "6-4" or "7-6(3)".
func (s SetResult) Score() string {
	winnerGames, loserGames := s.P1Games, s.P2Games
	if s.Winner == Player2 {
		winnerGames, loserGames = s.P2Games, s.P1Games
	}
	score := fmt.Sprintf("%d-%d", winnerGames, loserGames)
	if s.Tiebreak != nil {
		loserPoints := s.Tiebreak.P2Points
		if s.Winner == Player2 {
			loserPoints = s.Tiebreak.P1Points
		}
		score += fmt.Sprintf("(%d)", loserPoints)
	}
	return score
}

// PlayerMatchStats accumulates one player's counting stats across a match.
type PlayerMatchStats struct {
	PointsWon               int `json:"points_won"`
	ServePointsWon          int `json:"serve_points_won"`
	ServePointsTotal        int `json:"serve_points_total"`
	GamesWon                int `json:"games_won"`
	BreakPointsFaced        int `json:"break_points_faced"`
	BreakPointsSaved        int `json:"break_points_saved"`
	BreakPointsConverted    int `json:"break_points_converted"`
	BreakPointOpportunities int `json:"break_point_opportunities"`
}

// ServeWinPct returns serve points won as a percentage of serve points
// played, 0 when no serve points were played.
func (s PlayerMatchStats) ServeWinPct() float64 {
	if s.ServePointsTotal == 0 {
		return 0
	}
	return float64(s.ServePointsWon) / float64(s.ServePointsTotal) * 100
}

// BreakPointSavePct returns break points saved over break points faced on
// serve, 0 when none were faced.
func (s PlayerMatchStats) BreakPointSavePct() float64 {
	if s.BreakPointsFaced == 0 {
		return 0
	}
	return float64(s.BreakPointsSaved) / float64(s.BreakPointsFaced) * 100
}

// BreakPointConversionPct returns break points converted over break-point
// opportunities while returning, 0 when there were none.
func (s PlayerMatchStats) BreakPointConversionPct() float64 {
	if s.BreakPointOpportunities == 0 {
		return 0
	}
	return float64(s.BreakPointsConverted) / float64(s.BreakPointOpportunities) * 100
}

// MatchResult is one fully resolved match, immutable once produced.
type MatchResult struct {
	Winner      Player           `json:"winner"`
	Sets        []SetResult      `json:"sets"`
	P1Stats     PlayerMatchStats `json:"p1_stats"`
	P2Stats     PlayerMatchStats `json:"p2_stats"`
	TotalGames  int              `json:"total_games"`
	TotalPoints int              `json:"total_points"`
}

// Stats returns the accumulated stats for a side.
func (m *MatchResult) Stats(p Player) PlayerMatchStats {
	if p == Player1 {
		return m.P1Stats
	}
	return m.P2Stats
}

// SetsWon counts the sets taken by a side.
func (m *MatchResult) SetsWon(p Player) int {
	n := 0
	for _, s := range m.Sets {
		if s.Winner == p {
			n++
		}
	}
	return n
}

// TiebreakCount counts the sets decided by a tiebreak.
func (m *MatchResult) TiebreakCount() int {
	n := 0
	for _, s := range m.Sets {
		if s.HadTiebreak() {
			n++
		}
	}
	return n
}

// ScoreLine renders the match set by set, e.g. "6-4, 7-6(3)".
func (m *MatchResult) ScoreLine() string {
	scores := make([]string, len(m.Sets))
	for i, s := range m.Sets {
		scores[i] = s.Score()
	}
	return strings.Join(scores, ", ")
}

// SimulationBatch is the ordered output of one simulation run. Seed is the
// base seed actually used, so any run can be replayed exactly.
type SimulationBatch struct {
	Config  MatchConfig   `json:"config"`
	Seed    int64         `json:"seed"`
	Matches []MatchResult `json:"matches"`
}
