package models

// PlayerSummary is one player's aggregate line across a batch.
type PlayerSummary struct {
	Name                    string  `json:"name"`
	Wins                    int     `json:"wins"`
	WinPct                  float64 `json:"win_pct"`
	AvgGamesWon             float64 `json:"avg_games_won"`
	AvgPointsWon            float64 `json:"avg_points_won"`
	ServeWinPct             float64 `json:"serve_win_pct"`
	BreakPointSavePct       float64 `json:"break_point_save_pct"`
	BreakPointConversionPct float64 `json:"break_point_conversion_pct"`
}

// DistributionSummary describes the spread of a per-match quantity.
type DistributionSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
}

// SummaryStatistics is the aggregate view of a SimulationBatch: a pure
// reduction, identical however many times it is recomputed.
type SummaryStatistics struct {
	SimulationCount    int                 `json:"simulation_count"`
	Player1            PlayerSummary       `json:"player1"`
	Player2            PlayerSummary       `json:"player2"`
	AvgTotalGames      float64             `json:"avg_total_games"`
	AvgTotalPoints     float64             `json:"avg_total_points"`
	AvgBreakPoints     float64             `json:"avg_break_points"`
	AvgBPConversionPct float64             `json:"avg_bp_conversion_pct"`
	TiebreakSetPct     float64             `json:"tiebreak_set_pct"`
	GamesDistribution  DistributionSummary `json:"games_distribution"`
	PointsDistribution DistributionSummary `json:"points_distribution"`
	SetScoreCounts     map[string]int      `json:"set_score_counts"`
	Sample             []MatchSample       `json:"sample,omitempty"`
}

// MatchSample is a display row for one simulated match.
type MatchSample struct {
	Match       int    `json:"match"`
	Winner      string `json:"winner"`
	ScoreLine   string `json:"score_line"`
	TotalGames  int    `json:"total_games"`
	TotalPoints int    `json:"total_points"`
}
