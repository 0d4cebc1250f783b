package services

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/tennis-sim/internal/models"
)

func exportTestConfig() models.MatchConfig {
	return models.MatchConfig{
		Player1:         models.PlayerProfile{Name: "Jannik Sinner", ServeWinPct: 65, ServeVariability: 4, ClutchFactor: 2},
		Player2:         models.PlayerProfile{Name: "Carlos Alcaraz", ServeWinPct: 63, ServeVariability: 4.5, ClutchFactor: -1.5},
		Format:          models.DefaultMatchFormat(),
		SimulationCount: 2,
	}
}

func exportTestBatch() *models.SimulationBatch {
	match := models.MatchResult{
		Winner: models.Player1,
		Sets: []models.SetResult{
			{Winner: models.Player1, P1Games: 6, P2Games: 4, P1Breaks: 2, P2Breaks: 1},
			{Winner: models.Player1, P1Games: 7, P2Games: 6, P1Breaks: 1, P2Breaks: 1,
				Tiebreak: &models.TiebreakResult{P1Points: 7, P2Points: 5}},
		},
		P1Stats: models.PlayerMatchStats{
			PointsWon: 70, ServePointsWon: 40, ServePointsTotal: 55, GamesWon: 13,
			BreakPointsFaced: 4, BreakPointsSaved: 3, BreakPointsConverted: 3, BreakPointOpportunities: 6,
		},
		P2Stats: models.PlayerMatchStats{
			PointsWon: 60, ServePointsWon: 45, ServePointsTotal: 75, GamesWon: 10,
			BreakPointsFaced: 6, BreakPointsSaved: 3, BreakPointsConverted: 1, BreakPointOpportunities: 4,
		},
		TotalGames:  23,
		TotalPoints: 130,
	}
	return &models.SimulationBatch{
		Config:  exportTestConfig(),
		Seed:    1,
		Matches: []models.MatchResult{match},
	}
}

func TestFilenames(t *testing.T) {
	ts := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
	cfg := exportTestConfig()

	assert.Equal(t, "tennis_sim_Jannik_Sinner_vs_Carlos_Alcaraz_20250102_150405.csv",
		CSVFilename(cfg, ts))
	assert.Equal(t, "tennis_sim_SUMMARY_Jannik_Sinner_vs_Carlos_Alcaraz_20250102_150405.txt",
		SummaryFilename(cfg, ts))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Jannik_Sinner", sanitizeName("Jannik Sinner"))
	assert.Equal(t, "N_Djokovic", sanitizeName("N. Djokovic!"))
	assert.Equal(t, "player-1_x", sanitizeName("player-1_x"))
	assert.Equal(t, "player", sanitizeName(""))
	assert.Equal(t, "player", sanitizeName("..."))
}

func TestRenderCSV_Layout(t *testing.T) {
	data, err := RenderCSV(exportTestBatch())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2, "header plus one match row")

	header := records[0]
	assert.Len(t, header, 61)
	assert.Equal(t, "Match", header[0])
	assert.Equal(t, "Winner", header[1])
	assert.Equal(t, "Set1_Score", header[2])
	assert.Equal(t, "Set5_P2_Breaks", header[36])
	assert.Equal(t, "P1_Points_Won", header[37])
	assert.Equal(t, "P2_Break_Point_Conversion_Pct", header[60])

	row := records[1]
	require.Len(t, row, 61)
	assert.Equal(t, "1", row[0])
	assert.Equal(t, "1", row[1])

	// First set block: score, winner, net breaks, winner/loser breaks, raw breaks.
	assert.Equal(t, []string{"'6-4", "1", "1", "2", "1", "2", "1"}, row[2:9])
	// Second set went to a tiebreak, so the net break margin is zero.
	assert.Equal(t, []string{"'7-6(5)", "1", "0", "1", "1", "1", "1"}, row[9:16])
	// Sets three through five were not played.
	for i := 16; i < 37; i++ {
		assert.Empty(t, row[i], "column %d", i)
	}

	assert.Equal(t, "70", row[37])
	assert.Equal(t, "60", row[38])
	assert.Equal(t, "40", row[39])
	assert.Equal(t, "45", row[40])
	assert.Equal(t, "55", row[41])
	assert.Equal(t, "75", row[42])
	assert.Equal(t, "72.73", row[43])
	assert.Equal(t, "60.00", row[44])
	assert.Equal(t, "13", row[45])
	assert.Equal(t, "10", row[46])
	assert.Equal(t, "130", row[47])
	assert.Equal(t, "23", row[48])
	assert.Equal(t, "4", row[49])
	assert.Equal(t, "6", row[50])
	assert.Equal(t, "3", row[51])
	assert.Equal(t, "3", row[52])
	assert.Equal(t, "3", row[53])
	assert.Equal(t, "1", row[54])
	assert.Equal(t, "6", row[55])
	assert.Equal(t, "4", row[56])
	assert.Equal(t, "75.00", row[57])
	assert.Equal(t, "50.00", row[58])
	assert.Equal(t, "50.00", row[59])
	assert.Equal(t, "25.00", row[60])
}

func TestRenderCSV_ScoreCellsKeepApostrophe(t *testing.T) {
	data, err := RenderCSV(exportTestBatch())
	require.NoError(t, err)
	assert.Contains(t, string(data), "'6-4", "set scores are prefixed so spreadsheets keep them as text")
}

func TestRenderSummaryText(t *testing.T) {
	run := &StoredRun{
		RunID:     "test-run",
		CreatedAt: time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC),
		Config:    exportTestConfig(),
		Summary: &models.SummaryStatistics{
			SimulationCount:    2,
			Player1:            models.PlayerSummary{Name: "Jannik Sinner", Wins: 1, WinPct: 50},
			Player2:            models.PlayerSummary{Name: "Carlos Alcaraz", Wins: 1, WinPct: 50},
			AvgTotalGames:      27.5,
			AvgTotalPoints:     165,
			TiebreakSetPct:     40,
			AvgBPConversionPct: 40.909090909,
		},
	}

	text := RenderSummaryText(run)
	lines := strings.Split(text, "\n")
	sep := strings.Repeat("=", 80)

	require.Greater(t, len(lines), 10)
	assert.Equal(t, sep, lines[0])
	assert.Equal(t, "TENNIS MATCH SIMULATION SUMMARY", lines[1])
	assert.Equal(t, sep, lines[2])

	assert.Contains(t, text, "Simulation Date: 2025-01-02 15:04:05\n")
	assert.Contains(t, text, "Number of Simulations: 2\n")
	assert.Contains(t, text,
		"Match Format: Best of 3 Sets, Traditional (to 6), Slam (7pt regular, 10pt final), Advantage Scoring\n")
	assert.Contains(t, text, "PLAYER PARAMETERS (HEAD-TO-HEAD MATCHUP)\n")

	assert.Contains(t, text, "Jannik Sinner:\n  Serve Win %: 65%\n  Variability: 4%\n  Clutch Factor: +2.0\n")
	assert.Contains(t, text, "Carlos Alcaraz:\n  Serve Win %: 63%\n  Variability: 4.5%\n  Clutch Factor: -1.5\n")

	assert.Contains(t, text, "RESULTS\n")
	assert.Contains(t, text, "Jannik Sinner wins: 1/2 (50.0%)\n")
	assert.Contains(t, text, "Carlos Alcaraz wins: 1/2 (50.0%)\n")
	assert.Contains(t, text, "Average games per match: 27.5\n")
	assert.Contains(t, text, "Average points per match: 165\n")
	assert.Contains(t, text, "Tiebreak frequency: 40.0%\n")
	assert.Contains(t, text, "Average BP conversion: 40.9%\n")
}
