package simulator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/tennis-sim/internal/models"
)

// twoMatchBatch is a hand-built batch with every counter chosen so the
// aggregate numbers can be checked exactly: match A is a straight-sets P1 win
// in 23 games and 130 points, match B a three-set P2 win in 32 games and 200
// points, with one tiebreak in each.
func twoMatchBatch() *models.SimulationBatch {
	matchA := models.MatchResult{
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

	matchB := models.MatchResult{
		Winner: models.Player2,
		Sets: []models.SetResult{
			{Winner: models.Player2, P1Games: 4, P2Games: 6, P1Breaks: 1, P2Breaks: 2},
			{Winner: models.Player1, P1Games: 6, P2Games: 3, P1Breaks: 2},
			{Winner: models.Player2, P1Games: 6, P2Games: 7,
				Tiebreak: &models.TiebreakResult{P1Points: 8, P2Points: 10}},
		},
		P1Stats: models.PlayerMatchStats{
			PointsWon: 95, ServePointsWon: 60, ServePointsTotal: 100, GamesWon: 16,
			BreakPointsFaced: 5, BreakPointsSaved: 3, BreakPointsConverted: 3, BreakPointOpportunities: 7,
		},
		P2Stats: models.PlayerMatchStats{
			PointsWon: 105, ServePointsWon: 65, ServePointsTotal: 100, GamesWon: 16,
			BreakPointsFaced: 7, BreakPointsSaved: 4, BreakPointsConverted: 2, BreakPointOpportunities: 5,
		},
		TotalGames:  32,
		TotalPoints: 200,
	}

	return &models.SimulationBatch{
		Config: models.MatchConfig{
			Player1:         models.PlayerProfile{Name: "Ann", ServeWinPct: 65, ServeVariability: 4},
			Player2:         models.PlayerProfile{Name: "Bea", ServeWinPct: 63, ServeVariability: 4},
			Format:          models.DefaultMatchFormat(),
			SimulationCount: 2,
		},
		Seed:    1,
		Matches: []models.MatchResult{matchA, matchB},
	}
}

func TestAggregate_EmptyBatch(t *testing.T) {
	_, err := Aggregate(nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)

	_, err = Aggregate(&models.SimulationBatch{})
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestAggregate_ExactNumbers(t *testing.T) {
	summary, err := Aggregate(twoMatchBatch())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.SimulationCount)

	assert.Equal(t, "Ann", summary.Player1.Name)
	assert.Equal(t, 1, summary.Player1.Wins)
	assert.InDelta(t, 50.0, summary.Player1.WinPct, 1e-9)
	assert.InDelta(t, 14.5, summary.Player1.AvgGamesWon, 1e-9)
	assert.InDelta(t, 82.5, summary.Player1.AvgPointsWon, 1e-9)
	assert.InDelta(t, 100.0/155.0*100, summary.Player1.ServeWinPct, 1e-9)
	assert.InDelta(t, 6.0/9.0*100, summary.Player1.BreakPointSavePct, 1e-9)
	assert.InDelta(t, 6.0/13.0*100, summary.Player1.BreakPointConversionPct, 1e-9)

	assert.Equal(t, "Bea", summary.Player2.Name)
	assert.Equal(t, 1, summary.Player2.Wins)
	assert.InDelta(t, 13.0, summary.Player2.AvgGamesWon, 1e-9)
	assert.InDelta(t, 110.0/175.0*100, summary.Player2.ServeWinPct, 1e-9)

	assert.InDelta(t, 27.5, summary.AvgTotalGames, 1e-9)
	assert.InDelta(t, 165.0, summary.AvgTotalPoints, 1e-9)
	assert.InDelta(t, 11.0, summary.AvgBreakPoints, 1e-9)
	assert.InDelta(t, 9.0/22.0*100, summary.AvgBPConversionPct, 1e-9)
	assert.InDelta(t, 40.0, summary.TiebreakSetPct, 1e-9, "two tiebreaks in five sets")

	assert.Equal(t, map[string]int{
		"6-4": 1, "7-6": 1, "4-6": 1, "6-3": 1, "6-7": 1,
	}, summary.SetScoreCounts)
}

func TestAggregate_Distributions(t *testing.T) {
	summary, err := Aggregate(twoMatchBatch())
	require.NoError(t, err)

	games := summary.GamesDistribution
	assert.InDelta(t, 27.5, games.Mean, 1e-9)
	assert.InDelta(t, 23.0, games.Min, 1e-9)
	assert.InDelta(t, 32.0, games.Max, 1e-9)
	assert.InDelta(t, 23.0, games.Median, 1e-9)
	assert.InDelta(t, 23.0, games.P25, 1e-9)
	assert.InDelta(t, 32.0, games.P75, 1e-9)
	assert.InDelta(t, 9.0/math.Sqrt2, games.StdDev, 1e-9)

	points := summary.PointsDistribution
	assert.InDelta(t, 165.0, points.Mean, 1e-9)
	assert.InDelta(t, 130.0, points.Min, 1e-9)
	assert.InDelta(t, 200.0, points.Max, 1e-9)
}

func TestAggregate_SingleMatchHasZeroSpread(t *testing.T) {
	batch := twoMatchBatch()
	batch.Matches = batch.Matches[:1]

	summary, err := Aggregate(batch)
	require.NoError(t, err)
	assert.Zero(t, summary.GamesDistribution.StdDev)
	assert.Zero(t, summary.PointsDistribution.StdDev)
	assert.InDelta(t, 23.0, summary.GamesDistribution.Mean, 1e-9)
	assert.InDelta(t, 23.0, summary.GamesDistribution.Median, 1e-9)
	assert.InDelta(t, 100.0, summary.Player1.WinPct, 1e-9)
}

func TestAggregate_Sample(t *testing.T) {
	summary, err := Aggregate(twoMatchBatch())
	require.NoError(t, err)

	require.Len(t, summary.Sample, 2)
	assert.Equal(t, models.MatchSample{
		Match: 1, Winner: "Ann", ScoreLine: "6-4, 7-6(5)", TotalGames: 23, TotalPoints: 130,
	}, summary.Sample[0])
	assert.Equal(t, models.MatchSample{
		Match: 2, Winner: "Bea", ScoreLine: "6-4, 6-3, 7-6(8)", TotalGames: 32, TotalPoints: 200,
	}, summary.Sample[1])
}

func TestAggregate_SampleCappedAtTwenty(t *testing.T) {
	base := twoMatchBatch()
	batch := &models.SimulationBatch{Config: base.Config}
	for i := 0; i < 25; i++ {
		batch.Matches = append(batch.Matches, base.Matches[0])
	}

	summary, err := Aggregate(batch)
	require.NoError(t, err)
	assert.Len(t, summary.Sample, sampleSize)
	assert.Equal(t, 20, summary.Sample[19].Match)
}

func TestAggregate_IsIdempotent(t *testing.T) {
	batch := twoMatchBatch()

	first, err := Aggregate(batch)
	require.NoError(t, err)
	second, err := Aggregate(batch)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
