package simulator

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/stitts-dev/tennis-sim/internal/models"
)

// ErrEmptyBatch is returned when a batch holds no matches to aggregate.
var ErrEmptyBatch = errors.New("simulation batch holds no matches")

const sampleSize = 20

type playerTotals struct {
	wins  int
	stats models.PlayerMatchStats
}

func (t *playerTotals) absorb(s models.PlayerMatchStats) {
	t.stats.PointsWon += s.PointsWon
	t.stats.ServePointsWon += s.ServePointsWon
	t.stats.ServePointsTotal += s.ServePointsTotal
	t.stats.GamesWon += s.GamesWon
	t.stats.BreakPointsFaced += s.BreakPointsFaced
	t.stats.BreakPointsSaved += s.BreakPointsSaved
	t.stats.BreakPointsConverted += s.BreakPointsConverted
	t.stats.BreakPointOpportunities += s.BreakPointOpportunities
}

func (t *playerTotals) summarize(name string, n int) models.PlayerSummary {
	return models.PlayerSummary{
		Name:                    name,
		Wins:                    t.wins,
		WinPct:                  float64(t.wins) / float64(n) * 100,
		AvgGamesWon:             float64(t.stats.GamesWon) / float64(n),
		AvgPointsWon:            float64(t.stats.PointsWon) / float64(n),
		ServeWinPct:             t.stats.ServeWinPct(),
		BreakPointSavePct:       t.stats.BreakPointSavePct(),
		BreakPointConversionPct: t.stats.BreakPointConversionPct(),
	}
}

// Aggregate reduces a batch to summary statistics. It only reads the batch,
// so repeated aggregation of the same batch yields identical summaries.
func Aggregate(batch *models.SimulationBatch) (*models.SummaryStatistics, error) {
	if batch == nil || len(batch.Matches) == 0 {
		return nil, ErrEmptyBatch
	}

	n := len(batch.Matches)
	games := make([]float64, 0, n)
	points := make([]float64, 0, n)
	scoreCounts := make(map[string]int)

	var p1, p2 playerTotals
	setsPlayed, tiebreakSets, breakPoints := 0, 0, 0

	for i := range batch.Matches {
		m := &batch.Matches[i]
		games = append(games, float64(m.TotalGames))
		points = append(points, float64(m.TotalPoints))
		if m.Winner == models.Player1 {
			p1.wins++
		} else {
			p2.wins++
		}
		p1.absorb(m.P1Stats)
		p2.absorb(m.P2Stats)
		breakPoints += m.P1Stats.BreakPointsFaced + m.P2Stats.BreakPointsFaced

		for _, s := range m.Sets {
			setsPlayed++
			if s.HadTiebreak() {
				tiebreakSets++
			}
			scoreCounts[fmt.Sprintf("%d-%d", s.P1Games, s.P2Games)]++
		}
	}

	summary := &models.SummaryStatistics{
		SimulationCount:    n,
		Player1:            p1.summarize(batch.Config.Player1.Name, n),
		Player2:            p2.summarize(batch.Config.Player2.Name, n),
		AvgTotalGames:      stat.Mean(games, nil),
		AvgTotalPoints:     stat.Mean(points, nil),
		AvgBreakPoints:     float64(breakPoints) / float64(n),
		AvgBPConversionPct: combinedConversionPct(p1.stats, p2.stats),
		TiebreakSetPct:     float64(tiebreakSets) / float64(setsPlayed) * 100,
		GamesDistribution:  distribution(games),
		PointsDistribution: distribution(points),
		SetScoreCounts:     scoreCounts,
	}

	limit := sampleSize
	if n < limit {
		limit = n
	}
	summary.Sample = make([]models.MatchSample, 0, limit)
	for i := 0; i < limit; i++ {
		m := &batch.Matches[i]
		summary.Sample = append(summary.Sample, models.MatchSample{
			Match:       i + 1,
			Winner:      batch.Config.PlayerName(m.Winner),
			ScoreLine:   m.ScoreLine(),
			TotalGames:  m.TotalGames,
			TotalPoints: m.TotalPoints,
		})
	}

	return summary, nil
}

func combinedConversionPct(p1, p2 models.PlayerMatchStats) float64 {
	opportunities := p1.BreakPointOpportunities + p2.BreakPointOpportunities
	if opportunities == 0 {
		return 0
	}
	converted := p1.BreakPointsConverted + p2.BreakPointsConverted
	return float64(converted) / float64(opportunities) * 100
}

// distribution computes spread statistics over a copy of values. StdDev
// needs at least two observations; a single-match batch reports zero spread
// rather than NaN.
func distribution(values []float64) models.DistributionSummary {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	stdDev := 0.0
	if len(sorted) > 1 {
		stdDev = stat.StdDev(sorted, nil)
	}
	return models.DistributionSummary{
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		StdDev: stdDev,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		P25:    stat.Quantile(0.25, stat.Empirical, sorted, nil),
		P75:    stat.Quantile(0.75, stat.Empirical, sorted, nil),
	}
}
