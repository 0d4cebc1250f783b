package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/stitts-dev/tennis-sim/internal/models"
)

// Exports pad every row to five set blocks so the column layout is fixed
// across formats; unplayed sets render as empty cells.
const exportSetSlots = 5

const filenameTimestamp = "20060102_150405"

// CSVFilename names a per-match detail export, e.g.
// "tennis_sim_Sinner_vs_Alcaraz_20250114_101530.csv".
func CSVFilename(cfg models.MatchConfig, t time.Time) string {
	return fmt.Sprintf("tennis_sim_%s_vs_%s_%s.csv",
		sanitizeName(cfg.Player1.Name), sanitizeName(cfg.Player2.Name), t.Format(filenameTimestamp))
}

// SummaryFilename names the companion text report.
func SummaryFilename(cfg models.MatchConfig, t time.Time) string {
	return fmt.Sprintf("tennis_sim_SUMMARY_%s_vs_%s_%s.txt",
		sanitizeName(cfg.Player1.Name), sanitizeName(cfg.Player2.Name), t.Format(filenameTimestamp))
}

func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "player"
	}
	return b.String()
}

// RenderCSV writes the per-match detail table, one row per simulated match.
// Set score cells carry a leading apostrophe so spreadsheet imports keep
// "6-4" as text instead of parsing it as a date.
func RenderCSV(batch *models.SimulationBatch) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader()); err != nil {
		return nil, err
	}
	for i := range batch.Matches {
		if err := w.Write(csvRow(i, &batch.Matches[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func csvHeader() []string {
	header := []string{"Match", "Winner"}
	for n := 1; n <= exportSetSlots; n++ {
		header = append(header,
			fmt.Sprintf("Set%d_Score", n),
			fmt.Sprintf("Set%d_Winner", n),
			fmt.Sprintf("Set%d_NetBreaks", n),
			fmt.Sprintf("Set%d_WinnerBreaks", n),
			fmt.Sprintf("Set%d_LoserBreaks", n),
			fmt.Sprintf("Set%d_P1_Breaks", n),
			fmt.Sprintf("Set%d_P2_Breaks", n),
		)
	}
	return append(header,
		"P1_Points_Won", "P2_Points_Won",
		"P1_Serve_Points_Won", "P2_Serve_Points_Won",
		"P1_Serve_Points_Total", "P2_Serve_Points_Total",
		"P1_Serve_Win_Pct", "P2_Serve_Win_Pct",
		"P1_Games_Won", "P2_Games_Won",
		"Total_Points", "Total_Games",
		"P1_Break_Points_Faced", "P2_Break_Points_Faced",
		"P1_Break_Points_Saved", "P2_Break_Points_Saved",
		"P1_Break_Points_Converted", "P2_Break_Points_Converted",
		"P1_Break_Points_Opportunities", "P2_Break_Points_Opportunities",
		"P1_Break_Point_Save_Pct", "P2_Break_Point_Save_Pct",
		"P1_Break_Point_Conversion_Pct", "P2_Break_Point_Conversion_Pct",
	)
}

func csvRow(index int, m *models.MatchResult) []string {
	row := []string{strconv.Itoa(index + 1), strconv.Itoa(int(m.Winner))}

	for n := 0; n < exportSetSlots; n++ {
		if n >= len(m.Sets) {
			row = append(row, "", "", "", "", "", "", "")
			continue
		}
		s := m.Sets[n]
		winnerBreaks, loserBreaks := s.P1Breaks, s.P2Breaks
		if s.Winner == models.Player2 {
			winnerBreaks, loserBreaks = s.P2Breaks, s.P1Breaks
		}
		row = append(row,
			"'"+s.Score(),
			strconv.Itoa(int(s.Winner)),
			strconv.Itoa(s.NetBreaks()),
			strconv.Itoa(winnerBreaks),
			strconv.Itoa(loserBreaks),
			strconv.Itoa(s.P1Breaks),
			strconv.Itoa(s.P2Breaks),
		)
	}

	p1, p2 := m.P1Stats, m.P2Stats
	return append(row,
		strconv.Itoa(p1.PointsWon), strconv.Itoa(p2.PointsWon),
		strconv.Itoa(p1.ServePointsWon), strconv.Itoa(p2.ServePointsWon),
		strconv.Itoa(p1.ServePointsTotal), strconv.Itoa(p2.ServePointsTotal),
		formatPct(p1.ServeWinPct()), formatPct(p2.ServeWinPct()),
		strconv.Itoa(p1.GamesWon), strconv.Itoa(p2.GamesWon),
		strconv.Itoa(m.TotalPoints), strconv.Itoa(m.TotalGames),
		strconv.Itoa(p1.BreakPointsFaced), strconv.Itoa(p2.BreakPointsFaced),
		strconv.Itoa(p1.BreakPointsSaved), strconv.Itoa(p2.BreakPointsSaved),
		strconv.Itoa(p1.BreakPointsConverted), strconv.Itoa(p2.BreakPointsConverted),
		strconv.Itoa(p1.BreakPointOpportunities), strconv.Itoa(p2.BreakPointOpportunities),
		formatPct(p1.BreakPointSavePct()), formatPct(p2.BreakPointSavePct()),
		formatPct(p1.BreakPointConversionPct()), formatPct(p2.BreakPointConversionPct()),
	)
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatParam(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// RenderSummaryText builds the human-readable report that accompanies a CSV
// export: run metadata, both player parameter blocks, and headline results.
func RenderSummaryText(run *StoredRun) string {
	sep := strings.Repeat("=", 80)
	cfg := run.Config
	s := run.Summary

	var b strings.Builder
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format+"\n", args...)
	}
	profile := func(p models.PlayerProfile) {
		line("%s:", p.Name)
		line("  Serve Win %%: %s%%", formatParam(p.ServeWinPct))
		line("  Variability: %s%%", formatParam(p.ServeVariability))
		line("  Clutch Factor: %+.1f", p.ClutchFactor)
	}

	line(sep)
	line("TENNIS MATCH SIMULATION SUMMARY")
	line(sep)
	line("")
	line("Simulation Date: %s", run.CreatedAt.Format("2006-01-02 15:04:05"))
	line("Number of Simulations: %d", s.SimulationCount)
	line("")
	line("Match Format: %s", cfg.Format.Describe())
	line("")
	line(sep)
	line("PLAYER PARAMETERS (HEAD-TO-HEAD MATCHUP)")
	line(sep)
	line("")
	profile(cfg.Player1)
	line("")
	profile(cfg.Player2)
	line("")
	line(sep)
	line("RESULTS")
	line(sep)
	line("")
	line("%s wins: %d/%d (%.1f%%)", s.Player1.Name, s.Player1.Wins, s.SimulationCount, s.Player1.WinPct)
	line("%s wins: %d/%d (%.1f%%)", s.Player2.Name, s.Player2.Wins, s.SimulationCount, s.Player2.WinPct)
	line("")
	line("Average games per match: %.1f", s.AvgTotalGames)
	line("Average points per match: %.0f", s.AvgTotalPoints)
	line("Tiebreak frequency: %.1f%%", s.TiebreakSetPct)
	line("Average BP conversion: %.1f%%", s.AvgBPConversionPct)
	return b.String()
}
