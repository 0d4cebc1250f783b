package services

import "github.com/stitts-dev/tennis-sim/internal/models"

// MatchupPreset is a published head-to-head parameter pairing.
type MatchupPreset struct {
	Name    string               `json:"name"`
	Player1 models.PlayerProfile `json:"player1"`
	Player2 models.PlayerProfile `json:"player2"`
}

// ParameterBand describes one range within a parameter guide.
type ParameterBand struct {
	Range string `json:"range"`
	Label string `json:"label"`
}

// ParameterGuide explains one simulation input and its typical bands.
type ParameterGuide struct {
	Parameter string          `json:"parameter"`
	Typical   string          `json:"typical"`
	Default   float64         `json:"default"`
	Bands     []ParameterBand `json:"bands"`
}

// FormatOption pairs an accepted config value with its display label.
type FormatOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FormatCatalog lists every accepted match format value.
type FormatCatalog struct {
	NumSets         []int              `json:"num_sets"`
	SetFormats      []FormatOption     `json:"set_formats"`
	TiebreakFormats []FormatOption     `json:"tiebreak_formats"`
	Scoring         []FormatOption     `json:"scoring"`
	Default         models.MatchFormat `json:"default"`
}

// MatchupPresets returns head-to-head pairings for current top players.
// The numbers are matchup specific: the same player carries different
// parameters against different opponents.
func MatchupPresets() []MatchupPreset {
	return []MatchupPreset{
		{
			Name:    "Sinner vs Alcaraz",
			Player1: models.PlayerProfile{Name: "Sinner", ServeWinPct: 64, ServeVariability: 3.5, ClutchFactor: 2},
			Player2: models.PlayerProfile{Name: "Alcaraz", ServeWinPct: 63, ServeVariability: 4.5, ClutchFactor: 3},
		},
		{
			Name:    "Sinner vs Djokovic",
			Player1: models.PlayerProfile{Name: "Sinner", ServeWinPct: 62, ServeVariability: 3.5, ClutchFactor: 2},
			Player2: models.PlayerProfile{Name: "Djokovic", ServeWinPct: 63, ServeVariability: 3.0, ClutchFactor: 4},
		},
		{
			Name:    "Alcaraz vs Djokovic",
			Player1: models.PlayerProfile{Name: "Alcaraz", ServeWinPct: 63, ServeVariability: 4.5, ClutchFactor: 3},
			Player2: models.PlayerProfile{Name: "Djokovic", ServeWinPct: 63, ServeVariability: 3.0, ClutchFactor: 4},
		},
	}
}

// ParameterGuides returns the guidance bands shown next to each input.
func ParameterGuides() []ParameterGuide {
	return []ParameterGuide{
		{
			Parameter: "serve_win_pct",
			Typical:   "55-75%",
			Default:   models.DefaultServeWinPct,
			Bands: []ParameterBand{
				{Range: "55-60%", Label: "Weak matchup"},
				{Range: "60-64%", Label: "Below average"},
				{Range: "64-67%", Label: "Average"},
				{Range: "67-70%", Label: "Strong"},
				{Range: "70%+", Label: "Dominant"},
			},
		},
		{
			Parameter: "serve_variability",
			Typical:   "2-6%",
			Default:   models.DefaultServeVariability,
			Bands: []ParameterBand{
				{Range: "2-3%", Label: "Very consistent"},
				{Range: "3-4%", Label: "Consistent"},
				{Range: "4-5%", Label: "Normal"},
				{Range: "5-6%", Label: "Erratic"},
			},
		},
		{
			Parameter: "clutch_factor",
			Typical:   "-3 to +4",
			Default:   models.DefaultClutchFactor,
			Bands: []ParameterBand{
				{Range: "+4", Label: "Elite (Djokovic)"},
				{Range: "+3", Label: "Excellent (Alcaraz)"},
				{Range: "+2", Label: "Very good (Sinner)"},
				{Range: "+1", Label: "Good (Medvedev)"},
				{Range: "0", Label: "Neutral"},
				{Range: "-1/-2", Label: "Weakness"},
			},
		},
	}
}

// Formats returns every accepted match format value with display labels.
func Formats() FormatCatalog {
	return FormatCatalog{
		NumSets: []int{1, 3, 5},
		SetFormats: []FormatOption{
			{Value: string(models.SetFormatTraditional), Label: models.SetFormatTraditional.Label()},
			{Value: string(models.SetFormatFast4), Label: models.SetFormatFast4.Label()},
			{Value: string(models.SetFormatProSet), Label: models.SetFormatProSet.Label()},
			{Value: string(models.SetFormatShortZero), Label: models.SetFormatShortZero.Label()},
			{Value: string(models.SetFormatShortTwo), Label: models.SetFormatShortTwo.Label()},
		},
		TiebreakFormats: []FormatOption{
			{Value: string(models.TiebreakFormatSlam), Label: models.TiebreakFormatSlam.Label()},
			{Value: string(models.TiebreakFormatFiveAll), Label: models.TiebreakFormatFiveAll.Label()},
			{Value: string(models.TiebreakFormatTenAll), Label: models.TiebreakFormatTenAll.Label()},
			{Value: string(models.TiebreakFormatTwelveAll), Label: models.TiebreakFormatTwelveAll.Label()},
		},
		Scoring: []FormatOption{
			{Value: "ad", Label: "Advantage Scoring"},
			{Value: "no_ad", Label: "No-Ad Scoring"},
		},
		Default: models.DefaultMatchFormat(),
	}
}
