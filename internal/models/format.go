package models

// SetFormat selects the game target and tiebreak trigger for a set.
type SetFormat string

const (
	SetFormatTraditional SetFormat = "traditional" // to 6, tiebreak at 6-6
	SetFormatFast4       SetFormat = "fast4"       // to 4, tiebreak at 3-3
	SetFormatProSet      SetFormat = "proset"      // to 8, tiebreak at 8-8
	SetFormatShortZero   SetFormat = "short_zero"  // to 4 from 0-0, tiebreak at 3-3
	SetFormatShortTwo    SetFormat = "short_two"   // to 6 from 2-2, tiebreak at 5-5
)

func (f SetFormat) IsValid() bool {
	switch f {
	case SetFormatTraditional, SetFormatFast4, SetFormatProSet, SetFormatShortZero, SetFormatShortTwo:
		return true
	}
	return false
}

// GamesToWin returns the game count that takes the set (with a 2-game margin).
func (f SetFormat) GamesToWin() int {
	switch f {
	case SetFormatFast4, SetFormatShortZero:
		return 4
	case SetFormatProSet:
		return 8
	default:
		return 6
	}
}

// Label returns the display name used in exports and the reference catalog.
func (f SetFormat) Label() string {
	switch f {
	case SetFormatFast4:
		return "Fast4 (to 4)"
	case SetFormatProSet:
		return "Pro Set (to 8)"
	case SetFormatShortZero:
		return "Short Set from 0-0 (to 4)"
	case SetFormatShortTwo:
		return "Short Set from 2-2 (to 6)"
	default:
		return "Traditional (to 6)"
	}
}

// TiebreakTrigger returns the game score at which a tiebreak is played.
func (f SetFormat) TiebreakTrigger() int {
	switch f {
	case SetFormatFast4, SetFormatShortZero:
		return 3
	case SetFormatProSet:
		return 8
	case SetFormatShortTwo:
		return 5
	default:
		return 6
	}
}

// StartingGames returns the head-start game count credited to both sides.
func (f SetFormat) StartingGames() int {
	if f == SetFormatShortTwo {
		return 2
	}
	return 0
}

// TiebreakFormat selects the point target family for tiebreaks.
type TiebreakFormat string

const (
	TiebreakFormatSlam      TiebreakFormat = "slam"       // 7 points, 10 in a deciding set
	TiebreakFormatFiveAll   TiebreakFormat = "five_all"   // 5 points every set
	TiebreakFormatTenAll    TiebreakFormat = "ten_all"    // 10 points every set
	TiebreakFormatTwelveAll TiebreakFormat = "twelve_all" // 12 points every set
)

func (f TiebreakFormat) IsValid() bool {
	switch f {
	case TiebreakFormatSlam, TiebreakFormatFiveAll, TiebreakFormatTenAll, TiebreakFormatTwelveAll:
		return true
	}
	return false
}

// Label returns the display name used in exports and the reference catalog.
func (f TiebreakFormat) Label() string {
	switch f {
	case TiebreakFormatFiveAll:
		return "5 Points All Sets"
	case TiebreakFormatTenAll:
		return "10 Points All Sets"
	case TiebreakFormatTwelveAll:
		return "12 Points All Sets"
	default:
		return "Slam (7pt regular, 10pt final)"
	}
}

// TiebreakSpec is the resolved rule pair for a single tiebreak: the point
// target and whether a two-point margin is required to close it out. Each
// format configures the pair independently; all built-ins keep the margin.
type TiebreakSpec struct {
	Target   int  `json:"target"`
	WinByTwo bool `json:"win_by_two"`
}

// MatchFormat is the complete format configuration for a match, supplied
// once per run and immutable for its duration.
type MatchFormat struct {
	NumSets        int            `json:"num_sets"`
	SetFormat      SetFormat      `json:"set_format"`
	TiebreakFormat TiebreakFormat `json:"tiebreak_format"`
	AdScoring      bool           `json:"ad_scoring"`
}

// DefaultMatchFormat is a best-of-3 traditional match with slam tiebreaks
// and advantage scoring.
func DefaultMatchFormat() MatchFormat {
	return MatchFormat{
		NumSets:        3,
		SetFormat:      SetFormatTraditional,
		TiebreakFormat: TiebreakFormatSlam,
		AdScoring:      true,
	}
}

// SetsToWin returns the strict majority of the configured best-of-N.
func (f MatchFormat) SetsToWin() int {
	return (f.NumSets + 1) / 2
}

// TiebreakSpec resolves the tiebreak rules for a set; the slam format plays
// a 10-pointer when the set is the last one possible.
func (f MatchFormat) TiebreakSpec(finalSet bool) TiebreakSpec {
	switch f.TiebreakFormat {
	case TiebreakFormatFiveAll:
		return TiebreakSpec{Target: 5, WinByTwo: true}
	case TiebreakFormatTenAll:
		return TiebreakSpec{Target: 10, WinByTwo: true}
	case TiebreakFormatTwelveAll:
		return TiebreakSpec{Target: 12, WinByTwo: true}
	default:
		if finalSet {
			return TiebreakSpec{Target: 10, WinByTwo: true}
		}
		return TiebreakSpec{Target: 7, WinByTwo: true}
	}
}

// Describe renders the full format as one display line, e.g.
// "Best of 3 Sets, Traditional (to 6), Slam (7pt regular, 10pt final), Advantage Scoring".
func (f MatchFormat) Describe() string {
	length := "Single Set"
	switch f.NumSets {
	case 3:
		length = "Best of 3 Sets"
	case 5:
		length = "Best of 5 Sets"
	}
	scoring := "Advantage Scoring"
	if !f.AdScoring {
		scoring = "No-Ad Scoring"
	}
	return length + ", " + f.SetFormat.Label() + ", " + f.TiebreakFormat.Label() + ", " + scoring
}

func (f MatchFormat) Validate() error {
	if f.NumSets != 1 && f.NumSets != 3 && f.NumSets != 5 {
		return NewConfigError("format.num_sets", "must be 1, 3, or 5")
	}
	if !f.SetFormat.IsValid() {
		return NewConfigError("format.set_format", "unrecognized value "+string(f.SetFormat))
	}
	if !f.TiebreakFormat.IsValid() {
		return NewConfigError("format.tiebreak_format", "unrecognized value "+string(f.TiebreakFormat))
	}
	return nil
}
