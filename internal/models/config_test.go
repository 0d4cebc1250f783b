package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() MatchConfig {
	return MatchConfig{
		Player1:         PlayerProfile{Name: "Sinner", ServeWinPct: 64, ServeVariability: 3.5, ClutchFactor: 2},
		Player2:         PlayerProfile{Name: "Alcaraz", ServeWinPct: 63, ServeVariability: 4.5, ClutchFactor: 3},
		Format:          DefaultMatchFormat(),
		SimulationCount: 500,
	}
}

func TestApplyDefaults_FillsEverything(t *testing.T) {
	var cfg MatchConfig
	cfg.ApplyDefaults(500)

	assert.Equal(t, DefaultPlayerProfile("Player 1"), cfg.Player1)
	assert.Equal(t, DefaultPlayerProfile("Player 2"), cfg.Player2)
	assert.Equal(t, DefaultMatchFormat(), cfg.Format)
	assert.True(t, cfg.Format.AdScoring, "an absent format block defaults to advantage scoring")
	assert.Equal(t, 500, cfg.SimulationCount)
	assert.NoError(t, cfg.Validate(), "a fully defaulted config is runnable as is")
}

func TestApplyDefaults_NamedProfileKeepsItsNumbers(t *testing.T) {
	cfg := MatchConfig{Player1: PlayerProfile{Name: "Bob", ServeWinPct: 70, ServeVariability: 3}}
	cfg.ApplyDefaults(500)

	assert.Equal(t, 70.0, cfg.Player1.ServeWinPct)
	assert.Equal(t, DefaultPlayerProfile("Player 2"), cfg.Player2)
}

func TestApplyDefaults_PartialFormatKeepsScoringChoice(t *testing.T) {
	cfg := MatchConfig{Format: MatchFormat{NumSets: 5}}
	cfg.ApplyDefaults(100)

	assert.Equal(t, 5, cfg.Format.NumSets)
	assert.Equal(t, SetFormatTraditional, cfg.Format.SetFormat)
	assert.Equal(t, TiebreakFormatSlam, cfg.Format.TiebreakFormat)
	assert.False(t, cfg.Format.AdScoring, "a partial block keeps its explicit no-ad choice")
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := validTestConfig()
	cfg.Format.SetFormat = SetFormatFast4
	cfg.ApplyDefaults(500)

	assert.Equal(t, "Sinner", cfg.Player1.Name)
	assert.Equal(t, SetFormatFast4, cfg.Format.SetFormat)
	assert.Equal(t, 500, cfg.SimulationCount)
}

func TestValidate_AcceptsValidConfig(t *testing.T) {
	cfg := validTestConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*MatchConfig)
		field  string
	}{
		{"zero_simulations", func(c *MatchConfig) { c.SimulationCount = 0 }, "simulation_count"},
		{"negative_simulations", func(c *MatchConfig) { c.SimulationCount = -5 }, "simulation_count"},
		{"negative_workers", func(c *MatchConfig) { c.Workers = -1 }, "workers"},
		{"bad_num_sets", func(c *MatchConfig) { c.Format.NumSets = 4 }, "format.num_sets"},
		{"serve_pct_too_high", func(c *MatchConfig) { c.Player1.ServeWinPct = 101 }, "player1.serve_win_pct"},
		{"serve_pct_negative", func(c *MatchConfig) { c.Player2.ServeWinPct = -1 }, "player2.serve_win_pct"},
		{"variability_too_low", func(c *MatchConfig) { c.Player1.ServeVariability = 0.5 }, "player1.serve_variability"},
		{"variability_too_high", func(c *MatchConfig) { c.Player2.ServeVariability = 9 }, "player2.serve_variability"},
		{"clutch_out_of_range", func(c *MatchConfig) { c.Player1.ClutchFactor = 6 }, "player1.clutch_factor"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validTestConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.field)

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tc.field, cfgErr.Field)
		})
	}
}

func TestPlayerName_And_Profile(t *testing.T) {
	cfg := validTestConfig()
	assert.Equal(t, "Sinner", cfg.PlayerName(Player1))
	assert.Equal(t, "Alcaraz", cfg.PlayerName(Player2))
	assert.Equal(t, cfg.Player1, cfg.Profile(Player1))
	assert.Equal(t, cfg.Player2, cfg.Profile(Player2))
}
