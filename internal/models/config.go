package models

// MatchConfig is the sole input to the simulation engine: the two player
// profiles, the match format, and the requested simulation count. Seed is
// optional; when set, match i draws from a generator seeded with seed+i so a
// run reproduces exactly. Workers caps the simulation worker pool (0 lets
// the runner decide).
type MatchConfig struct {
	Player1         PlayerProfile `json:"player1"`
	Player2         PlayerProfile `json:"player2"`
	Format          MatchFormat   `json:"format"`
	SimulationCount int           `json:"simulation_count"`
	Seed            *int64        `json:"seed,omitempty"`
	Workers         int           `json:"workers,omitempty"`
}

// ApplyDefaults fills the fields a caller may omit. An entirely absent
// player block gets the average-baseline profile, and an entirely absent
// format block gets the standard best-of-3 advantage default; partial blocks
// keep their explicit values, including an explicit no-ad choice.
func (c *MatchConfig) ApplyDefaults(defaultSimulations int) {
	if c.Player1 == (PlayerProfile{}) {
		c.Player1 = DefaultPlayerProfile("Player 1")
	} else if c.Player1.Name == "" {
		c.Player1.Name = "Player 1"
	}
	if c.Player2 == (PlayerProfile{}) {
		c.Player2 = DefaultPlayerProfile("Player 2")
	} else if c.Player2.Name == "" {
		c.Player2.Name = "Player 2"
	}
	if c.Format == (MatchFormat{}) {
		c.Format = DefaultMatchFormat()
	} else {
		if c.Format.NumSets == 0 {
			c.Format.NumSets = 3
		}
		if c.Format.SetFormat == "" {
			c.Format.SetFormat = SetFormatTraditional
		}
		if c.Format.TiebreakFormat == "" {
			c.Format.TiebreakFormat = TiebreakFormatSlam
		}
	}
	if c.SimulationCount == 0 {
		c.SimulationCount = defaultSimulations
	}
}

// Validate checks the caller contract and returns a ConfigError on the first
// violation. It never mutates the config.
func (c *MatchConfig) Validate() error {
	if c.SimulationCount <= 0 {
		return NewConfigError("simulation_count", "must be positive")
	}
	if c.Workers < 0 {
		return NewConfigError("workers", "must not be negative")
	}
	if err := c.Format.Validate(); err != nil {
		return err
	}
	if err := c.Player1.Validate("player1"); err != nil {
		return err
	}
	if err := c.Player2.Validate("player2"); err != nil {
		return err
	}
	return nil
}

// PlayerName returns the display name for a side.
func (c *MatchConfig) PlayerName(p Player) string {
	if p == Player1 {
		return c.Player1.Name
	}
	return c.Player2.Name
}

// Profile returns the profile for a side.
func (c *MatchConfig) Profile(p Player) PlayerProfile {
	if p == Player1 {
		return c.Player1
	}
	return c.Player2
}
