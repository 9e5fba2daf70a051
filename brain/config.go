package brain

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("brain: invalid config")

// Config is the spider's tuning. It is fixed for the lifetime of a
// controller.
type Config struct {
	DetectionRange        float64
	AttackRange           float64
	BaseSpeed             float64
	PatrolSpeedMultiplier float64
	ChaseSpeedMultiplier  float64

	// PatrolRadius bounds how far from its current position a patrol
	// destination may be.
	PatrolRadius float64
	// ArriveDistance is how close counts as "reached" for patrol
	// destinations and the last known target position.
	ArriveDistance float64
	// NavSampleRadius is the search radius used when snapping jittered
	// search and flank points onto the walkable surface.
	NavSampleRadius float64

	// Per-tick probabilities.
	FlankChance        float64
	ListenChance       float64
	AmbientSenseChance float64
	PauseChance        float64

	// FlankCooldown is how long a chosen flank point is kept before the
	// spider may pick another one.
	FlankCooldown float64

	Seed int64
}

func DefaultConfig() Config {
	return Config{
		DetectionRange:        10,
		AttackRange:           1.5,
		BaseSpeed:             3.5,
		PatrolSpeedMultiplier: 0.6,
		ChaseSpeedMultiplier:  1.2,
		PatrolRadius:          30,
		ArriveDistance:        2,
		NavSampleRadius:       3,
		FlankChance:           0.3,
		ListenChance:          0.02,
		AmbientSenseChance:    0.05,
		PauseChance:           0.01,
		FlankCooldown:         2,
	}
}

// Validate reports the first problem with c, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"detection range", c.DetectionRange},
		{"attack range", c.AttackRange},
		{"base speed", c.BaseSpeed},
		{"patrol speed multiplier", c.PatrolSpeedMultiplier},
		{"chase speed multiplier", c.ChaseSpeedMultiplier},
		{"patrol radius", c.PatrolRadius},
		{"arrive distance", c.ArriveDistance},
		{"nav sample radius", c.NavSampleRadius},
		{"flank cooldown", c.FlankCooldown},
	}
	for _, p := range positive {
		if !(p.value > 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.value)
		}
	}
	if c.AttackRange > c.DetectionRange {
		return fmt.Errorf("%w: attack range %v exceeds detection range %v", ErrInvalidConfig, c.AttackRange, c.DetectionRange)
	}

	chances := []struct {
		name  string
		value float64
	}{
		{"flank chance", c.FlankChance},
		{"listen chance", c.ListenChance},
		{"ambient sense chance", c.AmbientSenseChance},
		{"pause chance", c.PauseChance},
	}
	for _, p := range chances {
		if !(p.value >= 0 && p.value <= 1) {
			return fmt.Errorf("%w: %s must be within [0,1], got %v", ErrInvalidConfig, p.name, p.value)
		}
	}
	return nil
}
