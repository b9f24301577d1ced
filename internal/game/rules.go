package game

import (
	"fmt"
	"time"
)

// Rules contains the configurable game constants.
type Rules struct {
	Width              int
	Height             int
	StartBuildingCount int
	StartUnits         int
	NeutralMinUnits    int
	NeutralMaxUnits    int

	// UpgradeCosts[0] upgrades level 0 to 1, UpgradeCosts[1] level 1 to 2.
	UpgradeCosts [2]int
	// IncomeRates[0] is paid by level 1 buildings, IncomeRates[1] by level 2.
	IncomeRates [2]int

	TurnDuration time.Duration
	TickInterval time.Duration
	SettleDelay  time.Duration
	MidThreshold float64
	LowThreshold float64
}

// DefaultRules returns the reference rule set (5x10 field).
func DefaultRules() Rules {
	return Rules{
		Width:              5,
		Height:             10,
		StartBuildingCount: 3,
		StartUnits:         10,
		NeutralMinUnits:    1,
		NeutralMaxUnits:    99,
		UpgradeCosts:       [2]int{15, 30},
		IncomeRates:        [2]int{2, 5},
		TurnDuration:       30 * time.Second,
		TickInterval:       100 * time.Millisecond,
		SettleDelay:        500 * time.Millisecond,
		MidThreshold:       0.5,
		LowThreshold:       0.2,
	}
}

// Validate checks that the rules describe a playable game.
func (r Rules) Validate() error {
	switch {
	case r.Width < 1 || r.Height < 2:
		return fmt.Errorf("%w: field must be at least 1x2, got %dx%d", ErrInvalidRules, r.Width, r.Height)
	case r.StartBuildingCount < 1:
		return fmt.Errorf("%w: start building count must be positive", ErrInvalidRules)
	case r.StartBuildingCount > r.Width*(r.Height/2):
		return fmt.Errorf("%w: %d start buildings do not fit a %dx%d field", ErrInvalidRules, r.StartBuildingCount, r.Width, r.Height)
	case r.StartUnits < 0:
		return fmt.Errorf("%w: start units must not be negative", ErrInvalidRules)
	case r.NeutralMinUnits < 0 || r.NeutralMaxUnits < r.NeutralMinUnits:
		return fmt.Errorf("%w: neutral unit range [%d,%d] is invalid", ErrInvalidRules, r.NeutralMinUnits, r.NeutralMaxUnits)
	case r.UpgradeCosts[0] < 0 || r.UpgradeCosts[1] < 0:
		return fmt.Errorf("%w: upgrade costs must not be negative", ErrInvalidRules)
	case r.IncomeRates[0] < 0 || r.IncomeRates[1] < 0:
		return fmt.Errorf("%w: income rates must not be negative", ErrInvalidRules)
	case r.TurnDuration <= 0 || r.TickInterval <= 0:
		return fmt.Errorf("%w: turn duration and tick interval must be positive", ErrInvalidRules)
	case r.SettleDelay < 0:
		return fmt.Errorf("%w: settle delay must not be negative", ErrInvalidRules)
	case r.LowThreshold < 0 || r.MidThreshold < r.LowThreshold || r.MidThreshold > 1:
		return fmt.Errorf("%w: thresholds must satisfy 0 <= low <= mid <= 1", ErrInvalidRules)
	}
	return nil
}
