package game

import "time"

// EffectType identifies a notification produced by the engine.
type EffectType string

const (
	EffectCellUpdated          EffectType = "cell_updated"
	EffectSelectionChanged     EffectType = "cell_selection_changed"
	EffectFieldReset           EffectType = "field_reset"
	EffectSelectedCountChanged EffectType = "selected_count_changed"
	EffectMovementStarted      EffectType = "unit_movement_started"
	EffectMovementCompleted    EffectType = "unit_movement_completed"
	EffectBuildingUpgrade      EffectType = "building_upgrade_effect"
	EffectTurnChanged          EffectType = "turn_changed"
	EffectCountdownTick        EffectType = "countdown_tick"
	EffectCountdownExpired     EffectType = "countdown_expired"
)

// Emphasis is the display emphasis of the countdown. It never affects rules.
type Emphasis int

const (
	EmphasisNormal Emphasis = iota
	EmphasisMid
	EmphasisLow
)

// String returns the emphasis name.
func (e Emphasis) String() string {
	switch e {
	case EmphasisMid:
		return "mid"
	case EmphasisLow:
		return "low"
	default:
		return "normal"
	}
}

// Effect is one notification for the presentation layer. Only the fields
// relevant to Type are set.
type Effect struct {
	Type         EffectType
	Row          int
	Column       int
	Cell         Cell
	Selected     bool
	Count        int
	IsPlayerTurn bool
	Remaining    time.Duration
	Emphasis     Emphasis
}

func cellUpdated(row, column int, c Cell) Effect {
	return Effect{Type: EffectCellUpdated, Row: row, Column: column, Cell: c}
}

func selectionChanged(row, column int, selected bool) Effect {
	return Effect{Type: EffectSelectionChanged, Row: row, Column: column, Selected: selected}
}

func selectedCountChanged(count int) Effect {
	return Effect{Type: EffectSelectedCountChanged, Count: count}
}

// MovementCompleted is emitted by the session after the settle delay.
func MovementCompleted() Effect {
	return Effect{Type: EffectMovementCompleted}
}

// CountdownTick reports the remaining time of the current turn.
func CountdownTick(remaining time.Duration, emphasis Emphasis) Effect {
	return Effect{Type: EffectCountdownTick, Remaining: remaining, Emphasis: emphasis}
}

// CountdownExpired reports that the turn timer ran out.
func CountdownExpired() Effect {
	return Effect{Type: EffectCountdownExpired}
}
