package protocol

import (
	"fmt"

	"forest-wars/internal/game"
)

// ==================== Operation Payloads ====================

// CellPayload addresses a cell for taps and double taps.
type CellPayload struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// ==================== Notification Payloads ====================

// CellUpdatedPayload carries the new value of a cell.
type CellUpdatedPayload struct {
	Row           int    `json:"row"`
	Column        int    `json:"column"`
	Faction       string `json:"faction"`
	Units         int    `json:"units"`
	BuildingLevel int    `json:"building_level"`
}

// SelectionChangedPayload reports a selection flip.
type SelectionChangedPayload struct {
	Row      int  `json:"row"`
	Column   int  `json:"column"`
	Selected bool `json:"selected"`
}

// SelectedCountPayload reports the number of selected cells.
type SelectedCountPayload struct {
	Count int `json:"count"`
}

// TurnChangedPayload reports whose turn it is.
type TurnChangedPayload struct {
	IsPlayerTurn bool `json:"is_player_turn"`
}

// CountdownTickPayload reports the remaining turn time.
type CountdownTickPayload struct {
	RemainingMs int64  `json:"remaining_ms"`
	Seconds     int    `json:"seconds"`
	Emphasis    string `json:"emphasis"`
}

// FromEffect converts an engine effect into a notification message.
func FromEffect(e game.Effect) (*Message, error) {
	switch e.Type {
	case game.EffectCellUpdated:
		return NewMessage(TypeCellUpdated, CellUpdatedPayload{
			Row:           e.Row,
			Column:        e.Column,
			Faction:       e.Cell.Faction.String(),
			Units:         e.Cell.Units,
			BuildingLevel: e.Cell.BuildingLevel,
		})
	case game.EffectSelectionChanged:
		return NewMessage(TypeCellSelectionChanged, SelectionChangedPayload{
			Row:      e.Row,
			Column:   e.Column,
			Selected: e.Selected,
		})
	case game.EffectFieldReset:
		return NewMessage(TypeFieldReset, nil)
	case game.EffectSelectedCountChanged:
		return NewMessage(TypeSelectedCountChanged, SelectedCountPayload{Count: e.Count})
	case game.EffectMovementStarted:
		return NewMessage(TypeUnitMovementStarted, CellPayload{Row: e.Row, Column: e.Column})
	case game.EffectMovementCompleted:
		return NewMessage(TypeUnitMovementComplete, nil)
	case game.EffectBuildingUpgrade:
		return NewMessage(TypeBuildingUpgrade, CellPayload{Row: e.Row, Column: e.Column})
	case game.EffectTurnChanged:
		return NewMessage(TypeTurnChanged, TurnChangedPayload{IsPlayerTurn: e.IsPlayerTurn})
	case game.EffectCountdownTick:
		return NewMessage(TypeCountdownTick, CountdownTickPayload{
			RemainingMs: e.Remaining.Milliseconds(),
			Seconds:     game.DisplaySeconds(e.Remaining),
			Emphasis:    e.Emphasis.String(),
		})
	case game.EffectCountdownExpired:
		return NewMessage(TypeCountdownExpired, nil)
	default:
		return nil, fmt.Errorf("unknown effect type %q", e.Type)
	}
}
