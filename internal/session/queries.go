package session

import (
	"time"

	"forest-wars/internal/game"
)

// Cell returns the cell at (row, column); false when out of bounds.
func (s *Session) Cell(row, column int) (game.Cell, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Cell(row, column)
}

// TotalUnits returns the units held by a faction.
func (s *Session) TotalUnits(f game.Faction) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TotalUnits(f)
}

// TotalBuildings returns the number of buildings held by a faction.
func (s *Session) TotalBuildings(f game.Faction) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TotalBuildings(f)
}

// IsCellSelected reports whether a cell is selected.
func (s *Session) IsCellSelected(row, column int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsCellSelected(row, column)
}

// SelectedCount returns the number of selected cells.
func (s *Session) SelectedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.SelectedCount()
}

// IsUpgradeAvailable reports whether the building at (row, column) can be
// upgraded now.
func (s *Session) IsUpgradeAvailable(row, column int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsUpgradeAvailable(row, column)
}

// IsPlayerTurn reports whether the Ally faction is playing.
func (s *Session) IsPlayerTurn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsPlayerTurn
}

// Remaining returns the time left in the current turn.
func (s *Session) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countdown.Remaining(s.clock.Now())
}

// Rules returns the rules the session runs with.
func (s *Session) Rules() game.Rules {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Rules
}

// Snapshot returns a copy of the whole field.
func (s *Session) Snapshot() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot()
}
