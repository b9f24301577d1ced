// Package game contains the core game logic for Forest Wars.
// It is single-threaded: callers serialize access (see internal/session).
package game

import "math/rand"

// Faction is the ownership tag of a cell.
type Faction int

const (
	Neutral Faction = iota
	Ally
	Enemy
)

// String returns the faction name.
func (f Faction) String() string {
	switch f {
	case Ally:
		return "ally"
	case Enemy:
		return "enemy"
	default:
		return "neutral"
	}
}

// Opponent returns the other playing faction. Neutral has no opponent.
func (f Faction) Opponent() Faction {
	switch f {
	case Ally:
		return Enemy
	case Enemy:
		return Ally
	default:
		return Neutral
	}
}

// MaxBuildingLevel is the highest level a building can reach.
const MaxBuildingLevel = 2

// Cell is a single square of the game field.
type Cell struct {
	Faction       Faction `json:"faction"`
	Units         int     `json:"units"`
	BuildingLevel int     `json:"buildingLevel"`
	Selected      bool    `json:"selected"`
}

// normalized returns the cell with units and building level clamped.
func (c Cell) normalized() Cell {
	if c.Units < 0 {
		c.Units = 0
	}
	if c.BuildingLevel < 0 {
		c.BuildingLevel = 0
	}
	if c.BuildingLevel > MaxBuildingLevel {
		c.BuildingLevel = MaxBuildingLevel
	}
	return c
}

// Coord addresses a cell by row and column.
type Coord struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// GameState is the complete state of one game session.
type GameState struct {
	Rules        Rules
	IsPlayerTurn bool

	cells       [][]Cell
	anchor      *Coord
	initialized bool
	rng         *rand.Rand
}

// NewGame creates an empty game with the given rules. The field stays
// unpopulated until InitializeGameField is called.
func NewGame(rules Rules, seed int64) (*GameState, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	g := &GameState{
		Rules:        rules,
		IsPlayerTurn: true,
		rng:          rand.New(rand.NewSource(seed)),
	}
	g.cells = make([][]Cell, rules.Height)
	for row := range g.cells {
		g.cells[row] = make([]Cell, rules.Width)
	}
	return g, nil
}

// ActiveFaction returns the faction whose turn it is.
func (g *GameState) ActiveFaction() Faction {
	if g.IsPlayerTurn {
		return Ally
	}
	return Enemy
}

// Initialized reports whether the field has been populated.
func (g *GameState) Initialized() bool {
	return g.initialized
}

// Snapshot is a read-only copy of the game state.
type Snapshot struct {
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	IsPlayerTurn bool     `json:"isPlayerTurn"`
	Anchor       *Coord   `json:"anchor,omitempty"`
	Cells        [][]Cell `json:"cells"`
}

// Snapshot copies the current field.
func (g *GameState) Snapshot() Snapshot {
	s := Snapshot{
		Width:        g.Rules.Width,
		Height:       g.Rules.Height,
		IsPlayerTurn: g.IsPlayerTurn,
		Cells:        make([][]Cell, len(g.cells)),
	}
	if g.anchor != nil {
		a := *g.anchor
		s.Anchor = &a
	}
	for row := range g.cells {
		s.Cells[row] = append([]Cell(nil), g.cells[row]...)
	}
	return s
}
