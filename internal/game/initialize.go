package game

import "sort"

// InitializeGameField populates every cell of a new field.
func (g *GameState) InitializeGameField() []Effect {
	effects := g.generateField()
	g.initialized = true
	return effects
}

// ResetField clears the selection and regenerates the whole field with the
// same layout rule. The turn returns to the player.
func (g *GameState) ResetField() []Effect {
	effects := g.deselectAll()

	effects = append(effects, g.generateField()...)
	effects = append(effects, Effect{Type: EffectFieldReset})
	effects = append(effects, selectedCountChanged(0))

	if !g.IsPlayerTurn {
		g.IsPlayerTurn = true
		effects = append(effects, Effect{Type: EffectTurnChanged, IsPlayerTurn: true})
	}

	g.initialized = true
	return effects
}

// generateField writes a fresh layout into every cell.
func (g *GameState) generateField() []Effect {
	g.anchor = nil

	buildings := make(map[Coord]Faction)
	for _, c := range StartingPositions(g.Rules.Width, g.Rules.Height, g.Rules.StartBuildingCount, Enemy) {
		buildings[c] = Enemy
	}
	for _, c := range StartingPositions(g.Rules.Width, g.Rules.Height, g.Rules.StartBuildingCount, Ally) {
		buildings[c] = Ally
	}

	effects := make([]Effect, 0, g.Rules.Width*g.Rules.Height)
	for row := 0; row < g.Rules.Height; row++ {
		for column := 0; column < g.Rules.Width; column++ {
			var cell Cell
			if f, ok := buildings[Coord{Row: row, Column: column}]; ok {
				cell = Cell{Faction: f, Units: g.Rules.StartUnits, BuildingLevel: 1}
			} else {
				cell = Cell{Faction: Neutral, Units: g.randomNeutralUnits()}
			}
			g.cells[row][column] = cell
			effects = append(effects, cellUpdated(row, column, cell))
		}
	}
	return effects
}

// randomNeutralUnits returns a unit count in the configured neutral range.
func (g *GameState) randomNeutralUnits() int {
	span := g.Rules.NeutralMaxUnits - g.Rules.NeutralMinUnits + 1
	return g.Rules.NeutralMinUnits + g.rng.Intn(span)
}

// StartingPositions returns the starting building cells of a faction.
// Enemy fills rows from the top edge inward, Ally from the bottom edge;
// each row is filled with centered columns until count cells are placed.
func StartingPositions(width, height, count int, f Faction) []Coord {
	positions := make([]Coord, 0, count)
	remaining := count
	for i := 0; remaining > 0 && i < height; i++ {
		row := i
		if f == Ally {
			row = height - 1 - i
		}
		n := remaining
		if n > width {
			n = width
		}
		for _, column := range CenteredColumns(n, width) {
			positions = append(positions, Coord{Row: row, Column: column})
		}
		remaining -= n
	}
	return positions
}

// CenteredColumns picks count columns around the middle of a row of the
// given width. Starting from the center it alternately extends left and
// right, skipping columns off the row. The result is sorted ascending.
func CenteredColumns(count, width int) []int {
	if count <= 0 || width <= 0 {
		return nil
	}
	if count > width {
		count = width
	}

	center := width / 2
	columns := []int{center}
	for offset := 1; len(columns) < count; offset++ {
		if left := center - offset; left >= 0 {
			columns = append(columns, left)
		}
		if len(columns) >= count {
			break
		}
		if right := center + offset; right < width {
			columns = append(columns, right)
		}
	}

	sort.Ints(columns)
	return columns
}
