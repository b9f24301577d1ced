package game

// InBounds reports whether (row, column) lies on the field.
func (g *GameState) InBounds(row, column int) bool {
	return row >= 0 && row < g.Rules.Height && column >= 0 && column < g.Rules.Width
}

// Cell returns the cell at (row, column). The second result is false for
// out-of-bounds coordinates.
func (g *GameState) Cell(row, column int) (Cell, bool) {
	if !g.InBounds(row, column) {
		return Cell{}, false
	}
	return g.cells[row][column], true
}

// UpdateCell replaces the cell at (row, column), clamping units and
// building level. Selection is owned by the selection engine, so the
// cell keeps its current Selected flag. Out-of-bounds coordinates are
// ignored.
func (g *GameState) UpdateCell(row, column int, c Cell) []Effect {
	if !g.InBounds(row, column) {
		return nil
	}
	c = c.normalized()
	c.Selected = g.cells[row][column].Selected
	g.cells[row][column] = c
	return []Effect{cellUpdated(row, column, c)}
}

// IsCellSelected reports whether the cell at (row, column) is selected.
func (g *GameState) IsCellSelected(row, column int) bool {
	c, ok := g.Cell(row, column)
	return ok && c.Selected
}

// Neighbors returns the orthogonal neighbors of (row, column) that lie on
// the field, in up, down, left, right order.
func (g *GameState) Neighbors(row, column int) []Coord {
	candidates := [4]Coord{
		{Row: row - 1, Column: column},
		{Row: row + 1, Column: column},
		{Row: row, Column: column - 1},
		{Row: row, Column: column + 1},
	}
	neighbors := make([]Coord, 0, 4)
	for _, c := range candidates {
		if g.InBounds(c.Row, c.Column) {
			neighbors = append(neighbors, c)
		}
	}
	return neighbors
}

// IsAdjacent reports whether two coordinates are orthogonal neighbors.
func IsAdjacent(a, b Coord) bool {
	dr := a.Row - b.Row
	dc := a.Column - b.Column
	return (dr == 0 && (dc == 1 || dc == -1)) || (dc == 0 && (dr == 1 || dr == -1))
}

// TotalUnits returns the sum of units over all cells of a faction.
func (g *GameState) TotalUnits(f Faction) int {
	total := 0
	g.forEach(func(_, _ int, c *Cell) {
		if c.Faction == f {
			total += c.Units
		}
	})
	return total
}

// TotalBuildings returns the number of cells of a faction that carry a
// building (level above zero).
func (g *GameState) TotalBuildings(f Faction) int {
	count := 0
	g.forEach(func(_, _ int, c *Cell) {
		if c.Faction == f && c.BuildingLevel > 0 {
			count++
		}
	})
	return count
}

// SelectedCount returns the number of selected cells.
func (g *GameState) SelectedCount() int {
	count := 0
	g.forEach(func(_, _ int, c *Cell) {
		if c.Selected {
			count++
		}
	})
	return count
}

// CellsOf returns the coordinates of every cell owned by a faction in
// row-major order.
func (g *GameState) CellsOf(f Faction) []Coord {
	coords := make([]Coord, 0)
	g.forEach(func(row, column int, c *Cell) {
		if c.Faction == f {
			coords = append(coords, Coord{Row: row, Column: column})
		}
	})
	return coords
}

// forEach visits every cell in row-major order.
func (g *GameState) forEach(fn func(row, column int, c *Cell)) {
	for row := range g.cells {
		for column := range g.cells[row] {
			fn(row, column, &g.cells[row][column])
		}
	}
}
