package game

// Anchor returns the cell acting as the source of a pending move.
func (g *GameState) Anchor() (Coord, bool) {
	if g.anchor == nil {
		return Coord{}, false
	}
	return *g.anchor, true
}

// CanTarget reports whether a move from anchor into target is legal by the
// targeting rule: own cells can always be reinforced, foreign and neutral
// cells only when the anchor has at least as many units.
func CanTarget(anchor, target Cell) bool {
	return target.Faction == anchor.Faction || target.Units <= anchor.Units
}

// CellTapped handles a tap on (row, column).
//
// Without a selection the tapped cell becomes the anchor if it belongs to
// the active faction and has units. With a selection, tapping a selected
// neighbor moves the anchor's units there; any other tap cancels.
func (g *GameState) CellTapped(row, column int) ([]Effect, error) {
	if !g.initialized {
		return nil, ErrNotInitialized
	}
	if !g.InBounds(row, column) {
		return nil, ErrOutOfBounds
	}

	if g.anchor == nil {
		return g.selectAnchor(row, column)
	}

	anchor := *g.anchor
	tapped := Coord{Row: row, Column: column}
	if tapped == anchor || !g.cells[row][column].Selected {
		return g.DeselectAll(), nil
	}

	source := g.cells[anchor.Row][anchor.Column]
	target := g.cells[row][column]
	if !IsAdjacent(anchor, tapped) || source.Faction == Neutral || !CanTarget(source, target) {
		return g.DeselectAll(), nil
	}

	return g.MoveUnits(anchor, tapped), nil
}

// selectAnchor establishes a new anchor at (row, column) and selects the
// anchor together with every legal neighbor.
func (g *GameState) selectAnchor(row, column int) ([]Effect, error) {
	cell := g.cells[row][column]
	switch {
	case cell.Faction == Neutral:
		return nil, ErrNeutralCell
	case cell.Faction != g.ActiveFaction():
		return nil, ErrNotYourTurn
	case cell.Units == 0:
		return nil, ErrNoUnits
	}

	g.anchor = &Coord{Row: row, Column: column}

	effects := []Effect{g.setSelected(row, column, true)}
	for _, n := range g.Neighbors(row, column) {
		if CanTarget(cell, g.cells[n.Row][n.Column]) {
			effects = append(effects, g.setSelected(n.Row, n.Column, true))
		}
	}
	effects = append(effects, selectedCountChanged(g.SelectedCount()))
	return effects, nil
}

// DeselectAll clears the anchor and every selected cell.
func (g *GameState) DeselectAll() []Effect {
	effects := g.deselectAll()
	return append(effects, selectedCountChanged(0))
}

// deselectAll clears selection without the aggregate count notification.
func (g *GameState) deselectAll() []Effect {
	g.anchor = nil
	var effects []Effect
	g.forEach(func(row, column int, c *Cell) {
		if c.Selected {
			c.Selected = false
			effects = append(effects, selectionChanged(row, column, false))
		}
	})
	return effects
}

func (g *GameState) setSelected(row, column int, selected bool) Effect {
	g.cells[row][column].Selected = selected
	return selectionChanged(row, column, selected)
}
