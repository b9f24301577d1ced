package game

// MovementResult describes the outcome of moving units into a cell.
type MovementResult struct {
	Source        Cell
	Target        Cell
	Reinforced    bool // same-faction move
	PreviousOwner Faction
}

// Resolve computes the cells after moving every unit of source into target.
//
// Same-faction moves add up. Moves into foreign or neutral cells leave the
// absolute difference of the two forces: 10 into 4 leaves 6, 3 into 10
// leaves 7. The target always takes the source's faction and keeps its
// building; the source is emptied but stays owned.
// A neutral source cannot move and both cells are returned unchanged.
func Resolve(source, target Cell) MovementResult {
	result := MovementResult{Source: source, Target: target, PreviousOwner: target.Faction}
	if source.Faction == Neutral {
		return result
	}

	if source.Faction == target.Faction {
		result.Reinforced = true
		result.Target.Units = source.Units + target.Units
	} else {
		result.Target.Units = source.Units - target.Units
		if result.Target.Units < 0 {
			result.Target.Units = -result.Target.Units
		}
	}
	result.Target.Faction = source.Faction
	result.Target.Selected = false

	result.Source.Units = 0
	result.Source.Selected = false
	return result
}

// MoveUnits moves every unit from one cell into another and clears the
// selection. Callers check adjacency and targeting legality.
func (g *GameState) MoveUnits(from, to Coord) []Effect {
	if !g.InBounds(from.Row, from.Column) || !g.InBounds(to.Row, to.Column) {
		return nil
	}

	result := Resolve(g.cells[from.Row][from.Column], g.cells[to.Row][to.Column])
	effects := g.deselectAll()

	g.cells[from.Row][from.Column] = result.Source.normalized()
	g.cells[to.Row][to.Column] = result.Target.normalized()

	effects = append(effects,
		cellUpdated(from.Row, from.Column, g.cells[from.Row][from.Column]),
		cellUpdated(to.Row, to.Column, g.cells[to.Row][to.Column]),
		selectedCountChanged(0),
		Effect{Type: EffectMovementStarted, Row: to.Row, Column: to.Column},
	)
	return effects
}
