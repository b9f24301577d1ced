package game

// UpgradeCost returns the units needed to raise a building from level.
// The second result is false when no further upgrade exists.
func (r Rules) UpgradeCost(level int) (int, bool) {
	if level < 0 || level >= MaxBuildingLevel {
		return 0, false
	}
	return r.UpgradeCosts[level], true
}

// Income returns the units a building of the given level yields per turn.
func (r Rules) Income(level int) int {
	if level < 1 || level > MaxBuildingLevel {
		return 0
	}
	return r.IncomeRates[level-1]
}

// CanUpgrade checks if the building at (row, column) can be upgraded.
// Upgrades are blocked while any cell is selected.
func (g *GameState) CanUpgrade(row, column int) error {
	if !g.initialized {
		return ErrNotInitialized
	}
	cell, ok := g.Cell(row, column)
	if !ok {
		return ErrOutOfBounds
	}

	cost, ok := g.Rules.UpgradeCost(cell.BuildingLevel)
	if !ok {
		return ErrMaxLevel
	}
	if g.SelectedCount() > 0 {
		return ErrSelectionActive
	}
	if cell.Units < cost {
		return ErrInsufficientUnits
	}
	return nil
}

// IsUpgradeAvailable reports whether the building at (row, column) can be
// upgraded right now.
func (g *GameState) IsUpgradeAvailable(row, column int) bool {
	return g.CanUpgrade(row, column) == nil
}

// CellDoubleTapped upgrades the building at (row, column) for the active
// faction.
func (g *GameState) CellDoubleTapped(row, column int) ([]Effect, error) {
	if !g.initialized {
		return nil, ErrNotInitialized
	}
	cell, ok := g.Cell(row, column)
	if !ok {
		return nil, ErrOutOfBounds
	}
	if cell.Faction == Neutral {
		return nil, ErrNeutralCell
	}
	if cell.Faction != g.ActiveFaction() {
		return nil, ErrNotYourTurn
	}
	if err := g.CanUpgrade(row, column); err != nil {
		return nil, err
	}

	cost, _ := g.Rules.UpgradeCost(cell.BuildingLevel)
	cell.Units -= cost
	cell.BuildingLevel++

	effects := g.UpdateCell(row, column, cell)
	effects = append(effects, Effect{Type: EffectBuildingUpgrade, Row: row, Column: column})
	return effects, nil
}

// AddUnitsToBuildings pays building income to every cell of a faction.
func (g *GameState) AddUnitsToBuildings(f Faction) []Effect {
	var effects []Effect
	g.forEach(func(row, column int, c *Cell) {
		if c.Faction != f || c.BuildingLevel == 0 {
			return
		}
		income := g.Rules.Income(c.BuildingLevel)
		if income == 0 {
			return
		}
		c.Units += income
		effects = append(effects, cellUpdated(row, column, *c))
	})
	return effects
}
