package game

import "fmt"

// Recruit trains a new unit at a training camp. The unit appears on the
// camp's tile, or on the first free neighbouring tile if that is taken.
func (g *Game) Recruit(campID string, kind UnitKind) (UnitView, error) {
	camp := g.buildings[campID]
	if camp == nil {
		return UnitView{}, ErrInvalidTarget
	}
	if err := g.checkActor(camp.Owner); err != nil {
		return UnitView{}, err
	}
	if camp.Kind != BuildingTrainingCamp {
		return UnitView{}, fmt.Errorf("%s cannot recruit: %w", camp.Kind, ErrInvalidAction)
	}
	if !camp.Built {
		return UnitView{}, ErrNotBuilt
	}

	stats, ok := StatsForUnit(kind)
	if !ok {
		return UnitView{}, ErrInvalidAction
	}

	x, y, ok := g.spawnPoint(camp.X, camp.Y)
	if !ok {
		return UnitView{}, fmt.Errorf("no room around (%d, %d): %w", camp.X, camp.Y, ErrTileUnavailable)
	}

	player := g.players[camp.Owner]
	if err := player.Stockpile.Pay(stats.Cost); err != nil {
		return UnitView{}, fmt.Errorf("recruit %s: %w", kind, err)
	}

	u, err := g.placeUnit(camp.Owner, kind, x, y)
	if err != nil {
		player.Stockpile.AddBundle(stats.Cost)
		return UnitView{}, err
	}

	g.emit(camp.Owner, EventRecruit, "recruited %s at (%d, %d)", kind, x, y)
	return viewUnit(u), nil
}

// spawnPoint finds where a recruited unit can stand.
func (g *Game) spawnPoint(x, y int) (int, int, bool) {
	if g.grid.InBounds(x, y) && g.grid.IsAccessible(x, y) {
		return x, y, true
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx, ny := x+dx, y+dy
			if !AreAdjacent(x, y, nx, ny) {
				continue
			}
			if g.grid.IsAccessible(nx, ny) {
				return nx, ny, true
			}
		}
	}
	return 0, 0, false
}
