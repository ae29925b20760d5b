package game

import (
	"fmt"

	"go.uber.org/zap"
)

// ConstructionStatus reports the result of advancing a building's construction.
type ConstructionStatus int

const (
	ConstructionInProgress ConstructionStatus = iota
	ConstructionCompleted
	ConstructionAlreadyComplete
)

// String returns the status name.
func (s ConstructionStatus) String() string {
	switch s {
	case ConstructionInProgress:
		return "in progress"
	case ConstructionCompleted:
		return "completed"
	case ConstructionAlreadyComplete:
		return "already complete"
	default:
		return "unknown"
	}
}

// AdvanceConstruction counts down one turn of construction.
// Must run at most once per building per turn; extra calls fast-forward the build.
func (b *Building) AdvanceConstruction() ConstructionStatus {
	if b.Built {
		return ConstructionAlreadyComplete
	}

	b.RemainingTime--
	if b.RemainingTime <= 0 {
		b.RemainingTime = 0
		b.Built = true
		return ConstructionCompleted
	}
	return ConstructionInProgress
}

// completeConstruction advances a fresh building exactly ConstructionTime times.
// Used only to hand out pre-built buildings before the first turn.
func (b *Building) completeConstruction() {
	for i := 0; i < b.ConstructionTime; i++ {
		b.AdvanceConstruction()
	}
}

// Construct charges the player for a building and starts its construction at (x, y).
func (g *Game) Construct(playerID string, kind BuildingKind, x, y int) (BuildingView, error) {
	if err := g.checkActor(playerID); err != nil {
		return BuildingView{}, err
	}

	stats, ok := StatsForBuilding(kind)
	if !ok {
		return BuildingView{}, ErrInvalidAction
	}

	t, err := g.grid.tile(x, y)
	if err != nil {
		return BuildingView{}, err
	}
	if !t.Terrain.Walkable() || t.HasBuilding() {
		return BuildingView{}, fmt.Errorf("build %s on %s at (%d, %d): %w", kind, t.Terrain, x, y, ErrTileUnavailable)
	}

	player := g.players[playerID]
	if err := player.Stockpile.Pay(stats.Cost); err != nil {
		return BuildingView{}, fmt.Errorf("build %s: %w", kind, err)
	}

	b, err := g.placeBuilding(playerID, kind, x, y)
	if err != nil {
		// Refund on placement failure
		player.Stockpile.AddBundle(stats.Cost)
		return BuildingView{}, err
	}

	g.log.Info("construction started",
		zap.String("player", player.Name),
		zap.Stringer("building", kind),
		zap.Int("x", x),
		zap.Int("y", y),
		zap.Int("turns", b.RemainingTime),
	)
	g.emit(playerID, EventConstructionStart, "started %s at (%d, %d), %d turns", kind, x, y, b.RemainingTime)
	return viewBuilding(b), nil
}
