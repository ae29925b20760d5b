package game

import (
	"errors"

	"go.uber.org/zap"
)

// GreedyAI is the built-in opponent. Every unit chases a single target, the
// enemy's first living unit or, failing that, its command center: it attacks
// when it can and otherwise steps as close as its movement allows.
type GreedyAI struct{}

// Act issues commands for every unit of playerID.
func (GreedyAI) Act(g *Game, playerID string) {
	enemy := g.OpponentOf(playerID)
	if enemy == "" {
		return
	}

	ids := append([]string(nil), g.players[playerID].UnitIDs...)
	for _, id := range ids {
		if g.IsOver() {
			return
		}
		u := g.units[id]
		if u == nil || u.HasActed {
			continue
		}

		unitTarget, buildingTarget := g.pickTarget(enemy)
		var err error
		switch {
		case unitTarget != nil:
			if g.CanAttack(u.ID, unitTarget.ID) {
				_, err = g.Attack(u.ID, unitTarget.ID)
			} else {
				err = g.approach(u, unitTarget.X, unitTarget.Y)
			}
		case buildingTarget != nil:
			_, err = g.AttackBuilding(u.ID, buildingTarget.ID)
			if errors.Is(err, ErrOutOfRange) {
				err = g.approach(u, buildingTarget.X, buildingTarget.Y)
			}
		default:
			return
		}

		if err != nil {
			g.log.Debug("ai command rejected", zap.String("unit", u.ID), zap.Error(err))
		}
	}
}

// pickTarget returns the enemy's first living unit, else its first command center.
func (g *Game) pickTarget(enemy string) (*Unit, *Building) {
	p := g.players[enemy]
	for _, id := range p.UnitIDs {
		if u := g.units[id]; u != nil && u.IsAlive() {
			return u, nil
		}
	}
	for _, id := range p.BuildingIDs {
		if b := g.buildings[id]; b != nil && b.Kind == BuildingCommandCenter {
			return nil, b
		}
	}
	return nil, nil
}

// approach moves u to the reachable tile nearest to (tx, ty).
// Ties go to the first tile in row-major order. Stays put if nothing is closer.
func (g *Game) approach(u *Unit, tx, ty int) error {
	best := u.DistanceTo(tx, ty)
	bx, by := -1, -1

	for y := u.Y - u.Movement; y <= u.Y+u.Movement; y++ {
		for x := u.X - u.Movement; x <= u.X+u.Movement; x++ {
			if u.DistanceTo(x, y) > u.Movement || !g.grid.IsAccessible(x, y) {
				continue
			}
			if d := ManhattanDistance(x, y, tx, ty); d < best {
				best, bx, by = d, x, y
			}
		}
	}

	if bx < 0 {
		return nil
	}
	return g.MoveUnit(u.ID, bx, by)
}
