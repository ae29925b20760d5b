package game

import (
	"testing"

	"skirmish/pkg/maps"
)

func TestGreedyAI_ApproachesFirstEnemyUnit(t *testing.T) {
	g := createEmptyTestGame(t, maps.Uniform(10, 10, maps.TerrainGrass))
	target := mustPlaceUnit(t, g, g.HumanID(), UnitSoldier, 1, 1)
	mover := mustPlaceUnit(t, g, g.OpponentID(), UnitSoldier, 8, 8)
	g.phase = PhaseOpponent

	GreedyAI{}.Act(g, g.OpponentID())

	if !mover.HasActed {
		t.Fatal("Expected the AI unit to act")
	}
	if d := mover.DistanceTo(target.X, target.Y); d != 11 {
		t.Errorf("Expected distance 11 after a full move, got %d", d)
	}
	// First tile in row-major order at the best distance
	if mover.X != 8 || mover.Y != 5 {
		t.Errorf("Expected move to (8,5), got (%d,%d)", mover.X, mover.Y)
	}
}

func TestGreedyAI_AttacksInRange(t *testing.T) {
	g := createEmptyTestGame(t, maps.Uniform(10, 10, maps.TerrainGrass))
	target := mustPlaceUnit(t, g, g.HumanID(), UnitSoldier, 5, 5)
	attacker := mustPlaceUnit(t, g, g.OpponentID(), UnitArcher, 5, 7)
	g.phase = PhaseOpponent

	GreedyAI{}.Act(g, g.OpponentID())

	if target.Health == target.MaxHealth {
		t.Error("Expected the AI to attack the unit in range")
	}
	if attacker.X != 5 || attacker.Y != 7 {
		t.Error("Expected the AI unit to attack without moving")
	}
}

func TestGreedyAI_TargetsCommandCenterWithoutUnits(t *testing.T) {
	g := createEmptyTestGame(t, maps.Uniform(10, 10, maps.TerrainGrass))
	cc := commandCenterOf(g, g.HumanID())
	mustPlaceUnit(t, g, g.OpponentID(), UnitSoldier, 1, 0)
	g.phase = PhaseOpponent

	GreedyAI{}.Act(g, g.OpponentID())

	if cc.Health != cc.MaxHealth-15 {
		t.Errorf("Expected the command center to take 15 damage, health %d", cc.Health)
	}
}
