package game

import (
	"errors"
	"math/rand"
	"testing"

	"skirmish/pkg/maps"
)

func TestRollDamage_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		d := RollDamage(rng, 15, 5)
		if d < 8 || d > 12 {
			t.Fatalf("Damage %d outside [8,12]", d)
		}
	}
}

func TestRollDamage_MinimumOne(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		if d := RollDamage(rng, 5, 20); d != 1 {
			t.Fatalf("Expected minimum damage 1, got %d", d)
		}
	}
}

func TestAttack_SoldierVsArcherOnGrass(t *testing.T) {
	g := createEmptyTestGame(t, maps.Uniform(10, 10, maps.TerrainGrass))
	soldier := mustPlaceUnit(t, g, g.HumanID(), UnitSoldier, 4, 4)
	archer := mustPlaceUnit(t, g, g.OpponentID(), UnitArcher, 5, 4)

	// Mirror the game's random stream: damage factor, critical roll, counter factor
	twin := rand.New(rand.NewSource(1))
	wantDamage := RollDamage(twin, 15, 5)
	wantCritical := twin.Intn(100) < 10
	if wantCritical {
		wantDamage = wantDamage * 3 / 2
	}
	wantCounter := RollDamage(twin, 20, 10) / 2

	res, err := g.Attack(soldier.ID, archer.ID)
	if err != nil {
		t.Fatalf("Attack failed: %v", err)
	}

	if res.Critical != wantCritical || res.Damage != wantDamage {
		t.Errorf("Expected damage %d (critical %v), got %d (critical %v)", wantDamage, wantCritical, res.Damage, res.Critical)
	}
	if !res.Critical && (archer.Health < 58 || archer.Health > 62) {
		t.Errorf("Expected archer health in [58,62], got %d", archer.Health)
	}
	if res.TerrainBonus != 0 {
		t.Errorf("Expected no terrain bonus on grass, got %d", res.TerrainBonus)
	}

	if !res.Countered || res.CounterDamage != wantCounter {
		t.Errorf("Expected counter of %d, got %+v", wantCounter, res)
	}
	if soldier.Health != 100-wantCounter {
		t.Errorf("Expected soldier health %d, got %d", 100-wantCounter, soldier.Health)
	}
	if !soldier.HasActed {
		t.Error("Expected attacker to be marked acted")
	}
	if archer.HasActed {
		t.Error("Expected counter-attack to leave the defender's action available")
	}
}

func TestAttack_TerrainBonusApplied(t *testing.T) {
	terrain := maps.Uniform(10, 10, maps.TerrainGrass)
	terrain[4][5] = maps.TerrainMountain
	g := createEmptyTestGame(t, terrain)
	soldier := mustPlaceUnit(t, g, g.HumanID(), UnitSoldier, 4, 4)
	archer := mustPlaceUnit(t, g, g.OpponentID(), UnitArcher, 5, 4)

	res, err := g.Attack(soldier.ID, archer.ID)
	if err != nil {
		t.Fatalf("Attack failed: %v", err)
	}

	want := res.BaseDamage - 2
	if want < 1 {
		want = 1
	}
	if res.Critical {
		want = want * 3 / 2
	}
	if res.TerrainBonus != 2 || res.Damage != want {
		t.Errorf("Expected mountain bonus 2 and damage %d, got bonus %d damage %d", want, res.TerrainBonus, res.Damage)
	}
}

func TestAttack_NoCounterOnKill(t *testing.T) {
	g := createEmptyTestGame(t, maps.Uniform(10, 10, maps.TerrainGrass))
	soldier := mustPlaceUnit(t, g, g.HumanID(), UnitSoldier, 4, 4)
	archer := mustPlaceUnit(t, g, g.OpponentID(), UnitArcher, 5, 4)
	archer.Health = 1

	res, err := g.Attack(soldier.ID, archer.ID)
	if err != nil {
		t.Fatalf("Attack failed: %v", err)
	}
	if !res.DefenderDestroyed || res.Countered {
		t.Errorf("Expected a kill with no counter, got %+v", res)
	}
	if soldier.Health != 100 {
		t.Errorf("Expected attacker untouched, got %d", soldier.Health)
	}

	if _, ok := g.Unit(archer.ID); ok {
		t.Error("Expected dead unit to leave the arena")
	}
	for _, id := range g.players[g.OpponentID()].UnitIDs {
		if id == archer.ID {
			t.Error("Expected dead unit to leave its owner's collection")
		}
	}
	if tile, _ := g.Tile(5, 4); tile.UnitID != "" {
		t.Error("Expected dead unit to leave its tile")
	}
}

func TestAttack_NoCounterWhenDefenderActedOrOutOfRange(t *testing.T) {
	g := createEmptyTestGame(t, maps.Uniform(10, 10, maps.TerrainGrass))
	archer := mustPlaceUnit(t, g, g.HumanID(), UnitArcher, 2, 4)
	soldier := mustPlaceUnit(t, g, g.OpponentID(), UnitSoldier, 5, 4)

	res, err := g.Attack(archer.ID, soldier.ID)
	if err != nil {
		t.Fatalf("Attack failed: %v", err)
	}
	if res.Countered {
		t.Error("Expected no counter from a defender out of its own range")
	}

	other := mustPlaceUnit(t, g, g.HumanID(), UnitSoldier, 5, 5)
	soldier.HasActed = true
	res, err = g.Attack(other.ID, soldier.ID)
	if err != nil {
		t.Fatalf("Attack failed: %v", err)
	}
	if res.Countered {
		t.Error("Expected no counter from a defender that already acted")
	}
}

func TestAttack_Validation(t *testing.T) {
	g := createEmptyTestGame(t, maps.Uniform(10, 10, maps.TerrainGrass))
	soldier := mustPlaceUnit(t, g, g.HumanID(), UnitSoldier, 4, 4)
	friend := mustPlaceUnit(t, g, g.HumanID(), UnitArcher, 4, 5)
	far := mustPlaceUnit(t, g, g.OpponentID(), UnitArcher, 8, 8)
	near := mustPlaceUnit(t, g, g.OpponentID(), UnitSoldier, 5, 4)

	if _, err := g.Attack(soldier.ID, friend.ID); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("Expected ErrInvalidTarget for friendly target, got %v", err)
	}
	if _, err := g.Attack(soldier.ID, far.ID); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange, got %v", err)
	}
	if _, err := g.Attack(soldier.ID, "missing"); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("Expected ErrInvalidTarget for unknown target, got %v", err)
	}
	if !g.CanAttack(soldier.ID, near.ID) {
		t.Error("Expected adjacent enemy to be attackable")
	}

	soldier.HasActed = true
	if _, err := g.Attack(soldier.ID, near.ID); !errors.Is(err, ErrAlreadyActed) {
		t.Errorf("Expected ErrAlreadyActed, got %v", err)
	}
	if g.CanAttack(soldier.ID, near.ID) {
		t.Error("Expected CanAttack to be false after acting")
	}
	if near.Health != near.MaxHealth {
		t.Error("Expected failed attacks to change nothing")
	}
}

func TestAttackBuilding_RawDamage(t *testing.T) {
	g := createEmptyTestGame(t, maps.Uniform(10, 10, maps.TerrainGrass))
	cc := commandCenterOf(g, g.OpponentID())
	archer := mustPlaceUnit(t, g, g.HumanID(), UnitArcher, cc.X-2, cc.Y)

	res, err := g.AttackBuilding(archer.ID, cc.ID)
	if err != nil {
		t.Fatalf("AttackBuilding failed: %v", err)
	}
	if res.Damage != 20 || cc.Health != 480 {
		t.Errorf("Expected 20 damage and 480 health, got %d and %d", res.Damage, cc.Health)
	}
	if _, err := g.AttackBuilding(archer.ID, cc.ID); !errors.Is(err, ErrAlreadyActed) {
		t.Errorf("Expected ErrAlreadyActed, got %v", err)
	}

	own := commandCenterOf(g, g.HumanID())
	other := mustPlaceUnit(t, g, g.HumanID(), UnitSoldier, 1, 0)
	if _, err := g.AttackBuilding(other.ID, own.ID); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("Expected ErrInvalidTarget for own building, got %v", err)
	}
}

func TestAttackBuilding_DestroyingCommandCenterEndsGame(t *testing.T) {
	g := createEmptyTestGame(t, maps.Uniform(10, 10, maps.TerrainGrass))
	cc := commandCenterOf(g, g.OpponentID())
	cc.Health = 10
	soldier := mustPlaceUnit(t, g, g.HumanID(), UnitSoldier, cc.X-1, cc.Y)

	res, err := g.AttackBuilding(soldier.ID, cc.ID)
	if err != nil {
		t.Fatalf("AttackBuilding failed: %v", err)
	}
	if !res.Destroyed || !g.IsOver() || g.Outcome().WinnerID != g.HumanID() {
		t.Errorf("Expected human victory, got %+v / %+v", res, g.Outcome())
	}
}

func TestMoveUnit_TooFar(t *testing.T) {
	g := createTestGame(t, 1)
	soldier := unitAt(g, 3, 2)

	if err := g.MoveUnit(soldier.ID, 7, 2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange, got %v", err)
	}
	if soldier.X != 3 || soldier.Y != 2 || soldier.HasActed {
		t.Errorf("Expected no change, got (%d,%d) acted=%v", soldier.X, soldier.Y, soldier.HasActed)
	}
}

func TestMoveUnit_Success(t *testing.T) {
	g := createTestGame(t, 1)
	soldier := unitAt(g, 3, 2)

	if err := g.MoveUnit(soldier.ID, 5, 3); err != nil {
		t.Fatalf("MoveUnit failed: %v", err)
	}
	if soldier.X != 5 || soldier.Y != 3 || !soldier.HasActed {
		t.Errorf("Unexpected unit state after move: %+v", *soldier)
	}
	if unitAt(g, 3, 2) != nil {
		t.Error("Expected source tile to be cleared")
	}
	if unitAt(g, 5, 3) != soldier {
		t.Error("Expected destination tile to hold the unit")
	}

	if err := g.MoveUnit(soldier.ID, 5, 4); !errors.Is(err, ErrAlreadyActed) {
		t.Errorf("Expected ErrAlreadyActed, got %v", err)
	}
}

func TestMoveUnit_BlockedTiles(t *testing.T) {
	terrain := maps.Uniform(10, 10, maps.TerrainGrass)
	terrain[4][5] = maps.TerrainWater
	g := createEmptyTestGame(t, terrain)
	u := mustPlaceUnit(t, g, g.HumanID(), UnitSoldier, 4, 4)
	mustPlaceUnit(t, g, g.HumanID(), UnitArcher, 4, 5)

	if err := g.MoveUnit(u.ID, 5, 4); !errors.Is(err, ErrTileUnavailable) {
		t.Errorf("Expected ErrTileUnavailable for water, got %v", err)
	}
	if err := g.MoveUnit(u.ID, 4, 5); !errors.Is(err, ErrTileUnavailable) {
		t.Errorf("Expected ErrTileUnavailable for occupied tile, got %v", err)
	}
	if err := g.MoveUnit(u.ID, -1, 4); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
	// Buildings do not block movement
	if err := g.MoveUnit(u.ID, 0, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange for distant building tile, got %v", err)
	}
	if err := g.MoveUnit(u.ID, 3, 3); err != nil {
		t.Errorf("Expected move to succeed, got %v", err)
	}
}

func TestSimulateCombat_StrongerSideWins(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := Combatant{ID: "a", Health: 100, Attack: 50, Defense: 10}
	b := Combatant{ID: "b", Health: 10, Attack: 5, Defense: 0}

	for i := 0; i < 100; i++ {
		if SimulateCombat(rng, a, b) != "a" {
			t.Fatal("Expected stronger combatant to win")
		}
	}
}

func TestCombatOdds_LeavesGameUntouched(t *testing.T) {
	g := createEmptyTestGame(t, maps.Uniform(10, 10, maps.TerrainGrass))
	soldier := mustPlaceUnit(t, g, g.HumanID(), UnitSoldier, 4, 4)
	archer := mustPlaceUnit(t, g, g.OpponentID(), UnitArcher, 5, 4)
	archer.Health = 5

	odds, err := g.CombatOdds(soldier.ID, archer.ID, 0)
	if err != nil {
		t.Fatalf("CombatOdds failed: %v", err)
	}
	if odds != 1 {
		t.Errorf("Expected certain win against a 5 hp archer, got %f", odds)
	}
	if archer.Health != 5 || soldier.Health != 100 || soldier.HasActed {
		t.Error("Expected odds estimation to change nothing")
	}

	// The authoritative stream must not have been consumed
	twin := rand.New(rand.NewSource(1))
	if g.rng.Int63() != twin.Int63() {
		t.Error("Expected CombatOdds to leave the game random stream alone")
	}
}

func TestCombatOdds_InjectedStream(t *testing.T) {
	odds := func(seed int64) float64 {
		g := newEmptyGame(Settings{Seed: 1}, NewGrid(maps.Uniform(6, 6, maps.TerrainGrass)), Options{
			Rand:     rand.New(rand.NewSource(1)),
			OddsRand: rand.New(rand.NewSource(seed)),
			Opponent: idleOpponent{},
		})
		a := mustPlaceUnit(t, g, g.HumanID(), UnitArcher, 1, 1)
		d := mustPlaceUnit(t, g, g.OpponentID(), UnitArcher, 2, 1)
		rate, err := g.CombatOdds(a.ID, d.ID, 50)
		if err != nil {
			t.Fatalf("CombatOdds failed: %v", err)
		}
		return rate
	}

	// Replay the same fights on a twin of the injected source
	twin := rand.New(rand.NewSource(99))
	a := Combatant{ID: "a", Health: 70, Attack: 20, Defense: 5}
	d := Combatant{ID: "d", Health: 70, Attack: 20, Defense: 5}
	wins := 0
	for i := 0; i < 50; i++ {
		if SimulateCombat(twin, a, d) == "a" {
			wins++
		}
	}

	if got := odds(99); got != float64(wins)/50 {
		t.Errorf("Expected odds %f from the injected stream, got %f", float64(wins)/50, got)
	}
	if odds(99) != odds(99) {
		t.Error("Expected the same injected seed to give the same odds")
	}
}
