package game

import (
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"
)

const (
	criticalChance     = 10 // Percent
	defaultOddsTrials  = 1000
	counterDivisor     = 2
	criticalMultiplier = 1.5
)

// AttackResult reports what one attack did.
type AttackResult struct {
	AttackerID        string `json:"attackerId"`
	DefenderID        string `json:"defenderId"`
	BaseDamage        int    `json:"baseDamage"`   // Rolled damage before terrain and critical
	TerrainBonus      int    `json:"terrainBonus"` // Defender tile bonus subtracted
	Critical          bool   `json:"critical"`
	Damage            int    `json:"damage"` // Applied to the defender
	DefenderHealth    int    `json:"defenderHealth"`
	DefenderDestroyed bool   `json:"defenderDestroyed"`
	Countered         bool   `json:"countered"`
	CounterDamage     int    `json:"counterDamage"`
	AttackerHealth    int    `json:"attackerHealth"`
	AttackerDestroyed bool   `json:"attackerDestroyed"`
}

// BuildingAttackResult reports damage dealt to a building.
type BuildingAttackResult struct {
	AttackerID     string `json:"attackerId"`
	BuildingID     string `json:"buildingId"`
	Damage         int    `json:"damage"`
	BuildingHealth int    `json:"buildingHealth"`
	Destroyed      bool   `json:"destroyed"`
}

// RollDamage draws the base damage of one strike: (attack - defense) scaled by a
// uniform factor in [0.8, 1.2], floored, never below 1.
func RollDamage(rng *rand.Rand, attack, defense int) int {
	base := attack - defense
	factor := 0.8 + rng.Float64()*0.4
	dmg := int(math.Floor(float64(base) * factor))
	if dmg < 1 {
		return 1
	}
	return dmg
}

// checkAttack validates attacker against defender.
func checkAttack(a, d *Unit) error {
	if a == nil || d == nil || !a.IsAlive() || !d.IsAlive() {
		return ErrInvalidTarget
	}
	if a.HasActed {
		return ErrAlreadyActed
	}
	if a.Owner == d.Owner {
		return ErrInvalidTarget
	}
	if a.DistanceTo(d.X, d.Y) > a.Range {
		return fmt.Errorf("distance %d, range %d: %w", a.DistanceTo(d.X, d.Y), a.Range, ErrOutOfRange)
	}
	return nil
}

// CanAttack checks if the attacker may strike the defender right now.
func (g *Game) CanAttack(attackerID, defenderID string) bool {
	return checkAttack(g.units[attackerID], g.units[defenderID]) == nil
}

// Attack resolves a unit attacking another unit, including terrain, critical
// hits and the defender's counter-attack.
func (g *Game) Attack(attackerID, defenderID string) (AttackResult, error) {
	a := g.units[attackerID]
	d := g.units[defenderID]
	if a == nil {
		return AttackResult{}, ErrInvalidTarget
	}
	if err := g.checkActor(a.Owner); err != nil {
		return AttackResult{}, err
	}
	if err := checkAttack(a, d); err != nil {
		return AttackResult{}, err
	}

	res := AttackResult{AttackerID: a.ID, DefenderID: d.ID}

	dmg := RollDamage(g.rng, a.Attack, d.EffectiveDefense())
	res.BaseDamage = dmg

	res.TerrainBonus = g.grid.TerrainBonus(d.X, d.Y)
	dmg -= res.TerrainBonus
	if dmg < 1 {
		dmg = 1
	}

	if g.rng.Intn(100) < criticalChance {
		res.Critical = true
		dmg = int(float64(dmg) * criticalMultiplier)
	}
	res.Damage = dmg

	a.HasActed = true
	g.emit(a.Owner, EventAttack, "%s hit %s for %d", a.Kind, d.Kind, dmg)

	res.DefenderDestroyed = g.damageUnit(d, dmg)
	res.DefenderHealth = d.Health

	// The counter leaves HasActed untouched so the defender keeps its own action
	if !res.DefenderDestroyed && d.DistanceTo(a.X, a.Y) <= d.Range && !d.HasActed {
		res.Countered = true
		res.CounterDamage = RollDamage(g.rng, d.Attack, a.EffectiveDefense()) / counterDivisor
		g.emit(d.Owner, EventCounterAttack, "%s countered %s for %d", d.Kind, a.Kind, res.CounterDamage)
		res.AttackerDestroyed = g.damageUnit(a, res.CounterDamage)
	}
	res.AttackerHealth = a.Health

	g.log.Debug("attack resolved",
		zap.String("attacker", a.ID),
		zap.String("defender", d.ID),
		zap.Int("damage", res.Damage),
		zap.Bool("critical", res.Critical),
		zap.Int("counter", res.CounterDamage),
	)
	return res, nil
}

// AttackBuilding strikes an enemy building for the attacker's raw attack value.
func (g *Game) AttackBuilding(attackerID, buildingID string) (BuildingAttackResult, error) {
	a := g.units[attackerID]
	b := g.buildings[buildingID]
	if a == nil || !a.IsAlive() {
		return BuildingAttackResult{}, ErrInvalidTarget
	}
	if err := g.checkActor(a.Owner); err != nil {
		return BuildingAttackResult{}, err
	}
	if b == nil || b.IsDestroyed() {
		return BuildingAttackResult{}, ErrInvalidTarget
	}
	if a.HasActed {
		return BuildingAttackResult{}, ErrAlreadyActed
	}
	if a.Owner == b.Owner {
		return BuildingAttackResult{}, ErrInvalidTarget
	}
	if dist := a.DistanceTo(b.X, b.Y); dist > a.Range {
		return BuildingAttackResult{}, fmt.Errorf("distance %d, range %d: %w", dist, a.Range, ErrOutOfRange)
	}

	a.HasActed = true
	g.emit(a.Owner, EventBuildingAttacked, "%s hit %s for %d", a.Kind, b.Kind, a.Attack)

	res := BuildingAttackResult{AttackerID: a.ID, BuildingID: b.ID, Damage: a.Attack}
	res.Destroyed = g.damageBuilding(b, a.Attack)
	res.BuildingHealth = b.Health
	return res, nil
}

// MoveUnit relocates a unit up to its movement points. Moving ends the unit's turn.
func (g *Game) MoveUnit(unitID string, x, y int) error {
	u := g.units[unitID]
	if u == nil {
		return ErrInvalidTarget
	}
	if err := g.checkActor(u.Owner); err != nil {
		return err
	}

	dst, err := g.grid.tile(x, y)
	if err != nil {
		return err
	}
	if !g.grid.IsAccessible(x, y) {
		return fmt.Errorf("move to (%d, %d): %w", x, y, ErrTileUnavailable)
	}
	if dist := u.DistanceTo(x, y); dist > u.Movement {
		return fmt.Errorf("distance %d, movement %d: %w", dist, u.Movement, ErrOutOfRange)
	}
	if u.HasActed {
		return ErrAlreadyActed
	}

	if src, err := g.grid.tile(u.X, u.Y); err == nil && src.UnitID == u.ID {
		src.UnitID = ""
	}
	fromX, fromY := u.X, u.Y
	u.X, u.Y = x, y
	g.occupy(dst, u)
	u.HasActed = true

	g.emit(u.Owner, EventMove, "%s moved (%d, %d) -> (%d, %d)", u.Kind, fromX, fromY, x, y)
	return nil
}

// Combatant is the scratch state used by SimulateCombat.
type Combatant struct {
	ID      string
	Health  int
	Attack  int
	Defense int
}

// SimulateCombat trades blows between two combatants on scratch health until one
// falls, a striking first. Returns the ID of the survivor.
func SimulateCombat(rng *rand.Rand, a, b Combatant) string {
	ah, bh := a.Health, b.Health
	for {
		bh -= RollDamage(rng, a.Attack, b.Defense)
		if bh <= 0 {
			return a.ID
		}
		ah -= RollDamage(rng, b.Attack, a.Defense)
		if ah <= 0 {
			return b.ID
		}
	}
}

// CombatOdds estimates how often the attacker wins a fight to the death against
// the defender. Trials <= 0 uses the default. The game state is not changed.
func (g *Game) CombatOdds(attackerID, defenderID string, trials int) (float64, error) {
	a := g.units[attackerID]
	d := g.units[defenderID]
	if a == nil || d == nil {
		return 0, ErrInvalidTarget
	}
	if trials <= 0 {
		trials = defaultOddsTrials
	}

	ca := Combatant{ID: a.ID, Health: a.Health, Attack: a.Attack, Defense: a.EffectiveDefense()}
	cd := Combatant{ID: d.ID, Health: d.Health, Attack: d.Attack, Defense: d.EffectiveDefense()}

	wins := 0
	for i := 0; i < trials; i++ {
		if SimulateCombat(g.oddsRng, ca, cd) == a.ID {
			wins++
		}
	}
	return float64(wins) / float64(trials), nil
}
