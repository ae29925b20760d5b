package game

import "github.com/google/uuid"

// UnitKind represents a type of unit.
type UnitKind int

const (
	UnitSoldier UnitKind = iota
	UnitArcher
	UnitCavalry
)

// String returns the unit name.
func (k UnitKind) String() string {
	switch k {
	case UnitSoldier:
		return "Soldier"
	case UnitArcher:
		return "Archer"
	case UnitCavalry:
		return "Cavalry"
	default:
		return "Unknown"
	}
}

// UnitStats contains the fixed configuration of a unit kind.
type UnitStats struct {
	Kind      UnitKind
	MaxHealth int
	Attack    int
	Defense   int
	Range     int // Manhattan attack radius
	Movement  int // Manhattan distance per move
	Cost      Bundle
	Special   string
}

var unitStats = map[UnitKind]UnitStats{
	UnitSoldier: {
		Kind:      UnitSoldier,
		MaxHealth: 100,
		Attack:    15,
		Defense:   10,
		Range:     1,
		Movement:  3,
		Cost:      Bundle{ResourceGold: 30, ResourceFood: 20},
		Special:   "Shield Wall",
	},
	UnitArcher: {
		Kind:      UnitArcher,
		MaxHealth: 70,
		Attack:    20,
		Defense:   5,
		Range:     3,
		Movement:  2,
		Cost:      Bundle{ResourceGold: 40, ResourceWood: 15, ResourceFood: 15},
		Special:   "Precision Shot",
	},
	UnitCavalry: {
		Kind:      UnitCavalry,
		MaxHealth: 90,
		Attack:    18,
		Defense:   7,
		Range:     1,
		Movement:  5,
		Cost:      Bundle{ResourceGold: 50, ResourceFood: 30},
		Special:   "Charge",
	},
}

// StatsForUnit returns the stat table entry for a unit kind.
func StatsForUnit(kind UnitKind) (UnitStats, bool) {
	s, ok := unitStats[kind]
	if !ok {
		return UnitStats{}, false
	}
	s.Cost = s.Cost.Clone()
	return s, true
}

// shieldWallBonus is the defense added by a soldier's Shield Wall.
const shieldWallBonus = 5

// Unit represents a single military unit on the map.
type Unit struct {
	ID         string   `json:"id"`
	Kind       UnitKind `json:"kind"`
	Owner      string   `json:"owner"` // Player ID
	X          int      `json:"x"`
	Y          int      `json:"y"`
	MaxHealth  int      `json:"maxHealth"`
	Health     int      `json:"health"`
	Attack     int      `json:"attack"`
	Defense    int      `json:"defense"`
	Range      int      `json:"range"`
	Movement   int      `json:"movement"`
	HasActed   bool     `json:"hasActed"`
	ShieldWall bool     `json:"shieldWall"` // Active until the next reset phase
}

// newUnit creates a unit of the given kind with full health.
func newUnit(kind UnitKind, owner string, x, y int) (*Unit, bool) {
	stats, ok := unitStats[kind]
	if !ok {
		return nil, false
	}
	return &Unit{
		ID:        uuid.New().String(),
		Kind:      kind,
		Owner:     owner,
		X:         x,
		Y:         y,
		MaxHealth: stats.MaxHealth,
		Health:    stats.MaxHealth,
		Attack:    stats.Attack,
		Defense:   stats.Defense,
		Range:     stats.Range,
		Movement:  stats.Movement,
	}, true
}

// IsAlive returns true while the unit has health left.
func (u *Unit) IsAlive() bool {
	return u.Health > 0
}

// EffectiveDefense returns the defense including any active stance.
func (u *Unit) EffectiveDefense() int {
	if u.ShieldWall {
		return u.Defense + shieldWallBonus
	}
	return u.Defense
}

// DistanceTo returns the Manhattan distance to a position.
func (u *Unit) DistanceTo(x, y int) int {
	return ManhattanDistance(u.X, u.Y, x, y)
}

// takeDamage reduces health, clamped at zero. Returns true if the unit died.
func (u *Unit) takeDamage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	u.Health -= amount
	if u.Health <= 0 {
		u.Health = 0
		return true
	}
	return false
}

// resetTurn clears per-turn state.
func (u *Unit) resetTurn() {
	u.HasActed = false
	u.ShieldWall = false
}
