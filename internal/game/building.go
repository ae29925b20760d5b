package game

import "github.com/google/uuid"

// BuildingKind represents a type of building.
type BuildingKind int

const (
	BuildingCommandCenter BuildingKind = iota
	BuildingFarm
	BuildingMine
	BuildingSawmill
	BuildingTrainingCamp
)

// String returns the building name.
func (k BuildingKind) String() string {
	switch k {
	case BuildingCommandCenter:
		return "Command Center"
	case BuildingFarm:
		return "Farm"
	case BuildingMine:
		return "Mine"
	case BuildingSawmill:
		return "Sawmill"
	case BuildingTrainingCamp:
		return "Training Camp"
	default:
		return "Unknown"
	}
}

// BuildingStats contains the fixed configuration of a building kind.
type BuildingStats struct {
	Kind             BuildingKind
	MaxHealth        int
	ConstructionTime int // Turns
	Cost             Bundle
	Production       Bundle // Per turn once built
	Special          string
}

var buildingStats = map[BuildingKind]BuildingStats{
	BuildingCommandCenter: {
		Kind:             BuildingCommandCenter,
		MaxHealth:        500,
		ConstructionTime: 5,
		Cost:             Bundle{ResourceGold: 200, ResourceWood: 100, ResourceStone: 100},
		Production:       Bundle{ResourceGold: 10},
		Special:          "Emergency Funds",
	},
	BuildingFarm: {
		Kind:             BuildingFarm,
		MaxHealth:        200,
		ConstructionTime: 2,
		Cost:             Bundle{ResourceGold: 30, ResourceWood: 20},
		Production:       Bundle{ResourceFood: 15},
		Special:          "Bountiful Harvest",
	},
	BuildingMine: {
		Kind:             BuildingMine,
		MaxHealth:        250,
		ConstructionTime: 3,
		Cost:             Bundle{ResourceGold: 50, ResourceWood: 30},
		Production:       Bundle{ResourceStone: 10, ResourceGold: 5},
	},
	BuildingSawmill: {
		Kind:             BuildingSawmill,
		MaxHealth:        180,
		ConstructionTime: 2,
		Cost:             Bundle{ResourceGold: 40, ResourceStone: 15},
		Production:       Bundle{ResourceWood: 12},
	},
	BuildingTrainingCamp: {
		Kind:             BuildingTrainingCamp,
		MaxHealth:        300,
		ConstructionTime: 3,
		Cost:             Bundle{ResourceGold: 80, ResourceWood: 40, ResourceStone: 30},
		Production:       Bundle{},
	},
}

// StatsForBuilding returns the stat table entry for a building kind.
func StatsForBuilding(kind BuildingKind) (BuildingStats, bool) {
	s, ok := buildingStats[kind]
	if !ok {
		return BuildingStats{}, false
	}
	s.Cost = s.Cost.Clone()
	s.Production = s.Production.Clone()
	return s, true
}

// Building represents a structure owned by a player.
type Building struct {
	ID               string       `json:"id"`
	Kind             BuildingKind `json:"kind"`
	Owner            string       `json:"owner"` // Player ID
	X                int          `json:"x"`
	Y                int          `json:"y"`
	MaxHealth        int          `json:"maxHealth"`
	Health           int          `json:"health"`
	ConstructionTime int          `json:"constructionTime"`
	RemainingTime    int          `json:"remainingTime"`
	Built            bool         `json:"built"`
	Production       Bundle       `json:"production"`
	UsedSpecial      bool         `json:"usedSpecial"` // Special action consumed this turn
}

// newBuilding creates an unbuilt building of the given kind.
func newBuilding(kind BuildingKind, owner string, x, y int) (*Building, bool) {
	stats, ok := buildingStats[kind]
	if !ok {
		return nil, false
	}
	return &Building{
		ID:               uuid.New().String(),
		Kind:             kind,
		Owner:            owner,
		X:                x,
		Y:                y,
		MaxHealth:        stats.MaxHealth,
		Health:           stats.MaxHealth,
		ConstructionTime: stats.ConstructionTime,
		RemainingTime:    stats.ConstructionTime,
		Production:       stats.Production.Clone(),
	}, true
}

// IsDestroyed returns true once health reaches zero.
func (b *Building) IsDestroyed() bool {
	return b.Health <= 0
}

// takeDamage reduces health, clamped at zero. Returns true if the building was destroyed.
func (b *Building) takeDamage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	b.Health -= amount
	if b.Health <= 0 {
		b.Health = 0
		return true
	}
	return false
}

// produce credits this turn's output to a stockpile. Returns what was credited.
func (b *Building) produce(s *Stockpile) Bundle {
	if !b.Built || len(b.Production) == 0 {
		return nil
	}
	s.AddBundle(b.Production)
	return b.Production.Clone()
}
