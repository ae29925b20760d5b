package game

import "github.com/google/uuid"

// Player represents a faction in the game.
type Player struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Stockpile   *Stockpile `json:"stockpile"`
	UnitIDs     []string   `json:"unitIds"`     // Owned units, in recruitment order
	BuildingIDs []string   `json:"buildingIds"` // Owned buildings, in construction order
	Alive       bool       `json:"alive"`
	LostCommand bool       `json:"lostCommand"` // Set when a command center of this player is destroyed
	IsAI        bool       `json:"isAI"`
}

// NewPlayer creates a new player with the starting stockpile.
func NewPlayer(name string) *Player {
	return &Player{
		ID:        uuid.New().String(),
		Name:      name,
		Stockpile: StartingStockpile(),
		Alive:     true,
	}
}

// NewAIPlayer creates a new computer-controlled player.
func NewAIPlayer(name string) *Player {
	p := NewPlayer(name)
	p.IsAI = true
	return p
}

func (p *Player) addUnit(id string) {
	p.UnitIDs = append(p.UnitIDs, id)
}

func (p *Player) addBuilding(id string) {
	p.BuildingIDs = append(p.BuildingIDs, id)
}

// removeUnit drops a unit id, keeping the order of the rest.
func (p *Player) removeUnit(id string) {
	p.UnitIDs = removeID(p.UnitIDs, id)
}

func (p *Player) removeBuilding(id string) {
	p.BuildingIDs = removeID(p.BuildingIDs, id)
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
