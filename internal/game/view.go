package game

import "skirmish/pkg/maps"

// PlayerView is a read-only snapshot of a player.
type PlayerView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Resources   Bundle   `json:"resources"`
	UnitIDs     []string `json:"unitIds"`
	BuildingIDs []string `json:"buildingIds"`
	Alive       bool     `json:"alive"`
	LostCommand bool     `json:"lostCommand"`
	IsAI        bool     `json:"isAI"`
}

// UnitView is a read-only snapshot of a unit.
type UnitView struct {
	ID         string   `json:"id"`
	Kind       UnitKind `json:"kind"`
	Owner      string   `json:"owner"`
	X          int      `json:"x"`
	Y          int      `json:"y"`
	Health     int      `json:"health"`
	MaxHealth  int      `json:"maxHealth"`
	Attack     int      `json:"attack"`
	Defense    int      `json:"defense"` // Including Shield Wall
	Range      int      `json:"range"`
	Movement   int      `json:"movement"`
	HasActed   bool     `json:"hasActed"`
	ShieldWall bool     `json:"shieldWall"`
}

// BuildingView is a read-only snapshot of a building.
type BuildingView struct {
	ID            string       `json:"id"`
	Kind          BuildingKind `json:"kind"`
	Owner         string       `json:"owner"`
	X             int          `json:"x"`
	Y             int          `json:"y"`
	Health        int          `json:"health"`
	MaxHealth     int          `json:"maxHealth"`
	RemainingTime int          `json:"remainingTime"`
	Built         bool         `json:"built"`
	Production    Bundle       `json:"production"`
	UsedSpecial   bool         `json:"usedSpecial"`
}

// TileView is a read-only snapshot of a tile.
type TileView struct {
	X          int          `json:"x"`
	Y          int          `json:"y"`
	Terrain    maps.Terrain `json:"terrain"`
	UnitID     string       `json:"unitId,omitempty"`
	BuildingID string       `json:"buildingId,omitempty"`
	Explored   bool         `json:"explored"`
}

func viewPlayer(p *Player) PlayerView {
	return PlayerView{
		ID:          p.ID,
		Name:        p.Name,
		Resources:   p.Stockpile.Snapshot(),
		UnitIDs:     append([]string(nil), p.UnitIDs...),
		BuildingIDs: append([]string(nil), p.BuildingIDs...),
		Alive:       p.Alive,
		LostCommand: p.LostCommand,
		IsAI:        p.IsAI,
	}
}

func viewUnit(u *Unit) UnitView {
	return UnitView{
		ID:         u.ID,
		Kind:       u.Kind,
		Owner:      u.Owner,
		X:          u.X,
		Y:          u.Y,
		Health:     u.Health,
		MaxHealth:  u.MaxHealth,
		Attack:     u.Attack,
		Defense:    u.EffectiveDefense(),
		Range:      u.Range,
		Movement:   u.Movement,
		HasActed:   u.HasActed,
		ShieldWall: u.ShieldWall,
	}
}

func viewBuilding(b *Building) BuildingView {
	return BuildingView{
		ID:            b.ID,
		Kind:          b.Kind,
		Owner:         b.Owner,
		X:             b.X,
		Y:             b.Y,
		Health:        b.Health,
		MaxHealth:     b.MaxHealth,
		RemainingTime: b.RemainingTime,
		Built:         b.Built,
		Production:    b.Production.Clone(),
		UsedSpecial:   b.UsedSpecial,
	}
}

// Player returns a snapshot of a player.
func (g *Game) Player(id string) (PlayerView, bool) {
	p := g.players[id]
	if p == nil {
		return PlayerView{}, false
	}
	return viewPlayer(p), true
}

// Players returns both players, human side first.
func (g *Game) Players() []PlayerView {
	out := make([]PlayerView, 0, len(g.playerOrder))
	for _, id := range g.playerOrder {
		out = append(out, viewPlayer(g.players[id]))
	}
	return out
}

// Unit returns a snapshot of a living unit.
func (g *Game) Unit(id string) (UnitView, bool) {
	u := g.units[id]
	if u == nil {
		return UnitView{}, false
	}
	return viewUnit(u), true
}

// Building returns a snapshot of a standing building.
func (g *Game) Building(id string) (BuildingView, bool) {
	b := g.buildings[id]
	if b == nil {
		return BuildingView{}, false
	}
	return viewBuilding(b), true
}

// Units returns the player's units in recruitment order.
func (g *Game) Units(playerID string) []UnitView {
	p := g.players[playerID]
	if p == nil {
		return nil
	}
	out := make([]UnitView, 0, len(p.UnitIDs))
	for _, id := range p.UnitIDs {
		if u := g.units[id]; u != nil {
			out = append(out, viewUnit(u))
		}
	}
	return out
}

// Buildings returns the player's buildings in construction order.
func (g *Game) Buildings(playerID string) []BuildingView {
	p := g.players[playerID]
	if p == nil {
		return nil
	}
	out := make([]BuildingView, 0, len(p.BuildingIDs))
	for _, id := range p.BuildingIDs {
		if b := g.buildings[id]; b != nil {
			out = append(out, viewBuilding(b))
		}
	}
	return out
}

// Tile returns a snapshot of the tile at a position.
func (g *Game) Tile(x, y int) (TileView, error) {
	t, err := g.grid.TileAt(x, y)
	if err != nil {
		return TileView{}, err
	}
	return TileView{
		X:          t.X,
		Y:          t.Y,
		Terrain:    t.Terrain,
		UnitID:     t.UnitID,
		BuildingID: t.BuildingID,
		Explored:   t.Explored,
	}, nil
}

// RenderMap returns an ASCII dump of the map with unit and building markers.
// Human units are 'H', opponent units 'O', buildings 'B'.
func (g *Game) RenderMap() string {
	human := g.playerOrder[0]
	return maps.Render(g.grid.Terrain(), func(x, y int) rune {
		t := g.grid.tiles[y][x]
		if u := g.units[t.UnitID]; u != nil {
			if u.Owner == human {
				return 'H'
			}
			return 'O'
		}
		if t.HasBuilding() {
			return 'B'
		}
		return 0
	})
}
