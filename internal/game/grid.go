package game

import (
	"fmt"
	"math/rand"

	"skirmish/pkg/maps"
)

// Tile is one grid cell. Occupancy is held by entity ID, empty if none.
type Tile struct {
	X          int          `json:"x"`
	Y          int          `json:"y"`
	Terrain    maps.Terrain `json:"terrain"`
	UnitID     string       `json:"unitId,omitempty"`
	BuildingID string       `json:"buildingId,omitempty"`
	Explored   bool         `json:"explored"`
}

// HasUnit returns true if a unit stands on the tile.
func (t *Tile) HasUnit() bool {
	return t.UnitID != ""
}

// HasBuilding returns true if a building stands on the tile.
func (t *Tile) HasBuilding() bool {
	return t.BuildingID != ""
}

// Grid is the fixed-size map. Only occupancy changes after creation.
type Grid struct {
	width  int
	height int
	tiles  [][]*Tile // [y][x]
}

// GenerateGrid creates a grid with randomly drawn terrain.
func GenerateGrid(width, height int, rng *rand.Rand) *Grid {
	return NewGrid(maps.Generate(width, height, rng))
}

// NewGrid creates a grid from a terrain layout indexed [y][x].
// Rows shorter than the first are padded with water.
func NewGrid(terrain [][]maps.Terrain) *Grid {
	height := len(terrain)
	width := 0
	if height > 0 {
		width = len(terrain[0])
	}

	g := &Grid{width: width, height: height, tiles: make([][]*Tile, height)}
	for y := 0; y < height; y++ {
		g.tiles[y] = make([]*Tile, width)
		for x := 0; x < width; x++ {
			t := maps.TerrainWater
			if x < len(terrain[y]) {
				t = terrain[y][x]
			}
			g.tiles[y][x] = &Tile{X: x, Y: y, Terrain: t}
		}
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds checks if a position lies on the map.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// TileAt returns a copy of the tile at a position.
func (g *Grid) TileAt(x, y int) (Tile, error) {
	t, err := g.tile(x, y)
	if err != nil {
		return Tile{}, err
	}
	return *t, nil
}

func (g *Grid) tile(x, y int) (*Tile, error) {
	if !g.InBounds(x, y) {
		return nil, fmt.Errorf("(%d, %d): %w", x, y, ErrOutOfBounds)
	}
	return g.tiles[y][x], nil
}

// IsAccessible reports whether a unit may enter the tile: walkable terrain and no unit.
// Buildings do not block.
func (g *Grid) IsAccessible(x, y int) bool {
	t, err := g.tile(x, y)
	if err != nil {
		return false
	}
	return t.Terrain.Walkable() && !t.HasUnit()
}

// TerrainBonus returns the defense bonus of the terrain at a position.
func (g *Grid) TerrainBonus(x, y int) int {
	t, err := g.tile(x, y)
	if err != nil {
		return 0
	}
	return t.Terrain.DefenseBonus()
}

// Terrain returns the terrain layout as a fresh [y][x] matrix.
func (g *Grid) Terrain() [][]maps.Terrain {
	out := make([][]maps.Terrain, g.height)
	for y := range g.tiles {
		out[y] = make([]maps.Terrain, g.width)
		for x, t := range g.tiles[y] {
			out[y][x] = t.Terrain
		}
	}
	return out
}

// ManhattanDistance returns |ax-bx| + |ay-by|.
func ManhattanDistance(ax, ay, bx, by int) int {
	return abs(ax-bx) + abs(ay-by)
}

// AreAdjacent checks if two positions touch, diagonals included.
func AreAdjacent(ax, ay, bx, by int) bool {
	dx := abs(ax - bx)
	dy := abs(ay - by)
	return dx <= 1 && dy <= 1 && !(dx == 0 && dy == 0)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
