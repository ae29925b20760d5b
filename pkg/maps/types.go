// Package maps holds terrain definitions, map size presets and terrain generation.
package maps

import (
	"fmt"
	"strings"
)

// Terrain represents the kind of ground a tile is made of.
type Terrain int

const (
	TerrainGrass Terrain = iota
	TerrainForest
	TerrainMountain
	TerrainWater
	TerrainDesert
)

// TerrainInfo describes the static properties of a terrain kind.
type TerrainInfo struct {
	Name         string
	Walkable     bool
	MovementCost float64 // 1.0 = normal
	DefenseBonus int     // Subtracted from damage dealt to a unit standing here
	Symbol       rune
}

var terrainTable = map[Terrain]TerrainInfo{
	TerrainGrass:    {Name: "Grass", Walkable: true, MovementCost: 1.0, DefenseBonus: 0, Symbol: '▓'},
	TerrainForest:   {Name: "Forest", Walkable: true, MovementCost: 0.75, DefenseBonus: 1, Symbol: '♣'},
	TerrainMountain: {Name: "Mountain", Walkable: true, MovementCost: 0.5, DefenseBonus: 2, Symbol: '▲'},
	TerrainWater:    {Name: "Water", Walkable: false, MovementCost: 0.0, DefenseBonus: 0, Symbol: '≈'},
	TerrainDesert:   {Name: "Desert", Walkable: true, MovementCost: 1.2, DefenseBonus: -1, Symbol: '░'},
}

// AllTerrains returns every terrain kind in declaration order.
func AllTerrains() []Terrain {
	return []Terrain{
		TerrainGrass,
		TerrainForest,
		TerrainMountain,
		TerrainWater,
		TerrainDesert,
	}
}

// Info returns the static properties of the terrain.
// Unknown values report as impassable.
func (t Terrain) Info() TerrainInfo {
	if info, ok := terrainTable[t]; ok {
		return info
	}
	return TerrainInfo{Name: "Unknown", Symbol: '?'}
}

// String returns the terrain name.
func (t Terrain) String() string {
	return t.Info().Name
}

// Walkable returns true if units may stand on this terrain.
func (t Terrain) Walkable() bool {
	return t.Info().Walkable
}

// DefenseBonus returns the damage reduction granted to units on this terrain.
func (t Terrain) DefenseBonus() int {
	return t.Info().DefenseBonus
}

// Size is a map dimension preset chosen at session start.
type Size int

const (
	SizeSmall Size = iota
	SizeMedium
	SizeLarge
)

// Dimensions returns the width and height of the preset.
func (s Size) Dimensions() (width, height int) {
	switch s {
	case SizeSmall:
		return 10, 10
	case SizeLarge:
		return 20, 20
	default:
		return 15, 15
	}
}

// String returns the preset name.
func (s Size) String() string {
	switch s {
	case SizeSmall:
		return "small"
	case SizeMedium:
		return "medium"
	case SizeLarge:
		return "large"
	default:
		return "unknown"
	}
}

// ParseSize converts a preset name into a Size.
func ParseSize(name string) (Size, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "small":
		return SizeSmall, nil
	case "", "medium":
		return SizeMedium, nil
	case "large":
		return SizeLarge, nil
	default:
		return SizeMedium, fmt.Errorf("unknown map size %q", name)
	}
}
