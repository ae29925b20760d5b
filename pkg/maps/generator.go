package maps

import (
	"math/rand"
)

// Generate fills a width x height terrain grid, indexed [y][x].
// Each cell draws once from rng, rows first, so a seeded source always
// yields the same map.
func Generate(width, height int, rng *rand.Rand) [][]Terrain {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	grid := make([][]Terrain, height)
	for y := 0; y < height; y++ {
		grid[y] = make([]Terrain, width)
		for x := 0; x < width; x++ {
			grid[y][x] = TerrainForRoll(rng.Intn(100))
		}
	}
	return grid
}

// TerrainForRoll maps a roll in [0,100) onto the fixed terrain weighting:
// 50% grass, 20% forest, 15% mountain, 10% water, 5% desert.
func TerrainForRoll(roll int) Terrain {
	switch {
	case roll < 50:
		return TerrainGrass
	case roll < 70:
		return TerrainForest
	case roll < 85:
		return TerrainMountain
	case roll < 95:
		return TerrainWater
	default:
		return TerrainDesert
	}
}

// Uniform returns a grid covering every cell with the same terrain.
// Used for scripted scenarios and tests.
func Uniform(width, height int, terrain Terrain) [][]Terrain {
	grid := make([][]Terrain, height)
	for y := range grid {
		grid[y] = make([]Terrain, width)
		for x := range grid[y] {
			grid[y][x] = terrain
		}
	}
	return grid
}
