package maps

import (
	"math/rand"
	"strings"
	"testing"
)

func TestTerrainForRoll_Boundaries(t *testing.T) {
	cases := map[int]Terrain{
		0:  TerrainGrass,
		49: TerrainGrass,
		50: TerrainForest,
		69: TerrainForest,
		70: TerrainMountain,
		84: TerrainMountain,
		85: TerrainWater,
		94: TerrainWater,
		95: TerrainDesert,
		99: TerrainDesert,
	}
	for roll, want := range cases {
		if got := TerrainForRoll(roll); got != want {
			t.Errorf("roll %d: expected %s, got %s", roll, want, got)
		}
	}
}

func TestGenerate_SameSeedSameMap(t *testing.T) {
	a := Generate(15, 12, rand.New(rand.NewSource(7)))
	b := Generate(15, 12, rand.New(rand.NewSource(7)))

	if len(a) != 12 || len(a[0]) != 15 {
		t.Fatalf("expected 15x12 grid, got %dx%d", len(a[0]), len(a))
	}
	for y := range a {
		for x := range a[y] {
			if a[y][x] != b[y][x] {
				t.Fatalf("cell (%d,%d) differs between identical seeds", x, y)
			}
		}
	}
}

func TestGenerate_Distribution(t *testing.T) {
	grid := Generate(100, 100, rand.New(rand.NewSource(1)))
	counts := make(map[Terrain]int)
	for _, row := range grid {
		for _, cell := range row {
			counts[cell]++
		}
	}
	// 10000 cells; allow a wide margin around the nominal weighting.
	if counts[TerrainGrass] < 4500 || counts[TerrainGrass] > 5500 {
		t.Errorf("grass count %d far from 50%%", counts[TerrainGrass])
	}
	if counts[TerrainDesert] < 300 || counts[TerrainDesert] > 700 {
		t.Errorf("desert count %d far from 5%%", counts[TerrainDesert])
	}
}

func TestTerrainInfo(t *testing.T) {
	if TerrainWater.Walkable() {
		t.Error("water must not be walkable")
	}
	if TerrainMountain.DefenseBonus() != 2 {
		t.Errorf("expected mountain bonus 2, got %d", TerrainMountain.DefenseBonus())
	}
	if TerrainDesert.DefenseBonus() != -1 {
		t.Errorf("expected desert bonus -1, got %d", TerrainDesert.DefenseBonus())
	}
	if Terrain(42).Walkable() {
		t.Error("unknown terrain must not be walkable")
	}
}

func TestParseSize(t *testing.T) {
	s, err := ParseSize("Large")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w, h := s.Dimensions(); w != 20 || h != 20 {
		t.Errorf("expected 20x20, got %dx%d", w, h)
	}
	if s, _ := ParseSize(""); s != SizeMedium {
		t.Errorf("expected empty name to default to medium, got %s", s)
	}
	if _, err := ParseSize("huge"); err == nil {
		t.Error("expected error for unknown size")
	}
}

func TestRender_Overlay(t *testing.T) {
	grid := Uniform(3, 2, TerrainGrass)
	out := Render(grid, func(x, y int) rune {
		if x == 1 && y == 1 {
			return 'S'
		}
		return 0
	})
	if !strings.Contains(out, "▓ S ▓") {
		t.Errorf("expected overlay marker in second row, got:\n%s", out)
	}
	if !strings.Contains(out, "Size: 3x2") {
		t.Errorf("missing size header:\n%s", out)
	}
}
