package maps

import (
	"fmt"
	"strings"
)

// Render returns a string visualization of a terrain grid.
// overlay may supply a marker for a cell; return 0 to show the terrain symbol.
func Render(grid [][]Terrain, overlay func(x, y int) rune) string {
	var sb strings.Builder

	height := len(grid)
	width := 0
	if height > 0 {
		width = len(grid[0])
	}
	sb.WriteString(fmt.Sprintf("Size: %dx%d\n", width, height))

	for y, row := range grid {
		for x, t := range row {
			symbol := t.Info().Symbol
			if overlay != nil {
				if r := overlay(x, y); r != 0 {
					symbol = r
				}
			}
			sb.WriteRune(symbol)
			if x < len(row)-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\n")
	}

	// Terrain totals
	counts := make(map[Terrain]int)
	for _, row := range grid {
		for _, t := range row {
			counts[t]++
		}
	}
	sb.WriteString("\nTerrain:\n")
	for _, t := range AllTerrains() {
		sb.WriteString(fmt.Sprintf("  %c %-8s %d\n", t.Info().Symbol, t, counts[t]))
	}

	return sb.String()
}
