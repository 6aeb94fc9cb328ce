package world

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfBounds is returned for any grid access outside [0,W)x[0,H).
var ErrOutOfBounds = errors.New("grid access out of bounds")

const (
	// Default dungeon dimensions
	DefaultWidth  = 60
	DefaultHeight = 40
)

// Grid is a fixed-size mutable store of tiles. It enforces bounds and
// nothing else; layout invariants belong to the placer and the carver.
type Grid struct {
	width  int
	height int
	tiles  [][]Tile
}

// NewGrid creates a grid filled with the background tile.
func NewGrid(width, height int, background Tile) *Grid {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
	}
	g := &Grid{width: width, height: height, tiles: tiles}
	g.Fill(background)
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the tile at (x, y).
func (g *Grid) Get(x, y int) (Tile, error) {
	if !g.InBounds(x, y) {
		return 0, fmt.Errorf("%w: get (%d,%d) on %dx%d grid", ErrOutOfBounds, x, y, g.width, g.height)
	}
	return g.tiles[y][x], nil
}

// Set replaces the tile at (x, y).
func (g *Grid) Set(x, y int, t Tile) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: set (%d,%d) on %dx%d grid", ErrOutOfBounds, x, y, g.width, g.height)
	}
	g.tiles[y][x] = t
	return nil
}

// Fill resets every cell to t.
func (g *Grid) Fill(t Tile) {
	for y := range g.tiles {
		for x := range g.tiles[y] {
			g.tiles[y][x] = t
		}
	}
}

// Equal reports whether both grids have the same size and contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for y := range g.tiles {
		for x := range g.tiles[y] {
			if g.tiles[y][x] != other.tiles[y][x] {
				return false
			}
		}
	}
	return true
}

// Count returns how many cells hold t.
func (g *Grid) Count(t Tile) int {
	n := 0
	for y := range g.tiles {
		for x := range g.tiles[y] {
			if g.tiles[y][x] == t {
				n++
			}
		}
	}
	return n
}

// Row returns a copy of row y as a string, or "" when y is out of range.
func (g *Grid) Row(y int) string {
	if y < 0 || y >= g.height {
		return ""
	}
	var b strings.Builder
	for _, t := range g.tiles[y] {
		b.WriteRune(t.Rune())
	}
	return b.String()
}

// String renders the grid top row first, one line per row.
func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		b.WriteString(g.Row(y))
		b.WriteByte('\n')
	}
	return b.String()
}
