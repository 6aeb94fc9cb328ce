// Package world provides dungeon generation and map management.
package world

import (
	"errors"
	"fmt"
)

// ErrInvalidTheme is returned when a theme cannot tell its tile states apart.
var ErrInvalidTheme = errors.New("invalid theme")

// Tile represents a single map tile.
type Tile rune

const (
	// TileWall is the wall glyph of the built-in theme.
	TileWall Tile = '#'
	// TileFloor is the floor glyph of the built-in theme.
	TileFloor Tile = '.'
	// TileBackground is the unused-space glyph of the built-in theme.
	TileBackground Tile = ' '
	// TileCollectible marks a coin dropped on the floor.
	TileCollectible Tile = '$'
	// TileOccupant marks the spawned player.
	TileOccupant Tile = '@'
)

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}

// Theme supplies the tile states the generator writes. The generator never
// hard-codes glyphs; it always asks the theme.
type Theme interface {
	Wall() Tile
	Floor() Tile
	Background() Tile
}

// BasicTheme is a Theme built from plain values.
type BasicTheme struct {
	WallTile       Tile
	FloorTile      Tile
	BackgroundTile Tile
}

// DefaultTheme returns the built-in ASCII theme.
func DefaultTheme() BasicTheme {
	return BasicTheme{
		WallTile:       TileWall,
		FloorTile:      TileFloor,
		BackgroundTile: TileBackground,
	}
}

func (t BasicTheme) Wall() Tile       { return t.WallTile }
func (t BasicTheme) Floor() Tile      { return t.FloorTile }
func (t BasicTheme) Background() Tile { return t.BackgroundTile }

// ValidateTiles reports an error unless all given tiles are distinct.
// Collision tests compare tiles by value, so two states sharing a glyph
// would make walls indistinguishable from floor.
func ValidateTiles(tiles ...Tile) error {
	seen := make(map[Tile]int, len(tiles))
	for i, t := range tiles {
		if j, ok := seen[t]; ok {
			return fmt.Errorf("%w: states %d and %d share glyph %q", ErrInvalidTheme, j, i, t.Rune())
		}
		seen[t] = i
	}
	return nil
}

// ValidateTheme checks that wall, floor and background are distinct.
func ValidateTheme(theme Theme) error {
	if theme == nil {
		return fmt.Errorf("%w: nil theme", ErrInvalidTheme)
	}
	return ValidateTiles(theme.Wall(), theme.Floor(), theme.Background())
}
