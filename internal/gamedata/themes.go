package gamedata

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeonplot/internal/world"
)

// ErrUnknownTheme is returned when a theme id is not in the registry.
var ErrUnknownTheme = errors.New("unknown theme")

// Tile state names used as keys in themes.json.
const (
	StateWall        = "wall"
	StateFloor       = "floor"
	StateBackground  = "background"
	StateCollectible = "collectible"
	StateOccupant    = "occupant"
)

var states = []string{StateWall, StateFloor, StateBackground, StateCollectible, StateOccupant}

// TileDef is the look of one tile state.
type TileDef struct {
	Glyph string `json:"glyph"` // exactly one rune
	Color string `json:"color"` // hex, e.g. "#9E9E9E"
}

// ThemeDef defines a theme loaded from JSON. It satisfies world.Theme.
type ThemeDef struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	BackgroundColor string             `json:"backgroundColor"`
	Tiles           map[string]TileDef `json:"tiles"`
}

// ThemesFile represents the structure of themes.json.
type ThemesFile struct {
	Themes []ThemeDef `json:"themes"`
}

// LoadThemes loads theme definitions from the embedded themes.json file.
func LoadThemes() ([]ThemeDef, error) {
	file, err := Load[ThemesFile]("themes.json")
	if err != nil {
		return nil, err
	}
	return file.Themes, nil
}

func (t *ThemeDef) tile(state string) world.Tile {
	r, _ := utf8.DecodeRuneInString(t.Tiles[state].Glyph)
	return world.Tile(r)
}

func (t *ThemeDef) Wall() world.Tile        { return t.tile(StateWall) }
func (t *ThemeDef) Floor() world.Tile       { return t.tile(StateFloor) }
func (t *ThemeDef) Background() world.Tile  { return t.tile(StateBackground) }
func (t *ThemeDef) Collectible() world.Tile { return t.tile(StateCollectible) }
func (t *ThemeDef) Occupant() world.Tile    { return t.tile(StateOccupant) }

// Validate checks that every state has a single-rune glyph and a parseable
// color, and that no two states share a glyph.
func (t *ThemeDef) Validate() error {
	tiles := make([]world.Tile, 0, len(states))
	for _, state := range states {
		def, ok := t.Tiles[state]
		if !ok {
			return fmt.Errorf("%w: theme %q has no %s tile", world.ErrInvalidTheme, t.ID, state)
		}
		if utf8.RuneCountInString(def.Glyph) != 1 {
			return fmt.Errorf("%w: theme %q %s glyph %q is not one character", world.ErrInvalidTheme, t.ID, state, def.Glyph)
		}
		if _, err := ParseHexColor(def.Color); err != nil {
			return fmt.Errorf("%w: theme %q %s: %v", world.ErrInvalidTheme, t.ID, state, err)
		}
		tiles = append(tiles, t.tile(state))
	}
	if err := world.ValidateTiles(tiles...); err != nil {
		return fmt.Errorf("theme %q: %w", t.ID, err)
	}
	return nil
}

// Style returns the terminal style for a tile drawn with this theme.
// Tiles the theme does not know get the default foreground.
func (t *ThemeDef) Style(tile world.Tile) tcell.Style {
	style := tcell.StyleDefault
	if bg, err := ParseHexColor(t.BackgroundColor); err == nil {
		style = style.Background(bg)
	}
	for _, state := range states {
		if t.tile(state) != tile {
			continue
		}
		if fg, err := ParseHexColor(t.Tiles[state].Color); err == nil {
			return style.Foreground(fg)
		}
	}
	return style
}

// ParseHexColor converts "#RRGGBB" or "RRGGBB" to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %q", hex)
	}
	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return tcell.NewRGBColor(int32(rgb>>16&0xFF), int32(rgb>>8&0xFF), int32(rgb&0xFF)), nil
}
