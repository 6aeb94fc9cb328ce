package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/samdwyer/dungeonplot/internal/world"
)

// Styler maps a tile to its terminal style.
type Styler interface {
	Style(t world.Tile) tcell.Style
}

// Renderer handles drawing a grid to the screen.
type Renderer struct {
	screen    *Screen
	styler    Styler
	cellWidth int // terminal columns per grid cell
}

// NewRenderer creates a renderer. glyphs are the tiles that may appear on
// the grid; every cell is as wide as the widest of them.
func NewRenderer(screen *Screen, styler Styler, glyphs ...world.Tile) *Renderer {
	width := 1
	for _, g := range glyphs {
		if w := runewidth.RuneWidth(g.Rune()); w > width {
			width = w
		}
	}
	return &Renderer{screen: screen, styler: styler, cellWidth: width}
}

// CellWidth returns the number of terminal columns used per grid cell.
func (r *Renderer) CellWidth() int {
	return r.cellWidth
}

// Render draws the grid with a status line underneath.
func (r *Renderer) Render(grid *world.Grid, status string) {
	r.screen.Clear()

	for y := 0; y < grid.Height(); y++ {
		col := 0
		for _, ch := range grid.Row(y) {
			tile := world.Tile(ch)
			style := r.styler.Style(tile)
			r.screen.SetContent(col, y, ch, style)
			// Pad narrow glyphs so columns line up.
			for pad := runewidth.RuneWidth(ch); pad < r.cellWidth; pad++ {
				r.screen.SetContent(col+pad, y, ' ', style)
			}
			col += r.cellWidth
		}
	}

	r.RenderMessage(status, grid.Height()+1)
	r.screen.Show()
}

// RenderMessage displays a message on row y if it fits on screen.
func (r *Renderer) RenderMessage(msg string, y int) {
	if _, h := r.screen.Size(); y >= h {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	x := 0
	for _, ch := range msg {
		r.screen.SetContent(x, y, ch, style)
		x += runewidth.RuneWidth(ch)
	}
}
