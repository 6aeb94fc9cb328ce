package ui

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeonplot/internal/world"
)

// Preview draws grid and blocks until the user presses q, Esc or Ctrl-C,
// or ctx is cancelled. Resizes trigger a full redraw.
func Preview(ctx context.Context, screen *Screen, renderer *Renderer, grid *world.Grid, status string) error {
	stop := context.AfterFunc(ctx, func() {
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	renderer.Render(grid, status)
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			if err := ctx.Err(); err != nil {
				return err
			}
		case *tcell.EventResize:
			screen.Sync()
			renderer.Render(grid, status)
		case *tcell.EventKey:
			if isQuitKey(ev) {
				return nil
			}
		}
	}
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
