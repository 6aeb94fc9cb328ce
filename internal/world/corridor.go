package world

import (
	"errors"
	"fmt"
)

// ErrUnroutableCorridor is returned when bridging recursion goes deeper
// than the carver's depth ceiling.
var ErrUnroutableCorridor = errors.New("unroutable corridor")

const (
	// MaxBridgeDepth is the deepest chain of bridge rooms a single
	// connection may build before giving up.
	MaxBridgeDepth = 16

	// minOverlap is the narrowest shared span a straight corridor fits in:
	// one floor cell with a wall on either side.
	minOverlap = 3

	// bridgeSize is the side of a bridge room.
	bridgeSize = 3
)

// carver digs corridors between pairs of rooms. Bridge rooms it creates
// are drawn into the grid but never handed back to callers.
type carver struct {
	grid     *Grid
	theme    Theme
	src      *Source
	maxDepth int

	corridors int
	bridges   int
}

func newCarver(grid *Grid, theme Theme, src *Source) *carver {
	return &carver{
		grid:     grid,
		theme:    theme,
		src:      src,
		maxDepth: MaxBridgeDepth,
	}
}

// carve connects a and b with a floor path walled on both flanks.
func (c *carver) carve(a, b Room) error {
	return c.connect(a, b, 0)
}

func (c *carver) connect(a, b Room, depth int) error {
	if depth > c.maxDepth {
		return fmt.Errorf("%w: %v to %v still apart after %d bridges", ErrUnroutableCorridor, a, b, depth-1)
	}
	if b.less(a) {
		a, b = b, a
	}

	// Shared columns: dig straight down.
	if lo, hi := overlap(a.X, a.Width, b.X, b.Width); hi-lo >= minOverlap {
		return c.tunnelVertical(a, b, c.src.Uniform(lo+1, hi-1))
	}

	// Shared rows: dig straight across.
	if lo, hi := overlap(a.Y, a.Height, b.Y, b.Height); hi-lo >= minOverlap {
		return c.tunnelHorizontal(a, b, c.src.Uniform(lo+1, hi-1))
	}

	// Neither: put a bridge room on a's rows and b's columns, which
	// shares rows with a and columns with b.
	bridge := Room{X: b.X, Y: a.Y, Width: bridgeSize, Height: bridgeSize}
	if err := c.drawBridge(bridge); err != nil {
		return err
	}
	c.bridges++

	if err := c.connect(a, bridge, depth+1); err != nil {
		return err
	}
	return c.connect(bridge, b, depth+1)
}

// overlap returns the shared half-open span [lo, hi) of two spans given as
// start and length. hi <= lo means they do not overlap.
func overlap(start1, len1, start2, len2 int) (lo, hi int) {
	return max(start1, start2), min(start1+len1, start2+len2)
}

// tunnelVertical digs column x from the upper room's bottom wall to the
// lower room's top wall.
func (c *carver) tunnelVertical(a, b Room, x int) error {
	if b.Y < a.Y {
		a, b = b, a
	}
	for y := a.Y + a.Height - 1; y <= b.Y; y++ {
		if err := c.dig(Point{x, y}, Point{x - 1, y}, Point{x + 1, y}); err != nil {
			return err
		}
	}
	c.corridors++
	return nil
}

// tunnelHorizontal digs row y from the left room's right wall to the
// right room's left wall.
func (c *carver) tunnelHorizontal(a, b Room, y int) error {
	if b.X < a.X {
		a, b = b, a
	}
	for x := a.X + a.Width - 1; x <= b.X; x++ {
		if err := c.dig(Point{x, y}, Point{x, y - 1}, Point{x, y + 1}); err != nil {
			return err
		}
	}
	c.corridors++
	return nil
}

// dig turns p into floor and walls off both flanks. Floor is never
// replaced, so digging can only join regions, not split them.
func (c *carver) dig(p Point, flanks ...Point) error {
	floor := c.theme.Floor()
	t, err := c.grid.Get(p.X, p.Y)
	if err != nil {
		return err
	}
	if t == floor {
		return nil
	}
	if err := c.grid.Set(p.X, p.Y, floor); err != nil {
		return err
	}
	for _, f := range flanks {
		if err := c.wallOff(f); err != nil {
			return err
		}
	}
	return nil
}

// wallOff sets p to wall unless it is already floor.
func (c *carver) wallOff(p Point) error {
	t, err := c.grid.Get(p.X, p.Y)
	if err != nil {
		return err
	}
	if t == c.theme.Floor() {
		return nil
	}
	return c.grid.Set(p.X, p.Y, c.theme.Wall())
}

// drawBridge draws a bridge room over whatever is there. Border cells that
// are floor stay floor, the rest of the border becomes wall, and the
// center is always floor so the bridge has somewhere to connect to.
func (c *carver) drawBridge(room Room) error {
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			if room.IsBorder(x, y) {
				if err := c.wallOff(Point{x, y}); err != nil {
					return err
				}
				continue
			}
			if err := c.grid.Set(x, y, c.theme.Floor()); err != nil {
				return err
			}
		}
	}
	return nil
}
