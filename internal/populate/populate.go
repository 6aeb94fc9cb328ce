// Package populate places the occupant and collectibles on a generated dungeon.
package populate

import (
	"context"
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/dungeonplot/internal/logger"
	"github.com/samdwyer/dungeonplot/internal/telemetry"
	"github.com/samdwyer/dungeonplot/internal/world"
)

// ErrNoFreeFloor is returned when a collectible cannot find an untouched
// floor cell within MaxDropAttempts draws.
var ErrNoFreeFloor = errors.New("no free floor cell for collectible")

const (
	// MinCollectibles is the lower bound of the collectible count draw.
	MinCollectibles = 5
	// MaxDropAttempts bounds the room/point draws per collectible.
	MaxDropAttempts = 1000
)

// Theme extends world.Theme with the tiles written after generation.
type Theme interface {
	world.Theme
	Collectible() world.Tile
	Occupant() world.Tile
}

// BasicTheme is a Theme built from plain values.
type BasicTheme struct {
	world.BasicTheme
	CollectibleTile world.Tile
	OccupantTile    world.Tile
}

// DefaultTheme returns the built-in ASCII theme.
func DefaultTheme() BasicTheme {
	return BasicTheme{
		BasicTheme:      world.DefaultTheme(),
		CollectibleTile: world.TileCollectible,
		OccupantTile:    world.TileOccupant,
	}
}

func (t BasicTheme) Collectible() world.Tile { return t.CollectibleTile }
func (t BasicTheme) Occupant() world.Tile    { return t.OccupantTile }

// CollectibleCount draws how many collectibles to drop for roomCount rooms.
func CollectibleCount(roomCount int, src *world.Source) int {
	if roomCount <= MinCollectibles {
		return roomCount
	}
	return src.Uniform(MinCollectibles, roomCount)
}

// SpawnPoint picks a room uniformly and writes the occupant at its center.
func SpawnPoint(grid *world.Grid, theme Theme, rooms []world.Room, src *world.Source) (world.Point, int, error) {
	if len(rooms) == 0 {
		return world.Point{}, -1, world.ErrNoRooms
	}
	idx := src.Uniform(0, len(rooms))
	p := rooms[idx].CenterPoint()
	if err := grid.Set(p.X, p.Y, theme.Occupant()); err != nil {
		return world.Point{}, -1, err
	}
	return p, idx, nil
}

// DropCollectibles writes count collectibles onto untouched floor cells and
// returns their positions in drop order.
func DropCollectibles(grid *world.Grid, theme Theme, rooms []world.Room, src *world.Source, count int) ([]world.Point, error) {
	if len(rooms) == 0 {
		return nil, world.ErrNoRooms
	}
	drops := make([]world.Point, 0, count)
	for i := 0; i < count; i++ {
		p, err := findFreeFloor(grid, theme, rooms, src)
		if err != nil {
			return drops, fmt.Errorf("collectible %d of %d: %w", i+1, count, err)
		}
		if err := grid.Set(p.X, p.Y, theme.Collectible()); err != nil {
			return drops, err
		}
		drops = append(drops, p)
	}
	return drops, nil
}

func findFreeFloor(grid *world.Grid, theme Theme, rooms []world.Room, src *world.Source) (world.Point, error) {
	for attempt := 0; attempt < MaxDropAttempts; attempt++ {
		room := rooms[src.Uniform(0, len(rooms))]
		p := room.RandomInteriorPoint(src)
		t, err := grid.Get(p.X, p.Y)
		if err != nil {
			return world.Point{}, err
		}
		if t == theme.Floor() {
			return p, nil
		}
	}
	return world.Point{}, ErrNoFreeFloor
}

// Layout is the populated state of one dungeon.
type Layout struct {
	Spawn        world.Point
	SpawnRoom    int
	Collectibles []world.Point

	grid      *world.Grid
	theme     Theme
	remaining mapset.Set[world.Point]
	collected []world.Point
}

// Populate draws the collectible count, spawns the occupant and drops the
// collectibles, in that order, from the dungeon's own source.
func Populate(ctx context.Context, d *world.Dungeon, theme Theme) (layout *Layout, err error) {
	_, span := telemetry.Tracer("populate").Start(ctx, "dungeon.populate")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := world.ValidateTiles(theme.Wall(), theme.Floor(), theme.Background(),
		theme.Collectible(), theme.Occupant()); err != nil {
		return nil, err
	}

	src := d.Source()
	count := CollectibleCount(len(d.Rooms), src)

	spawn, spawnRoom, err := SpawnPoint(d.Grid, theme, d.Rooms, src)
	if err != nil {
		return nil, fmt.Errorf("spawn: %w", err)
	}

	drops, err := DropCollectibles(d.Grid, theme, d.Rooms, src, count)
	if err != nil {
		return nil, fmt.Errorf("drop collectibles: %w", err)
	}

	layout = &Layout{
		Spawn:        spawn,
		SpawnRoom:    spawnRoom,
		Collectibles: drops,
		grid:         d.Grid,
		theme:        theme,
		remaining:    mapset.New[world.Point](),
	}
	for _, p := range drops {
		layout.remaining.Put(p)
	}

	span.SetAttributes(
		attribute.Int("populate.spawn_room", spawnRoom),
		attribute.Int("populate.collectible_count", len(drops)),
	)
	logger.Debug("dungeon populated", "spawn", spawn, "collectibles", len(drops))
	return layout, nil
}

// IsCollectible reports whether p holds a collectible that is still there.
func (l *Layout) IsCollectible(p world.Point) bool {
	return l.remaining.Has(p)
}

// Collect takes the collectible at p, turning the cell back into floor.
// It returns false if there is nothing to collect at p.
func (l *Layout) Collect(p world.Point) bool {
	if !l.remaining.Has(p) {
		return false
	}
	if err := l.grid.Set(p.X, p.Y, l.theme.Floor()); err != nil {
		return false
	}
	l.remaining.Remove(p)
	l.collected = append(l.collected, p)
	return true
}

// Remaining returns how many collectibles have not been taken.
func (l *Layout) Remaining() int {
	return l.remaining.Size()
}

// Collected returns the taken collectibles in the order they were taken.
func (l *Layout) Collected() []world.Point {
	return l.collected
}
