package world

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/dungeonplot/internal/logger"
	"github.com/samdwyer/dungeonplot/internal/telemetry"
)

// Dungeon represents the game map.
type Dungeon struct {
	Width  int
	Height int
	Grid   *Grid
	Rooms  []Room
	Theme  Theme
	Stats  Stats
	src    *Source
}

// Stats summarizes one generation pass.
type Stats struct {
	Seed      int64
	Trials    int
	Links     []Link
	Corridors int
	Bridges   int
}

// NewDungeon creates a new dungeon filled with the theme's background.
// src is consumed by Generate and must not be shared with anything that
// draws from it concurrently.
func NewDungeon(width, height int, theme Theme, src *Source) *Dungeon {
	return &Dungeon{
		Width:  width,
		Height: height,
		Grid:   NewGrid(width, height, theme.Background()),
		Rooms:  make([]Room, 0),
		Theme:  theme,
		src:    src,
	}
}

// Source returns the value source the dungeon was built with. Consumers
// that run after Generate keep drawing from it so a whole session stays
// reproducible from one seed.
func (d *Dungeon) Source() *Source {
	return d.src
}

// Generate places rooms and connects them. It is a one-shot pass: calling it
// again keeps consuming the same source and yields a different layout.
func (d *Dungeon) Generate(ctx context.Context) (err error) {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "dungeon.generate")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	startTime := time.Now()
	d.Stats = Stats{Seed: d.src.Seed()}

	if err := ValidateTheme(d.Theme); err != nil {
		return err
	}
	d.Grid.Fill(d.Theme.Background())
	d.Rooms = d.Rooms[:0]

	if err := d.placeRooms(ctx); err != nil {
		return err
	}
	if err := d.connectRooms(ctx); err != nil {
		return err
	}

	span.SetAttributes(
		attribute.Int64("dungeon.seed", d.Stats.Seed),
		attribute.Int("dungeon.width", d.Width),
		attribute.Int("dungeon.height", d.Height),
		attribute.Int("dungeon.trials", d.Stats.Trials),
		attribute.Int("dungeon.room_count", len(d.Rooms)),
		attribute.Int("dungeon.corridor_count", d.Stats.Corridors),
		attribute.Int("dungeon.bridge_count", d.Stats.Bridges),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
	logger.Debug("dungeon generated",
		"seed", d.Stats.Seed,
		"rooms", len(d.Rooms),
		"corridors", d.Stats.Corridors,
		"bridges", d.Stats.Bridges,
	)
	return nil
}

func (d *Dungeon) placeRooms(ctx context.Context) error {
	_, span := telemetry.Tracer("world").Start(ctx, "dungeon.place_rooms")
	defer span.End()

	rooms, trials, err := PlaceRooms(d.Grid, d.Theme, d.src)
	d.Stats.Trials = trials
	span.SetAttributes(
		attribute.Int("dungeon.trials", trials),
		attribute.Int("dungeon.room_count", len(rooms)),
	)
	if err != nil {
		return fmt.Errorf("place rooms: %w", err)
	}
	logger.Debug("rooms placed", "trials", trials, "rooms", len(rooms))

	if len(rooms) == 0 {
		return fmt.Errorf("seed %d on %dx%d grid: %w", d.Stats.Seed, d.Width, d.Height, ErrNoRooms)
	}
	d.Rooms = rooms
	return nil
}

func (d *Dungeon) connectRooms(ctx context.Context) error {
	_, span := telemetry.Tracer("world").Start(ctx, "dungeon.connect_rooms")
	defer span.End()

	stats, err := Connect(d.Grid, d.Theme, d.Rooms, d.src)
	d.Stats.Links = stats.Links
	d.Stats.Corridors = stats.Corridors
	d.Stats.Bridges = stats.Bridges
	span.SetAttributes(
		attribute.Int("dungeon.corridor_count", stats.Corridors),
		attribute.Int("dungeon.bridge_count", stats.Bridges),
	)
	if err != nil {
		if errors.Is(err, ErrUnroutableCorridor) {
			logger.Warning("corridor could not be routed", "seed", d.Stats.Seed, "error", err)
		}
		return fmt.Errorf("connect rooms: %w", err)
	}
	return nil
}

// IsPassable returns true if the given position can be walked on.
func (d *Dungeon) IsPassable(x, y int) bool {
	t, err := d.Grid.Get(x, y)
	if err != nil {
		return false
	}
	return d.walkable(t)
}

// RoomIndexAt returns the index of the room containing the position, or -1 if not in a room.
func (d *Dungeon) RoomIndexAt(x, y int) int {
	for i, room := range d.Rooms {
		if room.Contains(x, y) {
			return i
		}
	}
	return -1
}

// Reachable reports whether to can be walked to from from, stepping over
// anything that is neither wall nor background.
func (d *Dungeon) Reachable(from, to Point) bool {
	return FloodFill(d.Grid, from, d.walkable).Has(to)
}

func (d *Dungeon) walkable(t Tile) bool {
	return t != d.Theme.Wall() && t != d.Theme.Background()
}
