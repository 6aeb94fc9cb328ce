package world

import (
	"errors"
	"fmt"
)

// ErrNoRooms is returned when placement produced nothing to connect.
var ErrNoRooms = errors.New("no rooms generated")

// Link is one connection made by Connect, as indexes into the room list.
type Link struct {
	From, To int
}

// ConnectStats describes the corridors Connect dug.
type ConnectStats struct {
	Links     []Link
	Corridors int // straight tunnels, bridge legs included
	Bridges   int // bridge rooms drawn
}

// Connect joins every room to the rest with corridors.
//
// The first room seeds a frontier stack. Each step pops the most recently
// connected room, picks the unvisited room whose center is nearest to it
// (first one wins on ties), digs a corridor between them and pushes the new
// room. This yields a spanning tree over the rooms, biased towards chains;
// it is not a minimum spanning tree.
func Connect(grid *Grid, theme Theme, rooms []Room, src *Source) (ConnectStats, error) {
	var stats ConnectStats
	if len(rooms) == 0 {
		return stats, ErrNoRooms
	}

	c := newCarver(grid, theme, src)
	visited := make([]bool, len(rooms))
	frontier := []int{0}
	visited[0] = true

	for i := 0; i < len(rooms)-1; i++ {
		anchor := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		nearest, best := -1, 0
		for j, room := range rooms {
			if visited[j] {
				continue
			}
			if d := rooms[anchor].distanceSq(room); nearest < 0 || d < best {
				nearest, best = j, d
			}
		}

		if err := c.carve(rooms[anchor], rooms[nearest]); err != nil {
			stats.Corridors, stats.Bridges = c.corridors, c.bridges
			return stats, fmt.Errorf("connect room %d to room %d: %w", anchor, nearest, err)
		}
		stats.Links = append(stats.Links, Link{From: anchor, To: nearest})

		visited[nearest] = true
		frontier = append(frontier, nearest)
	}

	stats.Corridors, stats.Bridges = c.corridors, c.bridges
	return stats, nil
}
