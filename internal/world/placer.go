package world

const (
	// Room size range, upper bound exclusive.
	MinRoomSize = 6
	MaxRoomSize = 13

	// Trial budget range, upper bound exclusive.
	MinTrials = 1000
	MaxTrials = 1500
)

// PlaceRooms fills grid with rooms by rejection sampling. It draws a trial
// budget, then for every trial samples an origin and a size and keeps the
// candidate only if its buffered footprint stays inside the grid and covers
// no wall or floor. Accepted rooms are drawn into the grid and returned in
// acceptance order together with the trial budget that was drawn.
//
// The number of rooms depends on the seed. It is not a parameter.
func PlaceRooms(grid *Grid, theme Theme, src *Source) ([]Room, int, error) {
	trials := src.Uniform(MinTrials, MaxTrials)
	rooms := make([]Room, 0)

	for i := 0; i < trials; i++ {
		candidate := Room{
			X:      src.Uniform(0, grid.Width()),
			Y:      src.Uniform(0, grid.Height()),
			Width:  src.Uniform(MinRoomSize, MaxRoomSize),
			Height: src.Uniform(MinRoomSize, MaxRoomSize),
		}
		if collides(grid, theme, rooms, candidate) {
			continue
		}
		if err := drawRoom(grid, theme, candidate); err != nil {
			return nil, trials, err
		}
		rooms = append(rooms, candidate)
	}

	return rooms, trials, nil
}

// collides reports whether room cannot be placed: its buffered footprint
// leaves the grid, touches a wall or floor cell, or meets the buffered
// footprint of an accepted room.
func collides(grid *Grid, theme Theme, accepted []Room, room Room) bool {
	b := room.Buffered()
	if b.X < 0 || b.Y < 0 || b.X+b.Width > grid.Width() || b.Y+b.Height > grid.Height() {
		return true
	}
	for _, r := range accepted {
		if b.Intersects(r.Buffered()) {
			return true
		}
	}
	wall, floor := theme.Wall(), theme.Floor()
	for y := b.Y; y < b.Y+b.Height; y++ {
		for x := b.X; x < b.X+b.Width; x++ {
			if t := grid.tiles[y][x]; t == wall || t == floor {
				return true
			}
		}
	}
	return false
}

// drawRoom writes the wall ring and floor interior of room.
func drawRoom(grid *Grid, theme Theme, room Room) error {
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			t := theme.Floor()
			if room.IsBorder(x, y) {
				t = theme.Wall()
			}
			if err := grid.Set(x, y, t); err != nil {
				return err
			}
		}
	}
	return nil
}
