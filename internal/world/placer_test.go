package world

import (
	"reflect"
	"testing"
)

func TestPlaceRoomsDeterministic(t *testing.T) {
	theme := DefaultTheme()
	g1 := NewGrid(DefaultWidth, DefaultHeight, theme.Background())
	g2 := NewGrid(DefaultWidth, DefaultHeight, theme.Background())

	r1, t1, err := PlaceRooms(g1, theme, NewSource(42))
	if err != nil {
		t.Fatalf("PlaceRooms: %v", err)
	}
	r2, t2, err := PlaceRooms(g2, theme, NewSource(42))
	if err != nil {
		t.Fatalf("PlaceRooms: %v", err)
	}

	if t1 != t2 {
		t.Errorf("trial budget differs: %d != %d", t1, t2)
	}
	if t1 < MinTrials || t1 >= MaxTrials {
		t.Errorf("trial budget %d outside [%d,%d)", t1, MinTrials, MaxTrials)
	}
	if !reflect.DeepEqual(r1, r2) {
		t.Errorf("rooms differ:\n%v\n%v", r1, r2)
	}
	if !g1.Equal(g2) {
		t.Error("grids differ")
	}
}

func TestPlaceRoomsSizes(t *testing.T) {
	theme := DefaultTheme()
	for seed := int64(0); seed < 10; seed++ {
		g := NewGrid(DefaultWidth, DefaultHeight, theme.Background())
		rooms, _, err := PlaceRooms(g, theme, NewSource(seed))
		if err != nil {
			t.Fatalf("seed=%d: PlaceRooms: %v", seed, err)
		}
		if len(rooms) == 0 {
			t.Fatalf("seed=%d: no rooms placed", seed)
		}
		for i, r := range rooms {
			if r.Width < MinRoomSize || r.Width >= MaxRoomSize || r.Height < MinRoomSize || r.Height >= MaxRoomSize {
				t.Errorf("seed=%d: room %d %+v has out-of-range size", seed, i, r)
			}
		}
	}
}

func TestCollides(t *testing.T) {
	theme := DefaultTheme()
	grid := NewGrid(20, 20, theme.Background())
	existing := Room{X: 2, Y: 2, Width: 6, Height: 6} // cells [2,8)
	if err := drawRoom(grid, theme, existing); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		room Room
		want bool
	}{
		{"clear", Room{X: 10, Y: 10, Width: 6, Height: 6}, false},
		{"one gap cell", Room{X: 9, Y: 2, Width: 6, Height: 6}, true},
		{"two gap cells", Room{X: 10, Y: 2, Width: 6, Height: 6}, false},
		{"touching buffer", Room{X: 8, Y: 2, Width: 6, Height: 6}, true},
		{"overlapping", Room{X: 5, Y: 5, Width: 6, Height: 6}, true},
		{"left edge", Room{X: 0, Y: 10, Width: 6, Height: 6}, true},
		{"top edge", Room{X: 10, Y: 0, Width: 6, Height: 6}, true},
		{"right edge fits", Room{X: 13, Y: 10, Width: 6, Height: 6}, false},
		{"right edge", Room{X: 14, Y: 10, Width: 6, Height: 6}, true},
		{"bottom edge", Room{X: 10, Y: 14, Width: 6, Height: 6}, true},
		{"past grid", Room{X: 18, Y: 18, Width: 6, Height: 6}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collides(grid, theme, []Room{existing}, tt.room); got != tt.want {
				t.Errorf("collides(%+v) = %v, want %v", tt.room, got, tt.want)
			}
		})
	}
}

func TestDrawRoom(t *testing.T) {
	theme := DefaultTheme()
	grid := NewGrid(12, 12, theme.Background())
	room := Room{X: 2, Y: 3, Width: 6, Height: 7}
	if err := drawRoom(grid, theme, room); err != nil {
		t.Fatalf("drawRoom: %v", err)
	}

	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			want := TileBackground
			switch {
			case room.IsBorder(x, y):
				want = TileWall
			case room.Contains(x, y):
				want = TileFloor
			}
			if got := tileAt(t, grid, x, y); got != want {
				t.Errorf("(%d,%d) = %q, want %q", x, y, got, want)
			}
		}
	}
}

// TestCollidesBufferOnBackground covers a buffer that shares only
// background cells with an accepted room's buffer.
func TestCollidesBufferOnBackground(t *testing.T) {
	theme := DefaultTheme()
	grid := NewGrid(DefaultWidth, DefaultHeight, theme.Background())
	existing := Room{X: 46, Y: 1, Width: 8, Height: 8} // rows [1,9)
	if err := drawRoom(grid, theme, existing); err != nil {
		t.Fatal(err)
	}
	// One empty row below the existing wall: no drawn cell is touched, but
	// both buffers cover row 9.
	candidate := Room{X: 50, Y: 10, Width: 7, Height: 9}

	if !collides(grid, theme, []Room{existing}, candidate) {
		t.Errorf("collides(%+v) = false next to %+v", candidate, existing)
	}
	if collides(grid, theme, nil, candidate) {
		t.Errorf("collides(%+v) = true on an empty room list", candidate)
	}
}

func TestPlaceRoomsBuffersDisjoint(t *testing.T) {
	theme := DefaultTheme()
	for seed := int64(0); seed < 50; seed++ {
		g := NewGrid(DefaultWidth, DefaultHeight, theme.Background())
		rooms, _, err := PlaceRooms(g, theme, NewSource(seed))
		if err != nil {
			t.Fatalf("seed=%d: PlaceRooms: %v", seed, err)
		}
		for i := 0; i < len(rooms); i++ {
			for j := i + 1; j < len(rooms); j++ {
				if rooms[i].Buffered().Intersects(rooms[j].Buffered()) {
					t.Errorf("seed=%d: buffers of room %d %+v and room %d %+v intersect",
						seed, i, rooms[i], j, rooms[j])
				}
			}
		}
	}
}
