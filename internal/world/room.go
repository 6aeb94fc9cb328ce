package world

import "math"

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Room represents a rectangular room in the dungeon. The outermost ring of
// the rectangle is wall; everything inside it is floor.
type Room struct {
	X, Y          int // Top-left corner position
	Width, Height int // Dimensions of the room, walls included
}

// Center returns the center coordinates of the room.
func (r Room) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// CenterPoint returns Center as a Point.
func (r Room) CenterPoint() Point {
	x, y := r.Center()
	return Point{X: x, Y: y}
}

// Contains returns true if the given point is inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// IsBorder returns true if the point lies on the room's wall ring.
func (r Room) IsBorder(x, y int) bool {
	return r.Contains(x, y) &&
		(x == r.X || x == r.X+r.Width-1 || y == r.Y || y == r.Y+r.Height-1)
}

// Interior returns the floor rectangle inside the walls.
func (r Room) Interior() Room {
	return Room{X: r.X + 1, Y: r.Y + 1, Width: r.Width - 2, Height: r.Height - 2}
}

// Buffered returns the footprint grown by one cell on every side.
func (r Room) Buffered() Room {
	return Room{X: r.X - 1, Y: r.Y - 1, Width: r.Width + 2, Height: r.Height + 2}
}

// Intersects returns true if this room overlaps with another room.
func (r Room) Intersects(other Room) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// DistanceTo returns the Euclidean distance between the two centers.
func (r Room) DistanceTo(other Room) float64 {
	return math.Sqrt(float64(r.distanceSq(other)))
}

// distanceSq orders rooms exactly like DistanceTo without leaving integers.
func (r Room) distanceSq(other Room) int {
	x1, y1 := r.Center()
	x2, y2 := other.Center()
	dx, dy := x2-x1, y2-y1
	return dx*dx + dy*dy
}

// RandomInteriorPoint draws a uniformly random floor cell of the room.
func (r Room) RandomInteriorPoint(src *Source) Point {
	in := r.Interior()
	return Point{
		X: src.Uniform(in.X, in.X+in.Width),
		Y: src.Uniform(in.Y, in.Y+in.Height),
	}
}

// less orders rooms by origin, x first.
func (r Room) less(other Room) bool {
	if r.X != other.X {
		return r.X < other.X
	}
	return r.Y < other.Y
}
