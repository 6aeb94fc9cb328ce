package world

import "github.com/zyedidia/generic/mapset"

// FloodFill returns every cell reachable from start through 4-neighbour
// steps onto tiles accepted by passable. The set is empty when start is
// out of bounds or not passable itself.
func FloodFill(grid *Grid, start Point, passable func(Tile) bool) mapset.Set[Point] {
	visited := mapset.New[Point]()
	if t, err := grid.Get(start.X, start.Y); err != nil || !passable(t) {
		return visited
	}

	queue := []Point{start}
	visited.Put(start)
	dirs := []Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range dirs {
			next := Point{cur.X + d.X, cur.Y + d.Y}
			if visited.Has(next) {
				continue
			}
			t, err := grid.Get(next.X, next.Y)
			if err != nil || !passable(t) {
				continue
			}
			visited.Put(next)
			queue = append(queue, next)
		}
	}

	return visited
}
