package core

// Grid is the fixed activity mask of a level. Cells are stored in row-major
// order: index = y*W + x. A Grid never changes after the level starts.
type Grid struct {
	W      int
	H      int
	Active []bool
}

// NewGrid creates a grid from an activity mask. A nil or short mask leaves the
// missing cells inactive.
func NewGrid(w, h int, active []bool) *Grid {
	g := &Grid{
		W:      w,
		H:      h,
		Active: make([]bool, w*h),
	}
	copy(g.Active, active)
	return g
}

// NewFullGrid creates a grid where every cell is active.
func NewFullGrid(w, h int) *Grid {
	g := NewGrid(w, h, nil)
	for i := range g.Active {
		g.Active[i] = true
	}
	return g
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// IsActive reports whether (x, y) is an active cell. Out of bounds is false.
func (g *Grid) IsActive(x, y int) bool {
	c := C(x, y)
	if !g.InBounds(c) {
		return false
	}
	return g.Active[g.index(c)]
}

// Neighbors reports whether a and b are orthogonally adjacent.
func (g *Grid) Neighbors(a, b Coord) bool {
	return a.Adjacent(b)
}

// ActiveCount returns the number of active cells.
func (g *Grid) ActiveCount() int {
	n := 0
	for _, a := range g.Active {
		if a {
			n++
		}
	}
	return n
}

// Coords returns all coordinates ordered by row then column.
func (g *Grid) Coords() []Coord {
	coords := make([]Coord, 0, g.W*g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			coords = append(coords, C(x, y))
		}
	}
	return coords
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return NewGrid(g.W, g.H, g.Active)
}
