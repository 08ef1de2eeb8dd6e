package sim

// Grid is the axis-aligned unit-cell partition of the simulation domain.
// Cell size is fixed at 1.0, so it owns ceil(domainSize[axis]) cells per
// axis. Each cell's membership set is a map from ball id to struct{}, kept
// persistent across the whole run rather than rebuilt per frame.
type Grid struct {
	ndim     int
	numCells [MaxDim]int
	cells    map[Cell]map[int]struct{}
}

func newGrid(ndim int, domainSize Vec) *Grid {
	g := &Grid{
		ndim:  ndim,
		cells: make(map[Cell]map[int]struct{}),
	}
	for axis := 0; axis < ndim; axis++ {
		n := int(ceilPositive(domainSize[axis]))
		if n < 1 {
			n = 1
		}
		g.numCells[axis] = n
	}
	return g
}

func ceilPositive(x float64) float64 {
	n := float64(int(x))
	if n < x {
		n++
	}
	return n
}

// positionToCell clamps a position into the grid's cell coordinates.
func (g *Grid) positionToCell(p Vec) Cell {
	var c Cell
	for axis := 0; axis < g.ndim; axis++ {
		coord := int(p[axis])
		if coord < 0 {
			coord = 0
		}
		if coord > g.numCells[axis]-1 {
			coord = g.numCells[axis] - 1
		}
		c[axis] = coord
	}
	return c
}

func (g *Grid) isValidCell(c Cell) bool {
	for axis := 0; axis < g.ndim; axis++ {
		if c[axis] < 0 || c[axis] >= g.numCells[axis] {
			return false
		}
	}
	return true
}

func (g *Grid) insert(id int, cell Cell) {
	set, ok := g.cells[cell]
	if !ok {
		set = make(map[int]struct{})
		g.cells[cell] = set
	}
	set[id] = struct{}{}
}

func (g *Grid) remove(id int, cell Cell) {
	if set, ok := g.cells[cell]; ok {
		delete(set, id)
	}
}

func (g *Grid) move(id int, oldCell, newCell Cell) {
	g.remove(id, oldCell)
	g.insert(id, newCell)
}

// membership reports, for test/invariant use, whether ball id is recorded
// in exactly the given cell's set.
func (g *Grid) membership(id int, cell Cell) bool {
	set, ok := g.cells[cell]
	if !ok {
		return false
	}
	_, present := set[id]
	return present
}

var offsets3 = [3]int{-1, 0, 1}

// neighbors returns the union of occupants of the 3^ndim cells centered on
// cell (bounded at domain edges).
func (g *Grid) neighbors(cell Cell) []int {
	var out []int
	switch g.ndim {
	case 2:
		for _, di := range offsets3 {
			for _, dj := range offsets3 {
				n := Cell{cell[0] + di, cell[1] + dj}
				if g.isValidCell(n) {
					out = append(out, keysOf(g.cells[n])...)
				}
			}
		}
	case 3:
		for _, di := range offsets3 {
			for _, dj := range offsets3 {
				for _, dk := range offsets3 {
					n := Cell{cell[0] + di, cell[1] + dj, cell[2] + dk}
					if g.isValidCell(n) {
						out = append(out, keysOf(g.cells[n])...)
					}
				}
			}
		}
	}
	return out
}

// incomingNeighbors returns the occupants of cells that are neighbors of
// newCell but were not neighbors of oldCell: for a single-axis step, the
// leading face of 3 (2D) or 9 (3D) cells.
func (g *Grid) incomingNeighbors(oldCell, newCell Cell) []int {
	var out []int
	for axis := 0; axis < g.ndim; axis++ {
		movement := newCell[axis] - oldCell[axis]
		if movement == 0 {
			continue
		}
		leading := newCell[axis] + movement
		switch g.ndim {
		case 2:
			other := 1 - axis
			for _, d := range offsets3 {
				var n Cell
				n[axis] = leading
				n[other] = newCell[other] + d
				if g.isValidCell(n) {
					out = append(out, keysOf(g.cells[n])...)
				}
			}
		case 3:
			var others [2]int
			i := 0
			for a := 0; a < 3; a++ {
				if a != axis {
					others[i] = a
					i++
				}
			}
			for _, d0 := range offsets3 {
				for _, d1 := range offsets3 {
					var n Cell
					n[axis] = leading
					n[others[0]] = newCell[others[0]] + d0
					n[others[1]] = newCell[others[1]] + d1
					if g.isValidCell(n) {
						out = append(out, keysOf(g.cells[n])...)
					}
				}
			}
		}
	}
	return out
}

func keysOf(set map[int]struct{}) []int {
	if len(set) == 0 {
		return nil
	}
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
