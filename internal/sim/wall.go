package sim

// Wall is an immobile axis-aligned planar boundary, perpendicular to
// NormalAxis at Coordinate. Walls are created once at initialization and
// never mutated.
type Wall struct {
	NormalAxis  int
	Coordinate  float64
	Restitution float64
}

// createBoxWalls builds the walls of a rectangular box: four in 2D, six in
// 3D, inset from the nominal domain edges so balls never sit exactly on a
// boundary.
func createBoxWalls(ndim int, domainSize Vec, inset, restitution float64) []Wall {
	walls := make([]Wall, 0, 2*ndim)
	for axis := 0; axis < ndim; axis++ {
		walls = append(walls,
			Wall{NormalAxis: axis, Coordinate: inset, Restitution: restitution},
			Wall{NormalAxis: axis, Coordinate: domainSize[axis] - inset, Restitution: restitution},
		)
	}
	return walls
}
