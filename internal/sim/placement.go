package sim

import "math/rand"

// placeBalls seats numBalls balls centered in distinct unit cells in
// row-major order, with velocities sampled i.i.d. from N(0,1) per axis
// using the supplied seed. This is the external placement policy named in
// spec.md — the core only validates non-overlap, it does not choose
// positions itself.
func placeBalls(ndim, numBalls int, domainSize Vec, radius float64, seed int64) ([]*Ball, error) {
	cellsPerAxis := [MaxDim]int{}
	total := 1
	for axis := 0; axis < ndim; axis++ {
		cellsPerAxis[axis] = int(domainSize[axis])
		total *= cellsPerAxis[axis]
	}
	if numBalls > total {
		return nil, &PlacementError{NumBalls: numBalls, NumCells: total, BallRadio: radius}
	}

	rng := rand.New(rand.NewSource(seed))
	balls := make([]*Ball, numBalls)

	for i := 0; i < numBalls; i++ {
		var cell Cell
		var position Vec
		switch ndim {
		case 2:
			cx := i % cellsPerAxis[0]
			cy := (i / cellsPerAxis[0]) % cellsPerAxis[1]
			cell = Cell{cx, cy}
			position = Vec{float64(cx) + 0.5, float64(cy) + 0.5}
		case 3:
			cellsPerLayer := cellsPerAxis[0] * cellsPerAxis[1]
			cx := i % cellsPerAxis[0]
			cy := (i / cellsPerAxis[0]) % cellsPerAxis[1]
			cz := i / cellsPerLayer
			cell = Cell{cx, cy, cz}
			position = Vec{float64(cx) + 0.5, float64(cy) + 0.5, float64(cz) + 0.5}
		}

		var velocity Vec
		for axis := 0; axis < ndim; axis++ {
			velocity[axis] = rng.NormFloat64()
		}

		balls[i] = &Ball{
			ID:       i,
			Position: position,
			Velocity: velocity,
			Radius:   radius,
			Cell:     cell,
		}
	}

	return balls, nil
}
