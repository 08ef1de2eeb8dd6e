package sim

import "math"

// epsilon is the time tolerance used to reject solutions at or before the
// current simulation time, so a predictor never re-triggers the event that
// just fired. predictTransit instead accepts a crossing up to epsilon in the
// past, provided the ball is moving toward that boundary (see its doc).
const epsilon = 1e-12

// velocityZeroSq is the squared-velocity threshold below which relative
// motion is treated as zero (equivalent to 1e-12 on |v|).
const velocityZeroSq = 1e-24

// predictBallBall returns the earliest future time two balls collide, or
// (0, false) if they never do. currentTime must be >= both balls' LocalTime.
func predictBallBall(b1, b2 *Ball, currentTime float64, ndim int, gravity bool) (float64, bool) {
	r := b1.Radius + b2.Radius

	if !gravity || ndim < 2 {
		pos1, vel1 := b1.peek(currentTime, ndim, gravity)
		pos2, vel2 := b2.peek(currentTime, ndim, gravity)

		relPos := pos2.Minus(pos1)
		relVel := vel2.Minus(vel1)

		posDotVel := relPos.Dot(relVel)
		if posDotVel > 0 {
			return 0, false
		}

		relVelSq := relVel.Dot(relVel)
		if relVelSq < velocityZeroSq {
			return 0, false
		}

		a := relVelSq
		b := 2 * posDotVel
		c := relPos.Dot(relPos) - r*r

		t, ok := smallestPositiveRoot(a, b, c, epsilon)
		if !ok {
			return 0, false
		}
		return currentTime + t, true
	}

	// Gravity: d(t) = A + B*t is affine since the t^2 term cancels between
	// the two bodies (they share the same g). Follows the ball1/ball2
	// local-time-aware derivation; see predictors_test.go scenario 5.
	g := gravityVec(ndim, gravity)
	x0, v0, t0 := b1.Position, b1.Velocity, b1.LocalTime
	x1, v1, t1 := b2.Position, b2.Velocity, b2.LocalTime

	dx := x1.Minus(x0)
	dv := v1.Minus(v0)

	A := dx.Plus(v0.Times(t0)).Minus(v1.Times(t1)).Plus(g.Times(0.5 * (t1*t1 - t0*t0)))
	B := dv.Plus(g.Times(t0 - t1))

	aCoeff := B.Dot(B)
	bCoeff := 2 * A.Dot(B)
	cCoeff := A.Dot(A) - r*r

	if math.Abs(aCoeff) < velocityZeroSq {
		if math.Abs(bCoeff) < velocityZeroSq {
			return 0, false
		}
		t := -cCoeff / bCoeff
		if t > currentTime+epsilon {
			return t, true
		}
		return 0, false
	}

	t, ok := smallestRootAfter(aCoeff, bCoeff, cCoeff, currentTime, epsilon)
	if !ok {
		return 0, false
	}
	return t, true
}

// predictBallWall returns the earliest future time ball collides with
// wall, or (0, false) if it never does.
func predictBallWall(b *Ball, w Wall, currentTime float64, ndim int, gravity bool) (float64, bool) {
	pos, vel := b.peek(currentTime, ndim, gravity)
	axis := w.NormalAxis

	ballToWall := w.Coordinate - pos[axis]
	var collisionCoord float64
	if ballToWall > 0 {
		collisionCoord = w.Coordinate - b.Radius
	} else {
		collisionCoord = w.Coordinate + b.Radius
	}

	velocityComponent := vel[axis]

	var tau float64
	var ok bool
	if axis == 1 && gravity {
		a := 0.5
		b2 := -vel[1]
		c := collisionCoord - pos[1]
		tau, ok = smallestPositiveRoot(a, b2, c, epsilon)
	} else {
		if math.Abs(velocityComponent) < epsilon {
			return 0, false
		}
		t := (collisionCoord - pos[axis]) / velocityComponent
		if t <= epsilon {
			return 0, false
		}
		tau, ok = t, true
	}
	if !ok {
		return 0, false
	}
	return currentTime + tau, true
}

// predictTransit returns the earliest future cell-boundary crossing and
// the resulting cell, or (0, Cell{}, false) if the ball never crosses one
// (e.g. it is stationary). Ties across axes resolve in ascending axis
// order: the first axis to report the minimum time wins. A boundary counts
// only while the ball moves toward it, so the boundary just crossed is not
// reported again, while a second boundary reached at the same instant (a
// corner crossing) is reported at currentTime.
func predictTransit(b *Ball, currentTime float64, ndim int, gravity bool, cellSize float64) (float64, Cell, bool) {
	pos, vel := b.peek(currentTime, ndim, gravity)

	haveEarliest := false
	var earliest float64
	var newCell Cell

	for axis := 0; axis < ndim; axis++ {
		velocityComponent := vel[axis]
		if math.Abs(velocityComponent) < epsilon && !(axis == 1 && gravity) {
			continue
		}

		currentCellCoord := b.Cell[axis]
		leftBoundary := float64(currentCellCoord) * cellSize
		rightBoundary := float64(currentCellCoord+1) * cellSize

		type candidate struct {
			boundary float64
			newCoord int
		}
		candidates := [2]candidate{
			{leftBoundary, currentCellCoord - 1},
			{rightBoundary, currentCellCoord + 1},
		}

		if axis == 1 && gravity {
			for _, cand := range candidates {
				a := -0.5
				bCoeff := vel[1]
				c := pos[1] - cand.boundary
				discriminant := bCoeff*bCoeff - 4*a*c
				if discriminant < 0 {
					continue
				}
				sqrtD := math.Sqrt(discriminant)
				for _, t := range [2]float64{(-bCoeff + sqrtD) / (2 * a), (-bCoeff - sqrtD) / (2 * a)} {
					movingUp := bCoeff-t > 0
					if (cand.newCoord > currentCellCoord) != movingUp || t <= -epsilon {
						continue
					}
					t = math.Max(t, 0)
					if !haveEarliest || t < earliest {
						haveEarliest = true
						earliest = t
						newCell = b.Cell
						newCell[axis] = cand.newCoord
					}
				}
			}
		} else {
			for _, cand := range candidates {
				if (cand.newCoord > currentCellCoord) != (velocityComponent > 0) {
					continue
				}
				t := (cand.boundary - pos[axis]) / velocityComponent
				if t <= -epsilon {
					continue
				}
				t = math.Max(t, 0)
				if !haveEarliest || t < earliest {
					haveEarliest = true
					earliest = t
					newCell = b.Cell
					newCell[axis] = cand.newCoord
				}
			}
		}
	}

	if !haveEarliest {
		return 0, Cell{}, false
	}
	return currentTime + earliest, newCell, true
}

// smallestPositiveRoot solves a*t^2 + b*t + c = 0 and returns the smallest
// root strictly greater than tol, guarding against a negative discriminant
// and near-zero leading coefficient (falling back to the linear solution).
func smallestPositiveRoot(a, b, c, tol float64) (float64, bool) {
	if math.Abs(a) < velocityZeroSq {
		if math.Abs(b) < velocityZeroSq {
			return 0, false
		}
		t := -c / b
		if t > tol {
			return t, true
		}
		return 0, false
	}
	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, false
	}
	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)

	found := false
	var best float64
	for _, t := range [2]float64{t1, t2} {
		if t > tol && (!found || t < best) {
			found = true
			best = t
		}
	}
	return best, found
}

// smallestRootAfter solves a*t^2 + b*t + c = 0 for the smallest root
// strictly greater than currentTime+tol (roots are absolute times, not
// offsets from currentTime).
func smallestRootAfter(a, b, c, currentTime, tol float64) (float64, bool) {
	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, false
	}
	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)

	found := false
	var best float64
	for _, t := range [2]float64{t1, t2} {
		if t > currentTime+tol && (!found || t < best) {
			found = true
			best = t
		}
	}
	return best, found
}
