package sim

import "math"

// overlapDelta is the slack applied to the no-overlap invariant check, to
// absorb floating-point rounding without masking a genuine overlap.
const overlapDelta = 1e-9

// checkOverlap evaluates peek-positions at t for every unordered ball pair
// and returns the first violating pair found, or nil if none.
func checkOverlap(balls []*Ball, t float64, ndim int, gravity bool) *OverlapError {
	positions := make([]Vec, len(balls))
	for i, b := range balls {
		positions[i], _ = b.peek(t, ndim, gravity)
	}
	for i := 0; i < len(balls); i++ {
		for j := i + 1; j < len(balls); j++ {
			dist := positions[i].Minus(positions[j]).Length()
			minDist := balls[i].Radius + balls[j].Radius - overlapDelta
			if dist < minDist {
				return &OverlapError{
					Time:     t,
					BallI:    balls[i].ID,
					BallJ:    balls[j].ID,
					Distance: math.Abs(dist),
					MinDist:  minDist,
				}
			}
		}
	}
	return nil
}
