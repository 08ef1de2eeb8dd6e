package sim

// resolveBallBall updates both balls' velocities for an elastic (or
// restitution-scaled) equal-mass collision. Returns false, without
// modifying anything, if the balls are already separating along the
// normal — a robustness guard for numerical grazing. grazeGuard, if
// non-nil, is incremented whenever that guard actually fires.
func resolveBallBall(b1, b2 *Ball, restitution float64, grazeGuard *uint64) bool {
	relPos := b2.Position.Minus(b1.Position)
	normal := relPos.Normalized(Vec{1, 0, 0})

	relVel := b2.Velocity.Minus(b1.Velocity)
	velAlongNormal := relVel.Dot(normal)

	if velAlongNormal >= 0 {
		if grazeGuard != nil {
			*grazeGuard++
		}
		return false
	}

	delta := normal.Times(0.5 * (1 + restitution) * velAlongNormal)
	b1.Velocity = b1.Velocity.Plus(delta)
	b2.Velocity = b2.Velocity.Minus(delta)
	return true
}

// resolveBallWall updates the ball's velocity for a wall collision.
// Returns false, without modifying the ball, if it is already moving away
// from the wall.
func resolveBallWall(b *Ball, w Wall, grazeGuard *uint64) bool {
	var normal Vec
	if b.Position[w.NormalAxis] < w.Coordinate {
		normal[w.NormalAxis] = -1.0
	} else {
		normal[w.NormalAxis] = 1.0
	}

	velAlongNormal := b.Velocity.Dot(normal)
	if velAlongNormal >= 0 {
		if grazeGuard != nil {
			*grazeGuard++
		}
		return false
	}

	b.Velocity = b.Velocity.Minus(normal.Times((1 + w.Restitution) * velAlongNormal))
	return true
}
