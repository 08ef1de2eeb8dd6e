package sim

// Cell is the integer coordinate tuple naming a grid cell. Only the first
// ndim components are meaningful.
type Cell [MaxDim]int

// Ball is a mobile body. Its Position and Velocity are exact at LocalTime;
// evaluating the ball at any later time goes through peek/advance, never by
// reading the fields directly.
//
// Generation replaces a pointer-based back-reference set (see DESIGN.md):
// every event that mentions this ball records the ball's Generation at the
// moment the event was created. The event remains valid only as long as
// every participant's current Generation still matches what the event
// recorded. Generation increments each time a ball-ball or ball-wall
// collision event involving the ball is processed, whether or not the
// resolver's separating-velocity guard left the velocity unchanged; a grid
// transit never bumps it.
type Ball struct {
	ID         int
	Position   Vec
	Velocity   Vec
	Radius     float64
	Cell       Cell
	LocalTime  float64
	Generation uint64
}

// peek returns the ball's (position, velocity) at t without mutating the
// ball. t must be >= LocalTime.
func (b *Ball) peek(t float64, ndim int, gravity bool) (Vec, Vec) {
	if t < b.LocalTime {
		panic("sim: peek at time before ball's local time")
	}
	dt := t - b.LocalTime
	g := gravityVec(ndim, gravity)
	return positionAt(b.Position, b.Velocity, g, dt), velocityAt(b.Velocity, g, dt)
}

// advance moves the ball's stored state to time t. t must be >= LocalTime.
func (b *Ball) advance(t float64, ndim int, gravity bool) {
	if t < b.LocalTime {
		panic("sim: advance to time before ball's local time")
	}
	p, v := b.peek(t, ndim, gravity)
	b.Position = p
	b.Velocity = v
	b.LocalTime = t
}

// bumpGeneration is called whenever a collision changes this ball's
// velocity, invalidating every event that was predicted against the old
// velocity.
func (b *Ball) bumpGeneration() {
	b.Generation++
}
