package sim

import "math"

// MaxDim is the largest supported dimension (2 or 3, per ndim).
const MaxDim = 3

// Vec is a fixed-size 2D/3D vector. Only the first ndim components are
// meaningful for a given simulation; trailing components stay zero.
type Vec [MaxDim]float64

func NewVec(ndim int, components ...float64) Vec {
	var v Vec
	copy(v[:ndim], components)
	return v
}

func (v Vec) Plus(o Vec) Vec {
	return Vec{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

func (v Vec) Minus(o Vec) Vec {
	return Vec{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

func (v Vec) Times(s float64) Vec {
	return Vec{v[0] * s, v[1] * s, v[2] * s}
}

func (v Vec) Dot(o Vec) float64 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

func (v Vec) LengthSquared() float64 {
	return v.Dot(v)
}

func (v Vec) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Normalized returns v/|v|, or fallback (unit vector on some axis) if v is
// (near) zero-length.
func (v Vec) Normalized(fallback Vec) Vec {
	l := v.Length()
	if l < 1e-12 {
		return fallback
	}
	return v.Times(1.0 / l)
}

// gravityVec returns g = (0, -1, 0) truncated to ndim, or the zero vector
// when gravity is disabled.
func gravityVec(ndim int, gravity bool) Vec {
	if !gravity || ndim < 2 {
		return Vec{}
	}
	return Vec{0, -1, 0}
}

// positionAt evaluates p(t) = p + v*dt + 0.5*g*dt^2 for dt = t - t0.
func positionAt(p, v, g Vec, dt float64) Vec {
	return p.Plus(v.Times(dt)).Plus(g.Times(0.5 * dt * dt))
}

// velocityAt evaluates v(t) = v + g*dt.
func velocityAt(v, g Vec, dt float64) Vec {
	return v.Plus(g.Times(dt))
}
