package sim

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestVecArithmetic(t *testing.T) {
	Convey("Given two 2D vectors", t, func() {
		a := NewVec(2, 1, 2)
		b := NewVec(2, 3, -1)

		Convey("Plus/Minus/Times/Dot behave componentwise", func() {
			So(a.Plus(b), ShouldResemble, NewVec(2, 4, 1))
			So(a.Minus(b), ShouldResemble, NewVec(2, -2, 3))
			So(a.Times(2), ShouldResemble, NewVec(2, 2, 4))
			So(a.Dot(b), ShouldEqual, 1*3+2*-1)
		})

		Convey("Length is the Euclidean norm", func() {
			v := NewVec(2, 3, 4)
			So(v.Length(), ShouldEqual, 5)
		})
	})

	Convey("Normalized falls back on a near-zero vector", t, func() {
		zero := Vec{}
		fallback := NewVec(2, 1, 0)
		So(zero.Normalized(fallback), ShouldResemble, fallback)

		unit := NewVec(2, 0, 5).Normalized(fallback)
		So(unit[1], ShouldAlmostEqual, 1, 1e-12)
	})
}

func TestKinematics(t *testing.T) {
	Convey("Given position/velocity/gravity and a dt", t, func() {
		p := NewVec(2, 0, 3)
		v := NewVec(2, 0, 0)
		g := NewVec(2, 0, -1)

		Convey("positionAt applies p + v*dt + 0.5*g*dt^2", func() {
			got := positionAt(p, v, g, 2)
			So(got[1], ShouldAlmostEqual, 3-0.5*1*4, 1e-12)
		})

		Convey("velocityAt applies v + g*dt", func() {
			got := velocityAt(v, g, 2)
			So(got[1], ShouldAlmostEqual, -2, 1e-12)
		})
	})

	Convey("gravityVec is zero unless gravity is enabled in 2D/3D", t, func() {
		So(gravityVec(2, false), ShouldResemble, Vec{})
		So(gravityVec(2, true), ShouldResemble, Vec{0, -1, 0})
		So(gravityVec(3, true), ShouldResemble, Vec{0, -1, 0})
	})
}
