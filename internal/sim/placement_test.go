package sim

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPlaceBalls(t *testing.T) {
	Convey("Given a 2D domain with room for 6 balls", t, func() {
		domain := NewVec(2, 3, 2)

		Convey("placing exactly 6 seats each in a distinct cell", func() {
			balls, err := placeBalls(2, 6, domain, 0.4, 100)
			So(err, ShouldBeNil)
			So(len(balls), ShouldEqual, 6)

			seen := map[Cell]bool{}
			for _, b := range balls {
				So(seen[b.Cell], ShouldBeFalse)
				seen[b.Cell] = true
			}
		})

		Convey("placing more balls than cells returns a PlacementError", func() {
			_, err := placeBalls(2, 7, domain, 0.4, 100)
			So(err, ShouldNotBeNil)
			_, ok := err.(*PlacementError)
			So(ok, ShouldBeTrue)
		})

		Convey("identical seeds reproduce identical velocities", func() {
			b1, _ := placeBalls(2, 6, domain, 0.4, 100)
			b2, _ := placeBalls(2, 6, domain, 0.4, 100)
			for i := range b1 {
				So(b1[i].Velocity, ShouldResemble, b2[i].Velocity)
			}
		})
	})

	Convey("27 balls in a 3x3x3 domain each seat in a distinct cell", t, func() {
		domain := NewVec(3, 3, 3, 3)
		balls, err := placeBalls(3, 27, domain, 0.3, 100)
		So(err, ShouldBeNil)
		So(len(balls), ShouldEqual, 27)
		seen := map[Cell]bool{}
		for _, b := range balls {
			So(seen[b.Cell], ShouldBeFalse)
			seen[b.Cell] = true
		}
	})
}
