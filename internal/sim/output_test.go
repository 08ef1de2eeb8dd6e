package sim

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestOutputManagerWritesFramesInOrder(t *testing.T) {
	Convey("Given an OutputManager writing to a temp directory", t, func() {
		dir := t.TempDir()
		om, err := NewOutputManager(dir, 2, func(error) {})
		So(err, ShouldBeNil)

		Convey("frames are written as frame_NNNNNN.txt in the snapshot format", func() {
			om.WriteFrame(0, 0, 2, []Vec{NewVec(2, 1, 2)}, []Vec{NewVec(2, 0, 0)})
			om.WriteFrame(1, 1, 2, []Vec{NewVec(2, 1.5, 2)}, []Vec{NewVec(2, 1, 0)})
			om.Close()

			data, err := os.ReadFile(filepath.Join(dir, "frame_000000.txt"))
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, "# Time: 0")
			So(string(data), ShouldContainSubstring, "# Balls: 1")

			_, err = os.Stat(filepath.Join(dir, "frame_000001.txt"))
			So(err, ShouldBeNil)
		})
	})

	Convey("Given an OutputManager with a subscriber", t, func() {
		dir := t.TempDir()
		om, err := NewOutputManager(dir, 2, func(error) {})
		So(err, ShouldBeNil)
		ch := make(chan Frame, 1)
		om.Subscribe(ch)

		Convey("every written frame is published to the subscriber", func() {
			om.WriteFrame(0, 0, 2, []Vec{NewVec(2, 0, 0)}, []Vec{NewVec(2, 0, 0)})
			om.Close()
			f := <-ch
			So(f.Index, ShouldEqual, 0)
		})
	})

	Convey("WriteParameters writes a parameters.json sidecar", t, func() {
		dir := t.TempDir()
		om, err := NewOutputManager(dir, 1, func(error) {})
		So(err, ShouldBeNil)
		defer om.Close()

		err = om.WriteParameters(map[string]any{"ndim": 2})
		So(err, ShouldBeNil)
		data, err := os.ReadFile(filepath.Join(dir, "parameters.json"))
		So(err, ShouldBeNil)
		So(string(data), ShouldContainSubstring, `"ndim": 2`)
	})
}
