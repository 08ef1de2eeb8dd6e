package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"hardsphere/internal/sim"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	Convey("Given a config file that omits every defaultable key", t, func() {
		path := writeConfig(t, `
ndim: 2
num_balls: 6
ball_radius: 0.3
domain_size: [5, 3]
simulation_time: 10
run_name: test-run
output_dir: /tmp/out
`)
		cfg, err := Load(path)

		Convey("it loads without error and fills in spec.md §6 defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.SimParams.Gravity, ShouldBeFalse)
			So(cfg.SimParams.BallRestitution, ShouldEqual, DefaultBallRestitution)
			So(cfg.SimParams.WallRestitution, ShouldEqual, DefaultWallRestitution)
			So(cfg.SimParams.OutputRate, ShouldEqual, DefaultOutputRate)
			So(cfg.SimParams.RandomSeed, ShouldEqual, int64(DefaultRandomSeed))
			So(cfg.LogLevel, ShouldEqual, DefaultLogLevel)
		})
	})
}

func TestLoadHonorsExplicitZeroValues(t *testing.T) {
	Convey("Given a config file that explicitly sets gravity and restitutions to their zero values", t, func() {
		path := writeConfig(t, `
ndim: 2
num_balls: 6
ball_radius: 0.3
domain_size: [5, 3]
simulation_time: 10
gravity: false
ball_restitution: 0
wall_restitution: 0
run_name: test-run
output_dir: /tmp/out
`)
		cfg, err := Load(path)

		Convey("the explicit zero values are kept, not overwritten by defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.SimParams.Gravity, ShouldBeFalse)
			So(cfg.SimParams.BallRestitution, ShouldEqual, 0)
			So(cfg.SimParams.WallRestitution, ShouldEqual, 0)
		})
	})
}

func TestLoadAggregatesValidationViolations(t *testing.T) {
	Convey("Given a config file with several invalid sim parameters", t, func() {
		path := writeConfig(t, `
ndim: 1
num_balls: 0
ball_radius: -1
domain_size: [5, 3]
simulation_time: -5
run_name: test-run
output_dir: /tmp/out
`)
		_, err := Load(path)

		Convey("Load returns a ConfigError aggregating every violation", func() {
			So(err, ShouldNotBeNil)
			cfgErr, ok := err.(*sim.ConfigError)
			So(ok, ShouldBeTrue)
			So(len(cfgErr.Violations), ShouldBeGreaterThan, 1)
		})
	})
}

func TestLoadRequiresRunNameAndOutputDir(t *testing.T) {
	Convey("Given a config file missing run_name", t, func() {
		path := writeConfig(t, `
ndim: 2
num_balls: 6
ball_radius: 0.3
domain_size: [5, 3]
simulation_time: 10
output_dir: /tmp/out
`)
		_, err := Load(path)

		Convey("Load rejects it with a ConfigError", func() {
			So(err, ShouldNotBeNil)
			_, ok := err.(*sim.ConfigError)
			So(ok, ShouldBeTrue)
		})
	})

	Convey("Given a config file missing output_dir", t, func() {
		path := writeConfig(t, `
ndim: 2
num_balls: 6
ball_radius: 0.3
domain_size: [5, 3]
simulation_time: 10
run_name: test-run
`)
		_, err := Load(path)

		Convey("Load rejects it with a ConfigError", func() {
			So(err, ShouldNotBeNil)
			_, ok := err.(*sim.ConfigError)
			So(ok, ShouldBeTrue)
		})
	})
}

func TestLoadMissingFile(t *testing.T) {
	Convey("Given a path that does not exist", t, func() {
		_, err := Load("/nonexistent/path/config.yaml")

		Convey("Load wraps the read error", func() {
			So(err, ShouldNotBeNil)
		})
	})
}
