package config

import (
	"testing"

	"go.viam.com/test"

	"go.viam.com/armpad/input/gamepad"
	"go.viam.com/armpad/servo/maestro"
)

const sample = `{
	"arm": {
		"limits": {
			"base": {"min": 0, "mid": 90, "max": 180},
			"shoulder": {"min": 0, "mid": 90, "max": 180},
			"elbow": {"min": 0, "mid": 90, "max": 180},
			"wrist": {"min": 0, "mid": 90, "max": 180},
			"gripper": {"min": 10, "mid": 90, "max": 170}
		}
	},
	"input": {
		"model": "gamepad",
		"attributes": {"device": "/dev/input/event0", "smoothing_window": 3}
	},
	"servo": {
		"model": "maestro",
		"attributes": {
			"port": "/dev/ttyACM0",
			"channels": {"base": 0, "shoulder": 1, "elbow": 2, "wrist": 3, "gripper": 4}
		}
	},
	"teleop": {"tick_ms": 20, "y_min_mm": 120}
}`

func TestFromBytes(t *testing.T) {
	cfg, err := FromBytes([]byte(sample))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Input.Model, test.ShouldEqual, "gamepad")
	test.That(t, cfg.Teleop.TickMs, test.ShouldEqual, 20)
	test.That(t, cfg.Teleop.YMin, test.ShouldEqual, 120)

	geom, limits := cfg.SolverParts()
	test.That(t, geom.Humerus, test.ShouldAlmostEqual, 263.525)
	test.That(t, limits.Gripper.Max, test.ShouldAlmostEqual, 170)
}

func TestAttributeDecode(t *testing.T) {
	cfg, err := FromBytes([]byte(sample))
	test.That(t, err, test.ShouldBeNil)

	var padCfg gamepad.Config
	test.That(t, cfg.Input.Attributes.Decode(&padCfg), test.ShouldBeNil)
	test.That(t, padCfg.Device, test.ShouldEqual, "/dev/input/event0")
	test.That(t, padCfg.SmoothingWindow, test.ShouldEqual, 3)

	var srvCfg maestro.Config
	test.That(t, cfg.Servo.Attributes.Decode(&srvCfg), test.ShouldBeNil)
	test.That(t, srvCfg.Port, test.ShouldEqual, "/dev/ttyACM0")
	test.That(t, len(srvCfg.Channels), test.ShouldEqual, 5)
	test.That(t, srvCfg.Validate(), test.ShouldBeNil)
}

func TestValidateRejects(t *testing.T) {
	_, err := FromBytes([]byte(`{"input": {"model": "gamepad"}, "servo": {}}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "servo")

	_, err = FromBytes([]byte(`{
		"input": {"model": "gamepad"},
		"servo": {"model": "maestro"},
		"arm": {"limits": {"elbow": {"min": 100, "mid": 90, "max": 180}}}
	}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "elbow")
}
