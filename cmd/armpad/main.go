// Package main runs the armpad teleop controller.
package main

import (
	"context"
	"flag"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"go.viam.com/armpad/arm"
	"go.viam.com/armpad/config"
	"go.viam.com/armpad/input"
	"go.viam.com/armpad/input/gamepad"
	"go.viam.com/armpad/servo"
	servogpio "go.viam.com/armpad/servo/gpio"
	"go.viam.com/armpad/servo/maestro"
	"go.viam.com/armpad/teleop"
	"go.viam.com/armpad/tone"
	"go.viam.com/armpad/tone/buzzer"
)

var logger = golog.NewDevelopmentLogger("armpad")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) (err error) {
	flagSet := flag.NewFlagSet("armpad", flag.ContinueOnError)
	configPath := flagSet.String("config", "armpad.json", "path to the config file")
	if err := flagSet.Parse(args[1:]); err != nil {
		return err
	}

	cfg, err := config.Read(*configPath)
	if err != nil {
		return err
	}

	geom, limits := cfg.SolverParts()
	solver, err := arm.NewSolver(geom, limits)
	if err != nil {
		return err
	}

	reader, err := newReader(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Combine(err, reader.Close(ctx)) }()

	writer, err := newWriter(cfg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Combine(err, writer.Close(ctx)) }()

	beeper, err := newBeeper(cfg)
	if err != nil {
		return err
	}
	if beeper != nil {
		defer func() { err = multierr.Combine(err, beeper.Close(ctx)) }()
	}

	loop := teleop.New(solver, reader, writer, beeper, cfg.Teleop, clock.New(), logger)
	return loop.Run(ctx)
}

func newReader(ctx context.Context, cfg *config.Config, logger golog.Logger) (input.Reader, error) {
	switch cfg.Input.Model {
	case "gamepad":
		var padCfg gamepad.Config
		if err := cfg.Input.Attributes.Decode(&padCfg); err != nil {
			return nil, errors.Wrap(err, "input attributes")
		}
		return gamepad.New(ctx, &padCfg, logger)
	default:
		return nil, errors.Errorf("unknown input model %q", cfg.Input.Model)
	}
}

func newWriter(cfg *config.Config) (servo.Writer, error) {
	switch cfg.Servo.Model {
	case "maestro":
		var mCfg maestro.Config
		if err := cfg.Servo.Attributes.Decode(&mCfg); err != nil {
			return nil, errors.Wrap(err, "servo attributes")
		}
		return maestro.New(&mCfg)
	case "gpio":
		var gCfg servogpio.Config
		if err := cfg.Servo.Attributes.Decode(&gCfg); err != nil {
			return nil, errors.Wrap(err, "servo attributes")
		}
		return servogpio.New(&gCfg)
	default:
		return nil, errors.Errorf("unknown servo model %q", cfg.Servo.Model)
	}
}

func newBeeper(cfg *config.Config) (tone.Beeper, error) {
	if cfg.Buzzer == nil {
		return nil, nil
	}
	switch cfg.Buzzer.Model {
	case "gpio":
		pin, _ := cfg.Buzzer.Attributes["pin"].(string)
		if pin == "" {
			return nil, errors.New("buzzer: pin is required")
		}
		return buzzer.New(pin)
	default:
		return nil, errors.Errorf("unknown buzzer model %q", cfg.Buzzer.Model)
	}
}
