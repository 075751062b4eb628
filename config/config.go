// Package config reads the armpad JSON config file and decodes the
// per-component attribute maps.
package config

import (
	"encoding/json"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/armpad/arm"
	"go.viam.com/armpad/teleop"
)

// AttributeMap holds a component's free-form attributes until the
// component's own config type decodes them.
type AttributeMap map[string]interface{}

// Decode maps the attributes onto out using json field tags, the same
// tags the component configs carry for file use.
func (a AttributeMap) Decode(out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(map[string]interface{}(a))
}

// Component selects a driver implementation by model name and carries
// its attributes.
type Component struct {
	Model      string       `json:"model"`
	Attributes AttributeMap `json:"attributes,omitempty"`
}

// Arm groups the solver inputs. Nil fields take the stock defaults.
type Arm struct {
	Geometry *arm.Geometry `json:"geometry,omitempty"`
	Limits   *arm.Limits   `json:"limits,omitempty"`
}

// Config is the whole file.
type Config struct {
	Arm    Arm            `json:"arm"`
	Input  Component      `json:"input"`
	Servo  Component      `json:"servo"`
	Buzzer *Component     `json:"buzzer,omitempty"`
	Teleop *teleop.Config `json:"teleop,omitempty"`
}

// Read loads and validates a config file.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't read config %s", path)
	}
	return FromBytes(data)
}

// FromBytes parses and validates raw config JSON.
func FromBytes(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "couldn't parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks everything that can be checked without touching
// hardware.
func (c *Config) Validate() error {
	var err error
	if c.Input.Model == "" {
		err = multierr.Append(err, errors.New("input: model is required"))
	}
	if c.Servo.Model == "" {
		err = multierr.Append(err, errors.New("servo: model is required"))
	}
	if c.Arm.Geometry != nil {
		err = multierr.Append(err, errors.Wrap(c.Arm.Geometry.Validate(), "arm geometry"))
	}
	if c.Arm.Limits != nil {
		err = multierr.Append(err, errors.Wrap(c.Arm.Limits.Validate(), "arm limits"))
	}
	return err
}

// SolverParts returns the geometry and limits with defaults filled in.
func (c *Config) SolverParts() (arm.Geometry, arm.Limits) {
	geom := arm.DefaultGeometry()
	if c.Arm.Geometry != nil {
		geom = *c.Arm.Geometry
	}
	limits := arm.DefaultLimits()
	if c.Arm.Limits != nil {
		limits = *c.Arm.Limits
	}
	return geom, limits
}
