//go:build !linux

package gamepad

import (
	"context"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"go.viam.com/armpad/input"
)

// New is only supported on linux, where the kernel event layer lives.
func New(ctx context.Context, cfg *Config, logger golog.Logger) (input.Reader, error) {
	return nil, errors.New("gamepad input is only supported on linux")
}
