//go:build linux

package gamepad

import (
	"context"
	"sync"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"github.com/viamrobotics/evdev"

	"go.viam.com/armpad/input"
)

// Kernel input codes for a standard dual-stick pad.
var axisCodes = map[uint16]input.Axis{
	0x00: input.LeftX,  // ABS_X
	0x01: input.LeftY,  // ABS_Y
	0x03: input.RightX, // ABS_RX
	0x04: input.RightY, // ABS_RY
}

var buttonCodes = map[uint16]input.Button{
	0x130: input.ButtonSouth, // BTN_SOUTH
	0x131: input.ButtonEast,  // BTN_EAST
	0x133: input.ButtonNorth, // BTN_NORTH
	0x134: input.ButtonWest,  // BTN_WEST
	0x13b: input.ButtonStart, // BTN_START
}

type pad struct {
	dev    *evdev.Evdev
	logger golog.Logger

	cancel    func()
	pollDone  chan struct{}
	smoothers map[input.Axis]*input.RollingMean

	mu      sync.Mutex
	axes    map[input.Axis]uint8
	buttons map[input.Button]bool
	pressed map[input.Button]bool
}

// New opens the configured event device and starts the poll goroutine.
func New(ctx context.Context, cfg *Config, logger golog.Logger) (input.Reader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid gamepad config")
	}
	dev, err := evdev.OpenFile(cfg.Device)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't open input device %s", cfg.Device)
	}
	logger.Infow("gamepad connected", "device", cfg.Device, "name", dev.Name())

	p := &pad{
		dev:       dev,
		logger:    logger,
		pollDone:  make(chan struct{}),
		smoothers: map[input.Axis]*input.RollingMean{},
		axes:      map[input.Axis]uint8{},
		buttons:   map[input.Button]bool{},
		pressed:   map[input.Button]bool{},
	}
	if cfg.SmoothingWindow > 1 {
		for _, axis := range axisCodes {
			p.smoothers[axis] = input.NewRollingMean(cfg.SmoothingWindow)
		}
	}

	pollCtx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	go p.poll(pollCtx)
	return p, nil
}

func (p *pad) poll(ctx context.Context) {
	defer close(p.pollDone)
	events := p.dev.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case env, ok := <-events:
			if !ok {
				// Device went away. Keep serving the last-known
				// state; the operator sees the arm hold still.
				p.logger.Warn("gamepad disconnected, holding last state")
				return
			}
			p.handleEvent(env.Event)
		}
	}
}

func (p *pad) handleEvent(ev evdev.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch ev.Type {
	case evdev.EventAbsolute:
		axis, ok := axisCodes[ev.Code]
		if !ok {
			return
		}
		v := float64(clampByte(ev.Value))
		if sm := p.smoothers[axis]; sm != nil {
			v = sm.Add(v)
		}
		p.axes[axis] = uint8(v + 0.5)
	case evdev.EventKey:
		button, ok := buttonCodes[ev.Code]
		if !ok {
			return
		}
		down := ev.Value != 0
		if down && !p.buttons[button] {
			p.pressed[button] = true
		}
		p.buttons[button] = down
	}
}

func clampByte(v int32) int32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// ReadFrame snapshots the last-known state. The edge set is consumed by
// the read, matching the control loop's once-per-cycle semantics.
func (p *pad) ReadFrame(ctx context.Context) (input.Frame, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	frame := input.NewFrame()
	for a, v := range p.axes {
		frame.Axes[a] = v
	}
	for b, v := range p.buttons {
		frame.Buttons[b] = v
	}
	for b, v := range p.pressed {
		frame.Pressed[b] = v
	}
	p.pressed = map[input.Button]bool{}
	return frame, nil
}

func (p *pad) Close(ctx context.Context) error {
	p.cancel()
	<-p.pollDone
	return p.dev.Close()
}
