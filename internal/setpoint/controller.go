package setpoint

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/markusressel/heat2go/internal/device"
	"github.com/markusressel/heat2go/internal/ui"
	"golang.org/x/exp/slices"
)

const (
	MinTemp     = 5.0
	MaxTemp     = 35.0
	DefaultTemp = 21.0
	// Tolerance is the largest difference between the local and the reported
	// manual setpoint that is still considered an echo of the local value.
	Tolerance = 0.1
	// Step is the default increment of a single up/down adjustment.
	Step = 0.1
)

var ErrUnknownMode = errors.New("unknown mode")

// DisplaySink receives every change of the local manual setpoint.
type DisplaySink interface {
	ShowManualSetpoint(value float64)
}

// Controller owns the desired manual temperature. The local value is the
// user's intent and is only replaced by device reports that differ noticeably.
type Controller struct {
	current float64
	sender  device.ActionSender
	display DisplaySink
}

func NewController(sender device.ActionSender, display DisplaySink) *Controller {
	return NewControllerWithValue(DefaultTemp, sender, display)
}

func NewControllerWithValue(initial float64, sender device.ActionSender, display DisplaySink) *Controller {
	return &Controller{
		current: Clamp(initial),
		sender:  sender,
		display: display,
	}
}

func (c *Controller) Current() float64 {
	return c.current
}

// Adjust changes the manual setpoint by delta and sends the result to the device.
// The local value is kept even if sending fails.
func (c *Controller) Adjust(ctx context.Context, delta float64) (float64, error) {
	return c.Set(ctx, c.current+delta)
}

// Set replaces the manual setpoint and sends the result to the device.
// The local value is kept even if sending fails.
func (c *Controller) Set(ctx context.Context, value float64) (float64, error) {
	c.current = Clamp(value)
	c.refresh()

	err := c.sender.SendAction(ctx, device.SetTempAction(c.current))
	if err != nil {
		ui.Error("Temp set failed: %v", err)
		return c.current, err
	}
	return c.current, nil
}

// Reconcile takes over a setpoint reported by the device, unless it is within
// Tolerance of the local value. Reports that are not plausible are ignored.
// Returns true if the local value changed.
func (c *Controller) Reconcile(deviceSetpoint float64) bool {
	if !IsPlausible(deviceSetpoint) {
		ui.Debug("Ignoring implausible manual setpoint from device: %v", deviceSetpoint)
		return false
	}
	if math.Abs(deviceSetpoint-c.current) <= Tolerance {
		return false
	}
	ui.Debug("Manual setpoint changed on device: %.2f -> %.2f", c.current, deviceSetpoint)
	c.current = deviceSetpoint
	c.refresh()
	return true
}

// SetMode requests a different operating mode from the device.
func (c *Controller) SetMode(ctx context.Context, mode device.Mode) error {
	mode, err := ParseMode(string(mode))
	if err != nil {
		return err
	}
	err = c.sender.SendAction(ctx, device.SetModeAction(mode))
	if err != nil {
		ui.Error("Mode change failed: %v", err)
	}
	return err
}

// ParseMode matches the given text case-insensitively against the known modes.
func ParseMode(text string) (device.Mode, error) {
	mode := device.Mode(strings.ToUpper(strings.TrimSpace(text)))
	if !slices.Contains(device.Modes, mode) {
		return "", fmt.Errorf("%w: %s, must be one of: %v", ErrUnknownMode, text, device.Modes)
	}
	return mode, nil
}

func (c *Controller) refresh() {
	if c.display != nil {
		c.display.ShowManualSetpoint(c.current)
	}
}

// IsPlausible reports whether value can be a manual setpoint of the device.
// A device reporting 0 has no manual setpoint yet.
func IsPlausible(value float64) bool {
	return value != 0 && value >= MinTemp && value <= MaxTemp
}

// Clamp limits value to [MinTemp, MaxTemp].
func Clamp(value float64) float64 {
	if value < MinTemp {
		return MinTemp
	}
	if value > MaxTemp {
		return MaxTemp
	}
	return value
}
