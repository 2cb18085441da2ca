package poller

import (
	"fmt"
	"math"

	"github.com/markusressel/heat2go/internal/device"
	"github.com/markusressel/heat2go/internal/sanitize"
)

// Unavailable is displayed for readings that are missing or implausible.
const Unavailable = "--"

const (
	RoomTempMin    = -50.0
	RoomTempMax    = 100.0
	OutsideTempMin = -90.0
)

// Reading is a single telemetry value with its display text.
type Reading struct {
	Value float64
	Valid bool
	Text  string
}

func readingOf(raw interface{}, min float64, max float64) Reading {
	value, ok := sanitize.Parse(raw)
	if !ok || value < min || value > max {
		return Reading{Text: Unavailable}
	}
	return Reading{
		Value: value,
		Valid: true,
		Text:  fmt.Sprintf("%.1f", value),
	}
}

// Telemetry is the sanitized form of a device status report.
type Telemetry struct {
	RoomTemp        Reading
	RadiatorTemp    Reading
	OutsideTemp     Reading
	CurrentSetpoint Reading
	State           string
	Relay           bool
	// ManualSetpoint is the device side manual setpoint, 0 when absent or invalid.
	ManualSetpoint float64
}

func SanitizeStatus(status device.RawStatus) Telemetry {
	t := Telemetry{
		RoomTemp:        readingOf(status.RoomTemp, RoomTempMin, RoomTempMax),
		RadiatorTemp:    readingOf(status.RadTemp, math.Inf(-1), math.Inf(1)),
		OutsideTemp:     readingOf(status.OutsideTemp, OutsideTempMin, math.Inf(1)),
		CurrentSetpoint: readingOf(status.CurrentSetpoint, math.Inf(-1), math.Inf(1)),
		State:           status.State,
		Relay:           status.Relay,
	}
	if value, ok := sanitize.Parse(status.ManualSetpoint); ok {
		t.ManualSetpoint = value
	}
	return t
}

// RelayText is the heater state as displayed.
func (t Telemetry) RelayText() string {
	if t.Relay {
		return "ON"
	}
	return "OFF"
}
