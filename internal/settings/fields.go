package settings

import (
	"fmt"
	"strings"

	"github.com/markusressel/heat2go/internal/sanitize"
)

// Field identifies a single leaf of the settings document.
type Field string

const (
	FieldWifiSSID Field = "wifi.ssid"
	FieldWifiPass Field = "wifi.pass"

	FieldMqttHost  Field = "mqtt.host"
	FieldMqttPort  Field = "mqtt.port"
	FieldMqttToken Field = "mqtt.token"

	FieldGeoLat      Field = "geo.lat"
	FieldGeoLon      Field = "geo.lon"
	FieldGeoInterval Field = "geo.interval"

	FieldPwmCycle Field = "control.pwm_cycle_s"

	FieldPidKp Field = "control.pid.kp"
	FieldPidKi Field = "control.pid.ki"
	FieldPidKd Field = "control.pid.kd"

	FieldRadMax  Field = "control.limits.rad_max"
	FieldRoomMin Field = "control.limits.room_min"
	FieldRoomMax Field = "control.limits.room_max"
)

// Fields lists all fields in display order.
var Fields = []Field{
	FieldWifiSSID, FieldWifiPass,
	FieldMqttHost, FieldMqttPort, FieldMqttToken,
	FieldGeoLat, FieldGeoLon, FieldGeoInterval,
	FieldPwmCycle,
	FieldPidKp, FieldPidKi, FieldPidKd,
	FieldRadMax, FieldRoomMin, FieldRoomMax,
}

// Bounds holds the accepted range and default of every numeric field.
var Bounds = map[Field]sanitize.Bounds{
	FieldMqttPort:    {Default: 1883, Min: 1, Max: 65535},
	FieldGeoLat:      {Default: 50.27, Min: -90, Max: 90, Precision: sanitize.Digits(4)},
	FieldGeoLon:      {Default: 30.31, Min: -180, Max: 180, Precision: sanitize.Digits(4)},
	FieldGeoInterval: {Default: 15, Min: 1, Max: 1440},
	FieldPwmCycle:    {Default: 60, Min: 10, Max: 300},
	FieldPidKp:       {Default: 10.0, Min: 0, Max: 1000, Precision: sanitize.Digits(1)},
	FieldPidKi:       {Default: 0.0, Min: 0, Max: 100, Precision: sanitize.Digits(2)},
	FieldPidKd:       {Default: 0.0, Min: 0, Max: 100, Precision: sanitize.Digits(2)},
	FieldRadMax:      {Default: 60.0, Min: 20, Max: 95, Precision: sanitize.Digits(1)},
	FieldRoomMin:     {Default: 10.0, Min: 5, Max: 30, Precision: sanitize.Digits(2)},
	FieldRoomMax:     {Default: 30.0, Min: 10, Max: 40, Precision: sanitize.Digits(2)},
}

// IsSecret returns true for fields that should not be printed.
func (f Field) IsSecret() bool {
	return f == FieldWifiPass || f == FieldMqttToken
}

// Section returns the top level section of the field, e.g. "mqtt".
func (f Field) Section() string {
	section, _, _ := strings.Cut(string(f), ".")
	return section
}

func ParseField(text string) (Field, error) {
	key := strings.ToLower(strings.TrimSpace(text))
	for _, f := range Fields {
		if string(f) == key {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown settings field: %s", text)
}
