package settings

import (
	"context"
	"errors"

	"github.com/markusressel/heat2go/internal/device"
	"github.com/markusressel/heat2go/internal/sanitize"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/spf13/cast"
)

const ConfirmQuestion = "Save settings and reboot device?"

var ErrNotConfirmed = errors.New("settings submission was not confirmed")

// FieldSink holds the displayed form values, it is owned by the presentation layer.
// It has to provide every field in Fields.
type FieldSink interface {
	Get(field Field) string
	Set(field Field, value string)
}

// Diagnostic records a value reported by the device that was replaced by its default.
type Diagnostic struct {
	Field   Field
	Raw     interface{}
	Default float64
}

// Form maps the device settings document to displayed form fields and back.
type Form struct {
	sink        FieldSink
	transport   device.SettingsTransport
	diagnostics []Diagnostic
}

func NewForm(transport device.SettingsTransport, sink FieldSink) *Form {
	return &Form{
		sink:      sink,
		transport: transport,
	}
}

// Diagnostics returns the substitutions made during the last Load.
func (f *Form) Diagnostics() []Diagnostic {
	return f.diagnostics
}

// Fetch loads the settings from the device. On failure the form is untouched.
func (f *Form) Fetch(ctx context.Context) error {
	ui.Debug("Loading settings...")
	raw, err := f.transport.GetSettings(ctx)
	if err != nil {
		ui.Error("Load settings failed: %v", err)
		return err
	}
	f.Load(raw)
	return nil
}

// Load shows the given settings. Numeric values outside their bounds are replaced
// by defaults, sections that are missing entirely leave their fields as they are.
func (f *Form) Load(raw device.RawSettings) {
	f.diagnostics = nil

	if raw.Wifi != nil {
		f.sink.Set(FieldWifiSSID, text(raw.Wifi.SSID))
	}

	if raw.Mqtt != nil {
		f.sink.Set(FieldMqttHost, text(raw.Mqtt.Host))
		f.setNumber(FieldMqttPort, raw.Mqtt.Port)
		f.sink.Set(FieldMqttToken, text(raw.Mqtt.Token))
	}

	if raw.Geo != nil {
		f.setNumber(FieldGeoLat, raw.Geo.Lat)
		f.setNumber(FieldGeoLon, raw.Geo.Lon)
		f.setNumber(FieldGeoInterval, raw.Geo.Interval)
	}

	if control := raw.Control; control != nil {
		if control.PwmCycleSeconds != nil {
			f.setNumber(FieldPwmCycle, control.PwmCycleSeconds)
		}
		if pid := control.Pid; pid != nil {
			f.setNumber(FieldPidKp, pid.Kp)
			f.setNumber(FieldPidKi, pid.Ki)
			f.setNumber(FieldPidKd, pid.Kd)
		}
		if limits := control.Limits; limits != nil {
			f.setNumber(FieldRadMax, limits.RadMax)
			f.setNumber(FieldRoomMin, limits.RoomMin)
			f.setNumber(FieldRoomMax, limits.RoomMax)
		}
	}
}

// Extract reads the form back into a settings document. Values that do not
// parse become 0, nothing is range checked, that is up to the device.
func (f *Form) Extract() device.ConfigDocument {
	return device.ConfigDocument{
		Wifi: device.WifiConfig{
			SSID: f.sink.Get(FieldWifiSSID),
			Pass: f.sink.Get(FieldWifiPass),
		},
		Mqtt: device.MqttConfig{
			Host:  f.sink.Get(FieldMqttHost),
			Port:  f.getInt(FieldMqttPort),
			Token: f.sink.Get(FieldMqttToken),
		},
		Geo: device.GeoConfig{
			Lat:      f.getFloat(FieldGeoLat),
			Lon:      f.getFloat(FieldGeoLon),
			Interval: f.getInt(FieldGeoInterval),
		},
		Control: device.ControlConfig{
			PwmCycleSeconds: f.getInt(FieldPwmCycle),
			Pid: device.PidConfig{
				Kp: f.getFloat(FieldPidKp),
				Ki: f.getFloat(FieldPidKi),
				Kd: f.getFloat(FieldPidKd),
			},
			Limits: device.LimitsConfig{
				RadMax:  f.getFloat(FieldRadMax),
				RoomMin: f.getFloat(FieldRoomMin),
				RoomMax: f.getFloat(FieldRoomMax),
			},
		},
	}
}

// Submit sends the form to the device after the confirmer agreed.
// The device reboots after a successful submission.
func (f *Form) Submit(ctx context.Context, confirmer ui.Confirmer) error {
	doc := f.Extract()
	if !confirmer.Confirm(ConfirmQuestion) {
		return ErrNotConfirmed
	}

	err := f.transport.PostSettings(ctx, doc)
	if err != nil {
		ui.Error("Error saving settings: %v", err)
		return err
	}
	ui.Success("Saved! System rebooting...")
	return nil
}

func (f *Form) setNumber(field Field, raw interface{}) {
	bounds := Bounds[field]
	value := sanitize.Sanitize(string(field), raw, bounds)
	if value.Substituted {
		f.diagnostics = append(f.diagnostics, Diagnostic{Field: field, Raw: raw, Default: bounds.Default})
	}
	f.sink.Set(field, value.Text)
}

func (f *Form) getFloat(field Field) float64 {
	v, ok := sanitize.Parse(f.sink.Get(field))
	if !ok {
		return 0
	}
	return v
}

func (f *Form) getInt(field Field) int {
	v, ok := sanitize.ParseInt(f.sink.Get(field))
	if !ok {
		return 0
	}
	return v
}

func text(raw interface{}) string {
	if raw == nil {
		return ""
	}
	return cast.ToString(raw)
}
