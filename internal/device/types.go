package device

const (
	PathStatus   = "/api/status"
	PathAction   = "/api/action"
	PathSchedule = "/api/schedule"
	PathSettings = "/api/settings"

	ActionSetTemp = "set_temp"
	ActionSetMode = "set_mode"
)

// Mode is an operating mode that can be requested via set_mode.
type Mode string

const (
	ModeOff        Mode = "OFF"
	ModeManual     Mode = "MANUAL"
	ModeProgrammed Mode = "PROGRAMMED"
	ModeAdaptive   Mode = "ADAPTIVE"
)

// Modes lists all modes the device accepts.
var Modes = []Mode{ModeOff, ModeManual, ModeProgrammed, ModeAdaptive}

// States the device may report in addition to the selectable modes.
const (
	StateBoot       = "BOOT"
	StateAntiFreeze = "ANTI_FREEZE"
	StateEmergency  = "EMERGENCY"
	StateModeSelect = "MODE_SELECT"
)

// RawStatus is the status document as reported by the device. Numeric fields are
// kept untyped, they have to go through sanitizing before being used.
type RawStatus struct {
	RoomTemp        interface{} `json:"room_temp"`
	RadTemp         interface{} `json:"rad_temp"`
	OutsideTemp     interface{} `json:"outside_temp"`
	CurrentSetpoint interface{} `json:"current_setpoint"`
	State           string      `json:"state"`
	Relay           bool        `json:"relay"`
	ManualSetpoint  interface{} `json:"manual_setpoint"`
}

type Action struct {
	Action string   `json:"action"`
	Value  *float64 `json:"value,omitempty"`
	Mode   Mode     `json:"mode,omitempty"`
}

func SetTempAction(value float64) Action {
	return Action{Action: ActionSetTemp, Value: &value}
}

func SetModeAction(mode Mode) Action {
	return Action{Action: ActionSetMode, Mode: mode}
}

type SchedulePoint struct {
	Hour   int     `json:"h"`
	Minute int     `json:"m"`
	Temp   float64 `json:"t"`
}

type ScheduleDay struct {
	Points []SchedulePoint `json:"points"`
}

type Schedule struct {
	Days []ScheduleDay `json:"days"`
}

// RawSchedule is the schedule document as reported by the device.
// Point leaves are untyped, malformed points are dropped when loaded.
type RawSchedule struct {
	Days []RawScheduleDay `json:"days"`
}

type RawScheduleDay struct {
	Points []RawSchedulePoint `json:"points"`
}

type RawSchedulePoint struct {
	Hour   interface{} `json:"h"`
	Minute interface{} `json:"m"`
	Temp   interface{} `json:"t"`
}

// Raw converts a typed schedule into its untyped representation,
// numbers are stored as float64 the same way they are decoded from JSON.
func (s Schedule) Raw() RawSchedule {
	if s.Days == nil {
		return RawSchedule{}
	}
	result := RawSchedule{Days: make([]RawScheduleDay, len(s.Days))}
	for i, day := range s.Days {
		points := make([]RawSchedulePoint, 0, len(day.Points))
		for _, p := range day.Points {
			points = append(points, RawSchedulePoint{
				Hour:   float64(p.Hour),
				Minute: float64(p.Minute),
				Temp:   p.Temp,
			})
		}
		result.Days[i].Points = points
	}
	return result
}

// ConfigDocument is the settings document as it is sent to the device.
type ConfigDocument struct {
	Wifi    WifiConfig    `json:"wifi"`
	Mqtt    MqttConfig    `json:"mqtt"`
	Geo     GeoConfig     `json:"geo"`
	Control ControlConfig `json:"control"`
}

type WifiConfig struct {
	SSID string `json:"ssid"`
	Pass string `json:"pass"`
}

type MqttConfig struct {
	Host  string `json:"host"`
	Port  int    `json:"port"`
	Token string `json:"token"`
}

type GeoConfig struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Interval int     `json:"interval"`
}

type ControlConfig struct {
	PwmCycleSeconds int          `json:"pwm_cycle_s"`
	Pid             PidConfig    `json:"pid"`
	Limits          LimitsConfig `json:"limits"`
}

type PidConfig struct {
	Kp float64 `json:"kp"`
	Ki float64 `json:"ki"`
	Kd float64 `json:"kd"`
}

type LimitsConfig struct {
	RadMax  float64 `json:"rad_max"`
	RoomMin float64 `json:"room_min"`
	RoomMax float64 `json:"room_max"`
}

// RawSettings is the settings document as reported by the device.
// Every section is optional and every leaf is untyped.
type RawSettings struct {
	Wifi    *RawWifi    `json:"wifi,omitempty"`
	Mqtt    *RawMqtt    `json:"mqtt,omitempty"`
	Geo     *RawGeo     `json:"geo,omitempty"`
	Control *RawControl `json:"control,omitempty"`
}

type RawWifi struct {
	SSID interface{} `json:"ssid"`
	Pass interface{} `json:"pass"`
}

type RawMqtt struct {
	Host  interface{} `json:"host"`
	Port  interface{} `json:"port"`
	Token interface{} `json:"token"`
}

type RawGeo struct {
	Lat      interface{} `json:"lat"`
	Lon      interface{} `json:"lon"`
	Interval interface{} `json:"interval"`
}

type RawControl struct {
	PwmCycleSeconds interface{} `json:"pwm_cycle_s,omitempty"`
	Pid             *RawPid     `json:"pid,omitempty"`
	Limits          *RawLimits  `json:"limits,omitempty"`
}

type RawPid struct {
	Kp interface{} `json:"kp"`
	Ki interface{} `json:"ki"`
	Kd interface{} `json:"kd"`
}

type RawLimits struct {
	RadMax  interface{} `json:"rad_max"`
	RoomMin interface{} `json:"room_min"`
	RoomMax interface{} `json:"room_max"`
}

// Raw converts a typed document into its untyped representation.
func (d ConfigDocument) Raw() RawSettings {
	return RawSettings{
		Wifi: &RawWifi{SSID: d.Wifi.SSID, Pass: d.Wifi.Pass},
		Mqtt: &RawMqtt{Host: d.Mqtt.Host, Port: d.Mqtt.Port, Token: d.Mqtt.Token},
		Geo:  &RawGeo{Lat: d.Geo.Lat, Lon: d.Geo.Lon, Interval: d.Geo.Interval},
		Control: &RawControl{
			PwmCycleSeconds: d.Control.PwmCycleSeconds,
			Pid:             &RawPid{Kp: d.Control.Pid.Kp, Ki: d.Control.Pid.Ki, Kd: d.Control.Pid.Kd},
			Limits: &RawLimits{
				RadMax:  d.Control.Limits.RadMax,
				RoomMin: d.Control.Limits.RoomMin,
				RoomMax: d.Control.Limits.RoomMax,
			},
		},
	}
}
