package simulator

import (
	"sync/atomic"
	"time"

	"github.com/markusressel/heat2go/internal/device"
	"github.com/markusressel/heat2go/internal/schedule"
	"github.com/markusressel/heat2go/internal/ui"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/qdm12/reprint"
)

const (
	keyState    = "state"
	keySchedule = "schedule"
	keySettings = "settings"

	// a room gains this much per tick while heating and loses it otherwise
	heatingRate = 0.1
	coolingRate = 0.05
)

// State is the simulated process state of the thermostat.
type State struct {
	Mode           device.Mode
	Booting        bool
	RoomTemp       float64
	RadTemp        float64
	OutsideTemp    float64
	ManualSetpoint float64
	Setpoint       float64
	Relay          bool
	WifiPass       string
}

// Device keeps the documents of a simulated thermostat. All accessors return copies.
type Device struct {
	documents cmap.ConcurrentMap[string, interface{}]
	clock     func() time.Time
	reboots   atomic.Int64
}

func NewDevice() *Device {
	return NewDeviceWithClock(time.Now)
}

func NewDeviceWithClock(clock func() time.Time) *Device {
	d := &Device{
		documents: cmap.New[interface{}](),
		clock:     clock,
	}
	d.documents.Set(keyState, State{
		Mode:           device.ModeManual,
		RoomTemp:       19.5,
		RadTemp:        30.0,
		OutsideTemp:    4.0,
		ManualSetpoint: 21.0,
		Setpoint:       21.0,
	})
	d.documents.Set(keySchedule, DefaultSchedule())
	d.documents.Set(keySettings, DefaultSettings())
	return d
}

// DefaultSchedule is a typical program for every day of the week.
func DefaultSchedule() device.Schedule {
	result := device.Schedule{Days: make([]device.ScheduleDay, schedule.DaysInWeek)}
	for i := range result.Days {
		result.Days[i].Points = []device.SchedulePoint{
			{Hour: 6, Minute: 30, Temp: 21.0},
			{Hour: 8, Minute: 30, Temp: 18.0},
			{Hour: 17, Minute: 0, Temp: 21.5},
			{Hour: 22, Minute: 30, Temp: 17.0},
		}
	}
	return result
}

// DefaultSettings mirrors the factory configuration of the device.
func DefaultSettings() device.ConfigDocument {
	doc := device.ConfigDocument{}
	doc.Mqtt.Port = 1883
	doc.Geo.Lat = 50.27
	doc.Geo.Lon = 30.31
	doc.Geo.Interval = 15
	doc.Control.PwmCycleSeconds = 60
	doc.Control.Pid.Kp = 10.0
	doc.Control.Limits.RadMax = 60.0
	doc.Control.Limits.RoomMin = 10.0
	doc.Control.Limits.RoomMax = 30.0
	return doc
}

func (d *Device) State() State {
	value, _ := d.documents.Get(keyState)
	return value.(State)
}

func (d *Device) Schedule() device.Schedule {
	value, _ := d.documents.Get(keySchedule)
	return reprint.This(value).(device.Schedule)
}

// Settings returns the stored configuration, including the wifi password.
func (d *Device) Settings() device.ConfigDocument {
	value, _ := d.documents.Get(keySettings)
	return reprint.This(value).(device.ConfigDocument)
}

func (d *Device) Reboots() int {
	return int(d.reboots.Load())
}

// Status renders the status document. The first report after a reboot shows
// the BOOT state.
func (d *Device) Status() device.RawStatus {
	var s State
	reported := ""
	d.updateState(func(current State) State {
		s = current
		reported = string(current.Mode)
		if current.Booting {
			reported = device.StateBoot
			current.Booting = false
		}
		return current
	})

	return device.RawStatus{
		RoomTemp:        s.RoomTemp,
		RadTemp:         s.RadTemp,
		OutsideTemp:     s.OutsideTemp,
		CurrentSetpoint: s.Setpoint,
		State:           reported,
		Relay:           s.Relay,
		ManualSetpoint:  s.ManualSetpoint,
	}
}

// SetManualSetpoint stores the value as is, the device does not clamp it.
func (d *Device) SetManualSetpoint(value float64) {
	d.updateState(func(s State) State {
		s.ManualSetpoint = value
		return s
	})
}

// SetMode switches the operating mode, unknown modes switch the device off.
func (d *Device) SetMode(mode device.Mode) {
	switch mode {
	case device.ModeManual, device.ModeProgrammed, device.ModeOff, device.ModeAdaptive:
	default:
		ui.Warning("Unknown mode '%s', switching off", mode)
		mode = device.ModeOff
	}
	d.updateState(func(s State) State {
		s.Mode = mode
		return s
	})
}

// StoreSchedule keeps at most schedule.MaxPointsPerDay points per day.
func (d *Device) StoreSchedule(doc device.Schedule) {
	result := device.Schedule{Days: make([]device.ScheduleDay, schedule.DaysInWeek)}
	for i := range result.Days {
		points := []device.SchedulePoint{}
		if i < len(doc.Days) {
			points = doc.Days[i].Points
			if len(points) > schedule.MaxPointsPerDay {
				points = points[:schedule.MaxPointsPerDay]
			}
		}
		result.Days[i].Points = append([]device.SchedulePoint{}, points...)
	}
	d.documents.Set(keySchedule, result)
}

// StoreSettings replaces the configuration and reboots the device.
// An empty wifi password keeps the stored one.
func (d *Device) StoreSettings(doc device.ConfigDocument) {
	d.documents.Upsert(keySettings, doc, func(exist bool, valueInMap interface{}, newValue interface{}) interface{} {
		next := newValue.(device.ConfigDocument)
		if exist && len(next.Wifi.Pass) <= 0 {
			next.Wifi.Pass = valueInMap.(device.ConfigDocument).Wifi.Pass
		}
		return next
	})
	d.reboots.Add(1)
	d.updateState(func(s State) State {
		s.Booting = true
		return s
	})
}

// Tick advances the simulated room by one step.
func (d *Device) Tick() {
	week := schedule.FromDocument(d.Schedule().Raw().Days)
	now := d.clock()
	d.updateState(func(s State) State {
		switch s.Mode {
		case device.ModeManual, device.ModeAdaptive:
			s.Setpoint = s.ManualSetpoint
		case device.ModeProgrammed:
			s.Setpoint = week.EffectiveSetpoint(now)
		}

		s.Relay = s.Mode != device.ModeOff && s.RoomTemp < s.Setpoint
		if s.Relay {
			s.RoomTemp += heatingRate
			s.RadTemp = 55.0
		} else {
			if s.RoomTemp > s.OutsideTemp {
				s.RoomTemp -= coolingRate
			}
			s.RadTemp = s.RoomTemp
		}
		return s
	})
}

func (d *Device) updateState(update func(s State) State) {
	d.documents.Upsert(keyState, State{}, func(exist bool, valueInMap interface{}, newValue interface{}) interface{} {
		if !exist {
			return update(newValue.(State))
		}
		return update(valueInMap.(State))
	})
}
