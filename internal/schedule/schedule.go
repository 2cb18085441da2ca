package schedule

import (
	"time"

	"github.com/markusressel/heat2go/internal/device"
	"github.com/markusressel/heat2go/internal/sanitize"
	"github.com/markusressel/heat2go/internal/ui"
)

const (
	DaysInWeek = 7
	DefaultDay = 1

	MinTemp = 5.0
	MaxTemp = 35.0

	// MaxPointsPerDay is the number of points per day the device keeps, it drops the rest.
	MaxPointsPerDay = 4
	// FallbackSetpoint is used by the device if no point applies at all.
	FallbackSetpoint = 18.0
)

// Point is a single time/temperature entry of a day program.
type Point struct {
	Hour   int
	Minute int
	Temp   float64
}

// MinuteOfDay returns the position of this point within the day.
func (p Point) MinuteOfDay() int {
	return p.Hour*60 + p.Minute
}

type Day struct {
	Points []Point
}

// WeeklySchedule holds one Day per weekday, index 0 is Sunday.
type WeeklySchedule [DaysInWeek]Day

// ClampTemp limits a temperature to [MinTemp, MaxTemp].
func ClampTemp(t float64) float64 {
	if t < MinTemp {
		return MinTemp
	}
	if t > MaxTemp {
		return MaxTemp
	}
	return t
}

// FromDocument builds a WeeklySchedule from the device representation.
// Missing days stay empty, additional days are ignored, points that do not
// parse are dropped and all temperatures are clamped.
func FromDocument(days []device.RawScheduleDay) WeeklySchedule {
	var week WeeklySchedule
	for i := 0; i < DaysInWeek && i < len(days); i++ {
		points := make([]Point, 0, len(days[i].Points))
		for idx, p := range days[i].Points {
			point, ok := parsePoint(p.Hour, p.Minute, p.Temp)
			if !ok {
				ui.Warning("Dropping malformed point P%d of day %d: %+v", idx+1, i, p)
				continue
			}
			points = append(points, point)
		}
		week[i].Points = points
	}
	return week
}

// Document converts the schedule into the device representation.
func (w WeeklySchedule) Document() device.Schedule {
	result := device.Schedule{Days: make([]device.ScheduleDay, DaysInWeek)}
	for i, day := range w {
		points := make([]device.SchedulePoint, 0, len(day.Points))
		for _, p := range day.Points {
			points = append(points, device.SchedulePoint{Hour: p.Hour, Minute: p.Minute, Temp: p.Temp})
		}
		result.Days[i].Points = points
	}
	return result
}

// EffectiveSetpoint evaluates the schedule the same way the device does:
// the last point of today that has passed wins, before the first point of the
// day the last point of yesterday still applies.
func (w *WeeklySchedule) EffectiveSetpoint(at time.Time) float64 {
	today := int(at.Weekday())
	yesterday := (today - 1 + DaysInWeek) % DaysInWeek

	setpoint := FallbackSetpoint
	if points := w[yesterday].Points; len(points) > 0 {
		setpoint = points[len(points)-1].Temp
	}

	now := at.Hour()*60 + at.Minute()
	for _, p := range w[today].Points {
		if now >= p.MinuteOfDay() {
			setpoint = p.Temp
		}
	}
	return setpoint
}

// parsePoint converts untyped hour, minute and temperature values into a Point.
// Hour and minute are truncated but not range checked.
func parsePoint(hour interface{}, minute interface{}, temp interface{}) (Point, bool) {
	h, ok := sanitize.ParseInt(hour)
	if !ok {
		return Point{}, false
	}
	m, ok := sanitize.ParseInt(minute)
	if !ok {
		return Point{}, false
	}
	t, ok := sanitize.Parse(temp)
	if !ok {
		return Point{}, false
	}
	return Point{Hour: h, Minute: m, Temp: ClampTemp(t)}, true
}
