package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/markusressel/heat2go/internal/device"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/qdm12/reprint"
)

var (
	ErrNotLoaded  = errors.New("schedule has not been loaded yet")
	ErrInvalidDay = fmt.Errorf("day must be in range 0..%d", DaysInWeek-1)
)

// Store owns the weekly schedule and the day that is currently being edited.
// Edits made in the RowView are captured into the schedule whenever the
// selected day changes and before anything is sent to the device.
type Store struct {
	schedule  *WeeklySchedule
	selected  int
	view      RowView
	transport device.ScheduleTransport
}

func NewStore(transport device.ScheduleTransport, view RowView) *Store {
	return &Store{
		selected:  DefaultDay,
		view:      view,
		transport: transport,
	}
}

func (s *Store) Loaded() bool {
	return s.schedule != nil
}

func (s *Store) SelectedDay() int {
	return s.selected
}

// Load replaces the whole schedule, local edits are discarded.
func (s *Store) Load(days []device.RawScheduleDay) {
	week := FromDocument(days)
	s.schedule = &week
	s.render()
}

// Fetch loads the schedule from the device. On failure nothing changes.
func (s *Store) Fetch(ctx context.Context) error {
	doc, err := s.transport.GetSchedule(ctx)
	if err != nil {
		ui.Error("Schedule load error: %v", err)
		return err
	}
	if doc.Days == nil {
		return fmt.Errorf("schedule response is missing days")
	}
	s.Load(doc.Days)
	return nil
}

// SelectDay captures the rows of the current day and shows the given one.
func (s *Store) SelectDay(day int) ([]Point, error) {
	if day < 0 || day >= DaysInWeek {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}
	s.FlushSelectedDay()
	s.selected = day
	s.render()
	return s.Points(day), nil
}

// FlushSelectedDay captures the rows of the current day into the schedule.
// Rows that do not parse are dropped, temperatures are clamped.
// Nothing is captured if the view holds no rows at all.
func (s *Store) FlushSelectedDay() {
	if s.schedule == nil {
		return
	}
	rows := s.view.Rows()
	if len(rows) <= 0 {
		return
	}

	points := make([]Point, 0, len(rows))
	for idx, row := range rows {
		point, ok := parseRow(row)
		if !ok {
			ui.Debug("Dropping unparsable row P%d of day %d: %+v", idx+1, s.selected, row)
			continue
		}
		points = append(points, point)
	}
	s.schedule[s.selected].Points = points
}

// ClearSelectedDay removes all points of the current day.
func (s *Store) ClearSelectedDay() error {
	if s.schedule == nil {
		return ErrNotLoaded
	}
	s.schedule[s.selected].Points = []Point{}
	s.render()
	return nil
}

// Submit captures the current day and sends the whole schedule to the device.
// A failed transmission leaves all local edits in place.
func (s *Store) Submit(ctx context.Context) error {
	s.FlushSelectedDay()
	if s.schedule == nil {
		return ErrNotLoaded
	}

	for day, d := range s.schedule {
		if len(d.Points) > MaxPointsPerDay {
			ui.Warning("Day %d has %d points, the device only keeps the first %d", day, len(d.Points), MaxPointsPerDay)
		}
	}

	err := s.transport.PostSchedule(ctx, s.schedule.Document())
	if err != nil {
		ui.Error("Failed to save schedule: %v", err)
		return err
	}
	return nil
}

// Points returns a copy of the points of the given day.
func (s *Store) Points(day int) []Point {
	if s.schedule == nil || day < 0 || day >= DaysInWeek {
		return []Point{}
	}
	points := s.schedule[day].Points
	if len(points) <= 0 {
		return []Point{}
	}
	return reprint.This(points).([]Point)
}

// Week returns a copy of the whole schedule.
func (s *Store) Week() (WeeklySchedule, error) {
	if s.schedule == nil {
		return WeeklySchedule{}, ErrNotLoaded
	}
	var week WeeklySchedule
	for day := range week {
		week[day].Points = s.Points(day)
	}
	return week, nil
}

// Document returns the schedule in its device representation.
func (s *Store) Document() (device.Schedule, error) {
	week, err := s.Week()
	if err != nil {
		return device.Schedule{}, err
	}
	return week.Document(), nil
}

// EffectiveSetpoint returns the setpoint the device applies at the given time.
func (s *Store) EffectiveSetpoint(at time.Time) float64 {
	if s.schedule == nil {
		return FallbackSetpoint
	}
	return s.schedule.EffectiveSetpoint(at)
}

func (s *Store) render() {
	s.view.Render(s.Points(s.selected))
}

func parseRow(row Row) (Point, bool) {
	return parsePoint(row.Hour, row.Minute, row.Temp)
}
