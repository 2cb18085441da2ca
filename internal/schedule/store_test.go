package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/markusressel/heat2go/internal/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockTransport struct {
	Schedule device.RawSchedule
	Posted   []device.Schedule
	GetErr   error
	PostErr  error
}

func (m *MockTransport) GetSchedule(ctx context.Context) (device.RawSchedule, error) {
	return m.Schedule, m.GetErr
}

func (m *MockTransport) PostSchedule(ctx context.Context, schedule device.Schedule) error {
	m.Posted = append(m.Posted, schedule)
	return m.PostErr
}

func raw(days []device.ScheduleDay) []device.RawScheduleDay {
	return device.Schedule{Days: days}.Raw().Days
}

func createDocument() []device.RawScheduleDay {
	days := make([]device.ScheduleDay, DaysInWeek)
	days[1].Points = []device.SchedulePoint{{Hour: 6, Minute: 30, Temp: 21.5}}
	days[2].Points = []device.SchedulePoint{
		{Hour: 7, Minute: 0, Temp: 20},
		{Hour: 22, Minute: 0, Temp: 17},
	}
	return raw(days)
}

func createStore(t *testing.T) (*Store, *MemoryRowView, *MockTransport) {
	transport := &MockTransport{}
	view := NewMemoryRowView()
	store := NewStore(transport, view)
	store.Load(createDocument())
	require.True(t, store.Loaded())
	return store, view, transport
}

func TestStore_LoadRendersSelectedDay(t *testing.T) {
	// GIVEN
	_, view, _ := createStore(t)

	// THEN
	assert.Equal(t, []Row{{Hour: "6", Minute: "30", Temp: "21.5"}}, view.Rows())
}

func TestStore_LoadClampsTemperatures(t *testing.T) {
	// GIVEN
	store := NewStore(&MockTransport{}, NewMemoryRowView())
	days := make([]device.ScheduleDay, DaysInWeek)
	days[3].Points = []device.SchedulePoint{{Hour: 1, Minute: 0, Temp: 4.9}, {Hour: 2, Minute: 0, Temp: 35.1}}

	// WHEN
	store.Load(raw(days))

	// THEN
	assert.Equal(t, []Point{{Hour: 1, Minute: 0, Temp: 5}, {Hour: 2, Minute: 0, Temp: 35}}, store.Points(3))
}

func TestStore_LoadNormalizesToSevenDays(t *testing.T) {
	// GIVEN
	store := NewStore(&MockTransport{}, NewMemoryRowView())
	days := make([]device.ScheduleDay, 9)
	days[8].Points = []device.SchedulePoint{{Hour: 1, Minute: 0, Temp: 20}}

	// WHEN
	store.Load(raw(days[:2]))
	short, err := store.Document()

	// THEN
	require.NoError(t, err)
	assert.Len(t, short.Days, DaysInWeek)

	// WHEN
	store.Load(raw(days))
	long, err := store.Document()

	// THEN
	require.NoError(t, err)
	assert.Len(t, long.Days, DaysInWeek)
	for _, d := range long.Days {
		assert.Empty(t, d.Points)
	}
}

func TestStore_LoadDiscardsLocalEdits(t *testing.T) {
	// GIVEN
	store, view, _ := createStore(t)
	_ = view.Edit(0, Row{Hour: "8", Minute: "0", Temp: "19"})
	store.FlushSelectedDay()

	// WHEN
	store.Load(createDocument())

	// THEN
	assert.Equal(t, []Point{{Hour: 6, Minute: 30, Temp: 21.5}}, store.Points(1))
	assert.Equal(t, "6", view.Rows()[0].Hour)
}

func TestStore_SelectDayFlushesAndRenders(t *testing.T) {
	// GIVEN
	store, view, _ := createStore(t)
	_ = view.Edit(0, Row{Hour: "6", Minute: "30", Temp: "40"})

	// WHEN
	points, err := store.SelectDay(2)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, 2, store.SelectedDay())
	assert.Len(t, points, 2)
	assert.Len(t, view.Rows(), 2)
	assert.Equal(t, []Point{{Hour: 6, Minute: 30, Temp: 35}}, store.Points(1))
}

func TestStore_SelectDayEmptyDay(t *testing.T) {
	// GIVEN
	store, view, _ := createStore(t)

	// WHEN
	points, err := store.SelectDay(0)

	// THEN
	require.NoError(t, err)
	assert.NotNil(t, points)
	assert.Empty(t, points)
	assert.Empty(t, view.Rows())
}

func TestStore_SelectDayInvalid(t *testing.T) {
	// GIVEN
	store, _, _ := createStore(t)

	// WHEN
	_, err := store.SelectDay(7)

	// THEN
	assert.ErrorIs(t, err, ErrInvalidDay)
	assert.Equal(t, DefaultDay, store.SelectedDay())
}

func TestStore_EditsSurviveDaySwitchRoundTrip(t *testing.T) {
	// GIVEN
	store, view, _ := createStore(t)
	_ = view.Edit(0, Row{Hour: "5", Minute: "45", Temp: "19.5"})
	_ = view.Append(Row{Hour: "21", Minute: "15", Temp: "16"})

	// WHEN
	_, _ = store.SelectDay(4)
	points, _ := store.SelectDay(1)

	// THEN
	expected := []Point{{Hour: 5, Minute: 45, Temp: 19.5}, {Hour: 21, Minute: 15, Temp: 16}}
	assert.Equal(t, expected, points)
	assert.Equal(t, []Row{
		{Hour: "5", Minute: "45", Temp: "19.5"},
		{Hour: "21", Minute: "15", Temp: "16"},
	}, view.Rows())
}

func TestStore_FlushDropsUnparsableRows(t *testing.T) {
	// GIVEN
	store, view, _ := createStore(t)
	_ = view.Append(Row{Hour: "x", Minute: "0", Temp: "20"})
	_ = view.Append(Row{Hour: "7", Minute: "", Temp: "20"})
	_ = view.Append(Row{Hour: "8", Minute: "0", Temp: "warm"})

	// WHEN
	store.FlushSelectedDay()

	// THEN
	assert.Equal(t, []Point{{Hour: 6, Minute: 30, Temp: 21.5}}, store.Points(1))
}

func TestStore_FlushClampsTemperatureOnly(t *testing.T) {
	// GIVEN
	store, view, _ := createStore(t)
	_ = view.Edit(0, Row{Hour: "25", Minute: "75", Temp: "4.9"})
	_ = view.Append(Row{Hour: "-1", Minute: "0", Temp: "35.1"})

	// WHEN
	store.FlushSelectedDay()

	// THEN
	assert.Equal(t, []Point{
		{Hour: 25, Minute: 75, Temp: 5},
		{Hour: -1, Minute: 0, Temp: 35},
	}, store.Points(1))
}

func TestStore_FlushWithEmptyViewKeepsDay(t *testing.T) {
	// GIVEN
	store, view, _ := createStore(t)
	_ = view.Remove(0)

	// WHEN
	store.FlushSelectedDay()

	// THEN
	assert.Len(t, store.Points(1), 1)
}

func TestStore_ClearSelectedDay(t *testing.T) {
	// GIVEN
	store, view, _ := createStore(t)

	// WHEN
	err := store.ClearSelectedDay()
	_, _ = store.SelectDay(2)

	// THEN
	require.NoError(t, err)
	assert.Empty(t, store.Points(1))
	assert.Len(t, view.Rows(), 2)
}

func TestStore_FlushWhenUnloadedIsNoop(t *testing.T) {
	// GIVEN
	view := NewMemoryRowView()
	store := NewStore(&MockTransport{}, view)
	_ = view.Append(Row{Hour: "1", Minute: "0", Temp: "20"})

	// WHEN
	store.FlushSelectedDay()
	points, err := store.SelectDay(3)

	// THEN
	require.NoError(t, err)
	assert.False(t, store.Loaded())
	assert.Empty(t, points)
}

func TestStore_Submit(t *testing.T) {
	// GIVEN
	store, view, transport := createStore(t)
	_ = view.Edit(0, Row{Hour: "6", Minute: "30", Temp: "40"})

	// WHEN
	err := store.Submit(context.Background())

	// THEN
	require.NoError(t, err)
	require.Len(t, transport.Posted, 1)
	posted := transport.Posted[0]
	assert.Len(t, posted.Days, DaysInWeek)
	assert.Equal(t, []device.SchedulePoint{{Hour: 6, Minute: 30, Temp: 35}}, posted.Days[1].Points)
	assert.NotNil(t, posted.Days[0].Points)
}

func TestStore_SubmitFailureKeepsLocalEdits(t *testing.T) {
	// GIVEN
	store, view, transport := createStore(t)
	transport.PostErr = errors.New("timeout")
	_ = view.Edit(0, Row{Hour: "9", Minute: "0", Temp: "22"})

	// WHEN
	err := store.Submit(context.Background())

	// THEN
	assert.Error(t, err)
	assert.Equal(t, []Point{{Hour: 9, Minute: 0, Temp: 22}}, store.Points(1))
	assert.Equal(t, "9", view.Rows()[0].Hour)

	// WHEN
	transport.PostErr = nil
	err = store.Submit(context.Background())

	// THEN
	require.NoError(t, err)
	assert.Len(t, transport.Posted, 2)
	assert.Equal(t, 22.0, transport.Posted[1].Days[1].Points[0].Temp)
}

func TestStore_SubmitUnloaded(t *testing.T) {
	// GIVEN
	transport := &MockTransport{}
	store := NewStore(transport, NewMemoryRowView())

	// WHEN
	err := store.Submit(context.Background())

	// THEN
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.Empty(t, transport.Posted)
}

func TestStore_FetchFailureKeepsState(t *testing.T) {
	// GIVEN
	store, _, transport := createStore(t)
	transport.GetErr = errors.New("offline")

	// WHEN
	err := store.Fetch(context.Background())

	// THEN
	assert.Error(t, err)
	assert.Len(t, store.Points(2), 2)
}

func TestStore_Fetch(t *testing.T) {
	// GIVEN
	transport := &MockTransport{Schedule: device.RawSchedule{Days: createDocument()}}
	view := NewMemoryRowView()
	store := NewStore(transport, view)

	// WHEN
	err := store.Fetch(context.Background())

	// THEN
	require.NoError(t, err)
	assert.Len(t, view.Rows(), 1)
}

func TestStore_FetchDropsMalformedPoints(t *testing.T) {
	// GIVEN
	days := make([]device.RawScheduleDay, DaysInWeek)
	days[1].Points = []device.RawSchedulePoint{
		{Hour: 6.0, Minute: 30.0, Temp: nil},
		{Hour: "7", Minute: 0.0, Temp: 20.0},
		{Hour: 8.5, Minute: "15", Temp: "19.5"},
		{Minute: 0.0, Temp: 21.0},
		{Hour: 1e20, Minute: 0.0, Temp: 21.0},
		{Hour: 22.0, Minute: 0.0, Temp: "warm"},
	}
	transport := &MockTransport{Schedule: device.RawSchedule{Days: days}}
	store := NewStore(transport, NewMemoryRowView())

	// WHEN
	err := store.Fetch(context.Background())

	// THEN
	require.NoError(t, err)
	assert.True(t, store.Loaded())
	assert.Equal(t, []Point{
		{Hour: 7, Minute: 0, Temp: 20},
		{Hour: 8, Minute: 15, Temp: 19.5},
	}, store.Points(1))
}

func TestStore_FlushDropsRowsOutsideIntRange(t *testing.T) {
	// GIVEN
	store, view, _ := createStore(t)
	_ = view.Append(Row{Hour: "1e20", Minute: "0", Temp: "20"})

	// WHEN
	store.FlushSelectedDay()

	// THEN
	assert.Equal(t, []Point{{Hour: 6, Minute: 30, Temp: 21.5}}, store.Points(1))
}

func TestStore_PointsReturnsCopy(t *testing.T) {
	// GIVEN
	store, _, _ := createStore(t)

	// WHEN
	points := store.Points(1)
	points[0].Temp = 30

	// THEN
	assert.Equal(t, 21.5, store.Points(1)[0].Temp)
}

func TestStore_EffectiveSetpoint(t *testing.T) {
	// GIVEN
	store, _, _ := createStore(t)
	// 2024-01-02 is a Tuesday (day 2), day 1 ends with 21.5
	tuesday := func(h, m int) time.Time {
		return time.Date(2024, 1, 2, h, m, 0, 0, time.Local)
	}

	// THEN
	assert.Equal(t, 21.5, store.EffectiveSetpoint(tuesday(6, 59)))
	assert.Equal(t, 20.0, store.EffectiveSetpoint(tuesday(7, 0)))
	assert.Equal(t, 17.0, store.EffectiveSetpoint(tuesday(23, 0)))
	// Monday has no predecessor points on Sunday
	assert.Equal(t, FallbackSetpoint, store.EffectiveSetpoint(time.Date(2024, 1, 1, 5, 0, 0, 0, time.Local)))
}

func TestStore_EffectiveSetpointUnloaded(t *testing.T) {
	store := NewStore(&MockTransport{}, NewMemoryRowView())
	assert.Equal(t, FallbackSetpoint, store.EffectiveSetpoint(time.Now()))
}

func TestMemoryRowView_AppendLimit(t *testing.T) {
	// GIVEN
	view := NewMemoryRowView()
	for i := 0; i < MaxPointsPerDay; i++ {
		require.NoError(t, view.Append(Row{}))
	}

	// WHEN
	err := view.Append(Row{})

	// THEN
	assert.ErrorIs(t, err, ErrTooManyRows)
}

func TestMemoryRowView_RowNotFound(t *testing.T) {
	view := NewMemoryRowView()
	assert.ErrorIs(t, view.Edit(0, Row{}), ErrRowNotFound)
	assert.ErrorIs(t, view.Remove(-1), ErrRowNotFound)
	_, err := view.Row(3)
	assert.ErrorIs(t, err, ErrRowNotFound)
}
