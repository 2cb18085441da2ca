package editor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/markusressel/heat2go/internal/device"
	"github.com/markusressel/heat2go/internal/persistence"
	"github.com/markusressel/heat2go/internal/schedule"
	"github.com/markusressel/heat2go/internal/settings"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deviceUrl = "http://thermostat.local"

type MockScheduleTransport struct {
	doc     device.Schedule
	posted  []device.Schedule
	gets    int
	postErr error
}

func (m *MockScheduleTransport) GetSchedule(ctx context.Context) (device.RawSchedule, error) {
	m.gets++
	return m.doc.Raw(), nil
}

func (m *MockScheduleTransport) PostSchedule(ctx context.Context, doc device.Schedule) error {
	if m.postErr != nil {
		return m.postErr
	}
	m.posted = append(m.posted, doc)
	return nil
}

type MockSettingsTransport struct {
	raw    device.RawSettings
	posted []device.ConfigDocument
	gets   int
}

func (m *MockSettingsTransport) GetSettings(ctx context.Context) (device.RawSettings, error) {
	m.gets++
	return m.raw, nil
}

func (m *MockSettingsTransport) PostSettings(ctx context.Context, doc device.ConfigDocument) error {
	m.posted = append(m.posted, doc)
	return nil
}

func createPersistence(t *testing.T) persistence.Persistence {
	p := persistence.NewPersistence(filepath.Join(t.TempDir(), "heat2go.db"))
	require.NoError(t, p.Init())
	return p
}

func createScheduleTransport() *MockScheduleTransport {
	doc := device.Schedule{Days: make([]device.ScheduleDay, 7)}
	for i := range doc.Days {
		doc.Days[i].Points = []device.SchedulePoint{{Hour: 6, Minute: 0, Temp: 21}}
	}
	return &MockScheduleTransport{doc: doc}
}

func TestScheduleSession_EditsSurviveReopen(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	transport := createScheduleTransport()
	session, err := OpenScheduleSession(context.Background(), transport, p, deviceUrl, false)
	require.NoError(t, err)
	assert.False(t, session.FromDraft())

	// WHEN
	require.NoError(t, session.Select(3))
	require.NoError(t, session.AddRow(schedule.Row{Hour: "22", Minute: "30", Temp: "40"}))
	require.NoError(t, session.Save())

	reopened, err := OpenScheduleSession(context.Background(), transport, p, deviceUrl, false)
	require.NoError(t, err)

	// THEN
	assert.True(t, reopened.FromDraft())
	assert.Equal(t, 1, transport.gets)
	assert.Equal(t, 3, reopened.Store.SelectedDay())
	assert.Equal(t, []schedule.Point{
		{Hour: 6, Minute: 0, Temp: 21},
		{Hour: 22, Minute: 30, Temp: 35},
	}, reopened.Store.Points(3))
	assert.Len(t, reopened.View.Rows(), 2)
}

func TestScheduleSession_PullIgnoresDraft(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	transport := createScheduleTransport()
	session, err := OpenScheduleSession(context.Background(), transport, p, deviceUrl, false)
	require.NoError(t, err)
	require.NoError(t, session.SetRow(0, schedule.Row{Hour: "7", Minute: "0", Temp: "19"}))
	require.NoError(t, session.Save())

	// WHEN
	pulled, err := OpenScheduleSession(context.Background(), transport, p, deviceUrl, true)

	// THEN
	require.NoError(t, err)
	assert.False(t, pulled.FromDraft())
	assert.Equal(t, 2, transport.gets)
	assert.Equal(t, []schedule.Point{{Hour: 6, Minute: 0, Temp: 21}}, pulled.Store.Points(1))
}

func TestScheduleSession_RemovingLastRowClearsDay(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	session, err := OpenScheduleSession(context.Background(), createScheduleTransport(), p, deviceUrl, false)
	require.NoError(t, err)

	// WHEN
	err = session.RemoveRow(0)

	// THEN
	require.NoError(t, err)
	assert.Empty(t, session.Store.Points(1))
	doc, err := session.Store.Document()
	require.NoError(t, err)
	assert.NotNil(t, doc.Days[1].Points)
	assert.Empty(t, doc.Days[1].Points)
}

func TestScheduleSession_RemoveUnknownRow(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	session, err := OpenScheduleSession(context.Background(), createScheduleTransport(), p, deviceUrl, false)
	require.NoError(t, err)

	// WHEN
	err = session.RemoveRow(5)

	// THEN
	assert.ErrorIs(t, err, schedule.ErrRowNotFound)
}

func TestScheduleSession_PushDropsDraft(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	transport := createScheduleTransport()
	session, err := OpenScheduleSession(context.Background(), transport, p, deviceUrl, false)
	require.NoError(t, err)
	require.NoError(t, session.SetRow(0, schedule.Row{Hour: "7", Minute: "15", Temp: "19.5"}))
	require.NoError(t, session.Save())

	// WHEN
	err = session.Push(context.Background())

	// THEN
	require.NoError(t, err)
	require.Len(t, transport.posted, 1)
	assert.Equal(t, []device.SchedulePoint{{Hour: 7, Minute: 15, Temp: 19.5}}, transport.posted[0].Days[1].Points)
	_, err = p.LoadScheduleDraft(deviceUrl)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScheduleSession_FailedPushKeepsDraft(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	transport := createScheduleTransport()
	transport.postErr = errors.New("offline")
	session, err := OpenScheduleSession(context.Background(), transport, p, deviceUrl, false)
	require.NoError(t, err)
	require.NoError(t, session.SetRow(0, schedule.Row{Hour: "7", Minute: "15", Temp: "19.5"}))

	// WHEN
	err = session.Push(context.Background())

	// THEN
	assert.EqualError(t, err, "offline")
	draft, err := p.LoadScheduleDraft(deviceUrl)
	require.NoError(t, err)
	assert.Equal(t, 19.5, draft.Schedule.Days[1].Points[0].Temp)
}

func TestScheduleSession_Replace(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	session, err := OpenScheduleSession(context.Background(), createScheduleTransport(), p, deviceUrl, false)
	require.NoError(t, err)
	require.NoError(t, session.Select(5))

	// WHEN
	err = session.Replace(device.RawSchedule{Days: []device.RawScheduleDay{
		{Points: []device.RawSchedulePoint{
			{Hour: 1.0, Minute: 2.0, Temp: 3.0},
			{Hour: "x", Minute: 0.0, Temp: 20.0},
		}},
	}})

	// THEN
	require.NoError(t, err)
	assert.Equal(t, 5, session.Store.SelectedDay())
	assert.Equal(t, []schedule.Point{{Hour: 1, Minute: 2, Temp: 5}}, session.Store.Points(0))
	assert.Empty(t, session.Store.Points(5))
	assert.Error(t, session.Replace(device.RawSchedule{}))
}

func TestSettingsSession_SetValidatesBounds(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	transport := &MockSettingsTransport{raw: device.RawSettings{
		Mqtt: &device.RawMqtt{Host: "broker", Port: 99999.0, Token: "abc"},
	}}
	session, err := OpenSettingsSession(context.Background(), transport, p, deviceUrl, false)
	require.NoError(t, err)

	// THEN
	require.Len(t, session.Diagnostics(), 1)
	assert.Equal(t, settings.FieldMqttPort, session.Diagnostics()[0].Field)
	assert.Equal(t, "1883", session.Fields.Get(settings.FieldMqttPort))

	// WHEN
	err = session.Set(settings.FieldMqttPort, "70000")

	// THEN
	assert.EqualError(t, err, "mqtt.port must be in range 1..65535, got: 70000")

	// WHEN
	err = session.Set(settings.FieldMqttPort, "abc")

	// THEN
	assert.EqualError(t, err, "mqtt.port must be a number, got: abc")

	// WHEN
	err = session.Set(settings.FieldGeoLat, "48.1")
	require.NoError(t, err)
	err = session.Set(settings.FieldMqttHost, "mqtt.example.org")
	require.NoError(t, err)

	// THEN
	assert.Equal(t, "48.1000", session.Fields.Get(settings.FieldGeoLat))
	assert.Equal(t, "mqtt.example.org", session.Fields.Get(settings.FieldMqttHost))
}

func TestSettingsSession_DraftAndPush(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	transport := &MockSettingsTransport{raw: device.RawSettings{
		Wifi: &device.RawWifi{SSID: "home", Pass: ""},
		Mqtt: &device.RawMqtt{Host: "broker", Port: 1883.0, Token: "abc"},
	}}
	session, err := OpenSettingsSession(context.Background(), transport, p, deviceUrl, false)
	require.NoError(t, err)
	require.NoError(t, session.Set(settings.FieldWifiPass, "secret"))
	require.NoError(t, session.Save())

	// WHEN
	reopened, err := OpenSettingsSession(context.Background(), transport, p, deviceUrl, false)
	require.NoError(t, err)

	// THEN
	assert.True(t, reopened.FromDraft())
	assert.Equal(t, 1, transport.gets)
	assert.Equal(t, "secret", reopened.Fields.Get(settings.FieldWifiPass))

	// WHEN
	err = reopened.Push(context.Background(), ui.AutoConfirmer{Answer: false})

	// THEN
	assert.ErrorIs(t, err, settings.ErrNotConfirmed)
	assert.Empty(t, transport.posted)

	// WHEN
	err = reopened.Push(context.Background(), ui.AutoConfirmer{Answer: true})

	// THEN
	require.NoError(t, err)
	require.Len(t, transport.posted, 1)
	assert.Equal(t, "home", transport.posted[0].Wifi.SSID)
	assert.Equal(t, "secret", transport.posted[0].Wifi.Pass)
	assert.Equal(t, 1883, transport.posted[0].Mqtt.Port)
	_, err = p.LoadSettingsDraft(deviceUrl)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
