package setpoint

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/markusressel/heat2go/internal/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockSender struct {
	Actions []device.Action
	Err     error
}

func (s *MockSender) SendAction(ctx context.Context, action device.Action) error {
	s.Actions = append(s.Actions, action)
	return s.Err
}

type MockDisplay struct {
	Values []float64
}

func (d *MockDisplay) ShowManualSetpoint(value float64) {
	d.Values = append(d.Values, value)
}

func TestController_Adjust(t *testing.T) {
	// GIVEN
	sender := &MockSender{}
	display := &MockDisplay{}
	c := NewController(sender, display)

	// WHEN
	value, err := c.Adjust(context.Background(), 0.5)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, 21.5, value)
	assert.Equal(t, 21.5, c.Current())
	assert.Equal(t, []float64{21.5}, display.Values)
	require.Len(t, sender.Actions, 1)
	assert.Equal(t, device.ActionSetTemp, sender.Actions[0].Action)
	assert.Equal(t, 21.5, *sender.Actions[0].Value)
}

func TestController_AdjustClamps(t *testing.T) {
	// GIVEN
	sender := &MockSender{}
	c := NewController(sender, nil)

	// WHEN
	low, _ := c.Adjust(context.Background(), -100)
	// THEN
	assert.Equal(t, MinTemp, low)

	// WHEN
	high, _ := c.Adjust(context.Background(), 100)
	// THEN
	assert.Equal(t, MaxTemp, high)
	assert.Equal(t, MaxTemp, *sender.Actions[1].Value)
}

func TestController_AdjustNeverLeavesRange(t *testing.T) {
	// GIVEN
	c := NewController(&MockSender{}, nil)
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		// WHEN
		_, _ = c.Adjust(context.Background(), (r.Float64()-0.5)*20)

		// THEN
		assert.GreaterOrEqual(t, c.Current(), MinTemp)
		assert.LessOrEqual(t, c.Current(), MaxTemp)
	}
}

func TestController_AdjustKeepsLocalValueOnFailure(t *testing.T) {
	// GIVEN
	sender := &MockSender{Err: errors.New("connection refused")}
	c := NewController(sender, nil)

	// WHEN
	value, err := c.Adjust(context.Background(), 1)

	// THEN
	assert.Error(t, err)
	assert.Equal(t, 22.0, value)
	assert.Equal(t, 22.0, c.Current())
	assert.Len(t, sender.Actions, 1)
}

func TestController_ReconcileWithinTolerance(t *testing.T) {
	// GIVEN
	display := &MockDisplay{}
	c := NewControllerWithValue(21.0, &MockSender{}, display)

	// WHEN
	changed := c.Reconcile(21.05)

	// THEN
	assert.False(t, changed)
	assert.Equal(t, 21.0, c.Current())
	assert.Empty(t, display.Values)
}

func TestController_ReconcileOutsideTolerance(t *testing.T) {
	// GIVEN
	display := &MockDisplay{}
	c := NewControllerWithValue(21.0, &MockSender{}, display)

	// WHEN
	changed := c.Reconcile(23.0)

	// THEN
	assert.True(t, changed)
	assert.Equal(t, 23.0, c.Current())
	assert.Equal(t, []float64{23.0}, display.Values)
}

func TestController_ReconcileChangesOnlyBeyondTolerance(t *testing.T) {
	// GIVEN
	reported := []float64{20.0, 20.95, 21.0, 21.05, 21.2, 25, 5}

	for _, d := range reported {
		c := NewControllerWithValue(21.0, &MockSender{}, nil)
		expectChange := d < 20.9 || d > 21.1

		// WHEN
		changed := c.Reconcile(d)

		// THEN
		assert.Equal(t, expectChange, changed, "reported: %v", d)
		if expectChange {
			assert.Equal(t, d, c.Current())
		} else {
			assert.Equal(t, 21.0, c.Current())
		}
	}
}

func TestController_EchoOfOwnCommandDoesNotFlicker(t *testing.T) {
	// GIVEN
	c := NewControllerWithValue(21.0, &MockSender{}, nil)
	_, _ = c.Adjust(context.Background(), Step)

	// WHEN
	// the device stores the value as float32 and reports it back
	changed := c.Reconcile(float64(float32(21.1)))

	// THEN
	assert.False(t, changed)
	assert.InDelta(t, 21.1, c.Current(), 0.0001)
}

func TestController_SetMode(t *testing.T) {
	// GIVEN
	sender := &MockSender{}
	c := NewController(sender, nil)

	// WHEN
	err := c.SetMode(context.Background(), "programmed")

	// THEN
	require.NoError(t, err)
	require.Len(t, sender.Actions, 1)
	assert.Equal(t, device.SetModeAction(device.ModeProgrammed), sender.Actions[0])
}

func TestController_SetModeUnknown(t *testing.T) {
	// GIVEN
	sender := &MockSender{}
	c := NewController(sender, nil)

	// WHEN
	err := c.SetMode(context.Background(), "EMERGENCY")

	// THEN
	assert.ErrorIs(t, err, ErrUnknownMode)
	assert.Empty(t, sender.Actions)
}

func TestController_ReconcileIgnoresImplausibleValues(t *testing.T) {
	for _, reported := range []float64{0, 4.9, 35.1, 40, -10, math.NaN(), math.Inf(1)} {
		// GIVEN
		display := &MockDisplay{}
		c := NewControllerWithValue(21.0, &MockSender{}, display)

		// WHEN
		changed := c.Reconcile(reported)

		// THEN
		assert.False(t, changed, "reported: %v", reported)
		assert.Equal(t, 21.0, c.Current())
		assert.Empty(t, display.Values)
	}
}
