package poller

import (
	"context"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/heat2go/internal/device"
	"github.com/markusressel/heat2go/internal/setpoint"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/markusressel/heat2go/internal/util"
)

const DefaultPollingRate = 2 * time.Second

// Reconciler takes the manual setpoint reported by the device.
type Reconciler interface {
	Reconcile(deviceSetpoint float64) bool
}

// Snapshot is the result of a single poll.
type Snapshot struct {
	Time      time.Time
	Online    bool
	Err       error
	Telemetry Telemetry
	// RoomTrend is the moving average of the valid room temperatures.
	RoomTrend float64
	// RoomMin and RoomMax span the same window as RoomTrend.
	RoomMin        float64
	RoomMax        float64
	HasTrend       bool
	ManualSetpoint float64
	Reconciled     bool
}

type Listener func(snapshot Snapshot)

type Poller struct {
	fetcher     device.StatusFetcher
	reconciler  Reconciler
	listener    Listener
	pollingRate time.Duration

	windowSize   int
	window       *rolling.PointPolicy
	windowFilled bool

	online bool
	last   *Snapshot
}

func NewPoller(
	fetcher device.StatusFetcher,
	reconciler Reconciler,
	pollingRate time.Duration,
	windowSize int,
	listener Listener,
) *Poller {
	if pollingRate <= 0 {
		pollingRate = DefaultPollingRate
	}
	if windowSize < 1 {
		windowSize = 1
	}
	return &Poller{
		fetcher:     fetcher,
		reconciler:  reconciler,
		listener:    listener,
		pollingRate: pollingRate,
		windowSize:  windowSize,
		window:      util.CreateRollingWindow(windowSize),
	}
}

// Run polls once immediately and then every pollingRate until ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.pollingRate)
	defer ticker.Stop()

	p.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			ui.Debug("Stopping status poller")
			return nil
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

// Poll fetches the device status once and publishes the resulting snapshot.
func (p *Poller) Poll(ctx context.Context) Snapshot {
	snapshot := Snapshot{Time: time.Now()}

	status, err := p.fetcher.GetStatus(ctx)
	if err != nil {
		if p.online || p.last == nil {
			ui.Warning("Device is offline: %v", err)
		}
		p.online = false
		snapshot.Err = err
		p.publish(snapshot)
		return snapshot
	}
	if !p.online {
		ui.Debug("Device is online")
	}
	p.online = true

	telemetry := SanitizeStatus(status)
	snapshot.Online = true
	snapshot.Telemetry = telemetry

	if telemetry.RoomTemp.Valid {
		p.appendRoomTemp(telemetry.RoomTemp.Value)
	}
	if p.windowFilled {
		snapshot.RoomTrend = util.GetWindowAvg(p.window)
		snapshot.RoomMin = util.GetWindowMin(p.window)
		snapshot.RoomMax = util.GetWindowMax(p.window)
		snapshot.HasTrend = true
	}

	if p.reconciler != nil && setpoint.IsPlausible(telemetry.ManualSetpoint) {
		snapshot.Reconciled = p.reconciler.Reconcile(telemetry.ManualSetpoint)
	}
	snapshot.ManualSetpoint = telemetry.ManualSetpoint

	p.publish(snapshot)
	return snapshot
}

func (p *Poller) Online() bool {
	return p.online
}

// Last returns the most recent snapshot, if any poll happened yet.
func (p *Poller) Last() (Snapshot, bool) {
	if p.last == nil {
		return Snapshot{}, false
	}
	return *p.last, true
}

func (p *Poller) appendRoomTemp(value float64) {
	if !p.windowFilled {
		util.FillWindow(p.window, p.windowSize, value)
		p.windowFilled = true
		return
	}
	p.window.Append(value)
}

func (p *Poller) publish(snapshot Snapshot) {
	p.last = &snapshot
	if p.listener != nil {
		p.listener(snapshot)
	}
}
