package statistics

import (
	"sync"

	"github.com/markusressel/heat2go/internal/poller"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemDevice = "device"

// TelemetryCollector exposes the most recent poller snapshot.
type TelemetryCollector struct {
	lock     sync.RWMutex
	last     *poller.Snapshot
	polls    uint64
	failures uint64

	temperature *prometheus.Desc
	setpoint    *prometheus.Desc
	relay       *prometheus.Desc
	online      *prometheus.Desc
	trend       *prometheus.Desc
	pollCount   *prometheus.Desc
	failedCount *prometheus.Desc
}

func NewTelemetryCollector() *TelemetryCollector {
	return &TelemetryCollector{
		temperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemDevice, "temperature_celsius"),
			"Temperature reported by the device",
			[]string{"sensor"}, nil,
		),
		setpoint: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemDevice, "setpoint_celsius"),
			"Setpoint reported by the device",
			[]string{"kind"}, nil,
		),
		relay: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemDevice, "relay_on"),
			"1 if the heater relay is switched on",
			[]string{"state"}, nil,
		),
		online: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemDevice, "online"),
			"1 if the last status poll succeeded",
			nil, nil,
		),
		trend: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemDevice, "room_temperature_trend_celsius"),
			"Moving average of the room temperature",
			nil, nil,
		),
		pollCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemDevice, "polls_total"),
			"Number of status polls",
			nil, nil,
		),
		failedCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemDevice, "failed_polls_total"),
			"Number of status polls that failed",
			nil, nil,
		),
	}
}

// Update records a poller snapshot, it is safe to call concurrently with Collect.
func (collector *TelemetryCollector) Update(snapshot poller.Snapshot) {
	collector.lock.Lock()
	defer collector.lock.Unlock()

	collector.polls++
	if !snapshot.Online {
		collector.failures++
	}
	collector.last = &snapshot
}

func (collector *TelemetryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.temperature
	ch <- collector.setpoint
	ch <- collector.relay
	ch <- collector.online
	ch <- collector.trend
	ch <- collector.pollCount
	ch <- collector.failedCount
}

// Collect implements required collect function for all prometheus collectors
func (collector *TelemetryCollector) Collect(ch chan<- prometheus.Metric) {
	collector.lock.RLock()
	defer collector.lock.RUnlock()

	ch <- prometheus.MustNewConstMetric(collector.pollCount, prometheus.CounterValue, float64(collector.polls))
	ch <- prometheus.MustNewConstMetric(collector.failedCount, prometheus.CounterValue, float64(collector.failures))

	if collector.last == nil {
		return
	}
	snapshot := collector.last
	ch <- prometheus.MustNewConstMetric(collector.online, prometheus.GaugeValue, boolValue(snapshot.Online))
	if !snapshot.Online {
		return
	}

	telemetry := snapshot.Telemetry
	readings := map[string]poller.Reading{
		"room":     telemetry.RoomTemp,
		"radiator": telemetry.RadiatorTemp,
		"outside":  telemetry.OutsideTemp,
	}
	for sensor, reading := range readings {
		if reading.Valid {
			ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, reading.Value, sensor)
		}
	}

	if telemetry.CurrentSetpoint.Valid {
		ch <- prometheus.MustNewConstMetric(collector.setpoint, prometheus.GaugeValue, telemetry.CurrentSetpoint.Value, "current")
	}
	if telemetry.ManualSetpoint != 0 {
		ch <- prometheus.MustNewConstMetric(collector.setpoint, prometheus.GaugeValue, telemetry.ManualSetpoint, "manual")
	}
	ch <- prometheus.MustNewConstMetric(collector.relay, prometheus.GaugeValue, boolValue(telemetry.Relay), telemetry.State)

	if snapshot.HasTrend {
		ch <- prometheus.MustNewConstMetric(collector.trend, prometheus.GaugeValue, snapshot.RoomTrend)
	}
}
