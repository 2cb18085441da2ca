package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/device"
	"github.com/markusressel/heat2go/internal/poller"
	"github.com/markusressel/heat2go/internal/setpoint"
	"github.com/markusressel/heat2go/internal/simulator"
	"github.com/markusressel/heat2go/internal/statistics"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	shutdownTimeout = 5 * time.Second
	simulatorTick   = 1 * time.Second
)

// RunWatch polls the device until the process receives a termination signal.
// Every snapshot is passed to listener.
func RunWatch(client *device.Client, listener poller.Listener) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	collector := statistics.NewTelemetryCollector()
	controller := setpoint.NewController(client, manualSetpointLogger{})
	notifier := &ConnectionNotifier{}
	statusPoller := poller.NewPoller(
		client,
		controller,
		configuration.CurrentConfig.PollingRate,
		configuration.CurrentConfig.TrendWindowSize,
		func(snapshot poller.Snapshot) {
			collector.Update(snapshot)
			notifier.Update(snapshot)
			if listener != nil {
				listener(snapshot)
			}
		},
	)

	var g run.Group
	{
		enabled := configuration.CurrentConfig.Statistics.Enabled
		if enabled {
			statistics.Register(collector)

			// === Prometheus Exporter
			port := configuration.CurrentConfig.Statistics.Port
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

			g.Add(func() error {
				ui.Info("Serving statistics on :%d/metrics", port)
				if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer timeoutCancel()
				if err := server.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping statistics server: " + err.Error())
				}
			})
		}
	}
	{
		// === status polling
		g.Add(func() error {
			err := statusPoller.Run(ctx)
			ui.Debug("Status poller stopped.")
			return err
		}, func(err error) {
			cancel()
		})
	}
	addSignalHandler(&g, cancel)

	return g.Run()
}

// RunSimulator serves a simulated device until the process receives a termination signal.
func RunSimulator(host string, port int) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := simulator.NewDevice()
	registry := prometheus.NewRegistry()
	rest := simulator.CreateRestService(d, registry)
	addr := fmt.Sprintf("%s:%d", host, port)

	var g run.Group
	{
		// === REST endpoint
		g.Add(func() error {
			ui.Info("Simulated device listening on http://%s", addr)
			if err := rest.Start(addr); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}, func(err error) {
			timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer timeoutCancel()
			if err := rest.Shutdown(timeoutCtx); err != nil {
				ui.Warning("Error stopping simulator: %v", err)
			}
		})
	}
	{
		// === room simulation
		g.Add(func() error {
			ticker := time.NewTicker(simulatorTick)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					d.Tick()
				}
			}
		}, func(err error) {
			cancel()
		})
	}
	addSignalHandler(&g, cancel)

	return g.Run()
}

func addSignalHandler(g *run.Group, cancel context.CancelFunc) {
	sig := make(chan os.Signal, 1)
	stop := make(chan struct{})
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	g.Add(func() error {
		select {
		case <-sig:
			ui.Info("Received SIGTERM signal, exiting...")
		case <-stop:
		}
		return nil
	}, func(err error) {
		signal.Stop(sig)
		close(stop)
		cancel()
	})
}

type manualSetpointLogger struct{}

func (manualSetpointLogger) ShowManualSetpoint(value float64) {
	ui.Info("Manual setpoint: %.1f °C", value)
}

// ConnectionNotifier raises a desktop notification whenever the device goes
// offline or comes back.
type ConnectionNotifier struct {
	known  bool
	online bool
}

// Update returns true if the connection state changed.
func (n *ConnectionNotifier) Update(snapshot poller.Snapshot) bool {
	if !n.known {
		n.known = true
		n.online = snapshot.Online
		return false
	}
	if n.online == snapshot.Online {
		return false
	}
	n.online = snapshot.Online
	if snapshot.Online {
		ui.InfoAndNotify("Thermostat online", "Connection to the thermostat restored")
	} else {
		ui.WarningAndNotify("Thermostat offline", "Lost connection to the thermostat: %v", snapshot.Err)
	}
	return true
}
