package setpoint

import (
	"context"

	"github.com/markusressel/heat2go/cmd/global"
	"github.com/markusressel/heat2go/internal/poller"
	"github.com/markusressel/heat2go/internal/setpoint"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/spf13/cobra"
)

var step float64

var Command = &cobra.Command{
	Use:              "setpoint",
	Short:            "Manual setpoint related commands",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().Float64VarP(
		&step,
		"step", "s",
		setpoint.Step,
		"Amount to change the setpoint by",
	)
}

type display struct{}

func (display) ShowManualSetpoint(value float64) {
	ui.Info("Manual setpoint: %.1f °C", value)
}

// NewController creates a controller that starts from the manual setpoint
// currently reported by the device.
func NewController(ctx context.Context) (*setpoint.Controller, error) {
	if err := global.ReadConfig(); err != nil {
		return nil, err
	}
	client := global.NewDeviceClient()
	controller := setpoint.NewController(client, display{})

	statusPoller := poller.NewPoller(client, controller, poller.DefaultPollingRate, 1, nil)
	snapshot := statusPoller.Poll(ctx)
	if !snapshot.Online {
		return nil, snapshot.Err
	}
	return controller, nil
}
