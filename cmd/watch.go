package cmd

import (
	"github.com/markusressel/heat2go/cmd/global"
	"github.com/markusressel/heat2go/internal"
	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Continuously poll the thermostat and print its state",
	Long: `Polls the thermostat with the configured pollingRate until interrupted.
If statistics are enabled, the telemetry is exported on a prometheus endpoint.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := global.ReadConfig(); err != nil {
			ui.Error("Config Validation Error: %v", err)
			return err
		}
		client := global.NewDeviceClient()
		ui.Info("Watching %s every %s", client.BaseUrl(), configuration.CurrentConfig.PollingRate)
		return internal.RunWatch(client, printSnapshotLine)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
