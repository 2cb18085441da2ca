package cmd

import (
	"github.com/markusressel/heat2go/cmd/global"
	"github.com/markusressel/heat2go/internal/poller"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the current state of the thermostat",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := global.ReadConfig(); err != nil {
			return err
		}
		client := global.NewDeviceClient()

		statusPoller := poller.NewPoller(client, nil, poller.DefaultPollingRate, 1, nil)
		snapshot := statusPoller.Poll(cmd.Context())
		return printSnapshot(snapshot)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
