package cmd

import (
	"github.com/markusressel/heat2go/cmd/global"
	"github.com/markusressel/heat2go/internal"
	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a simulated thermostat on simulator.host:simulator.port",
	Long: `Serves the thermostat API backed by an in-memory device, which is useful
to try heat2go without real hardware. Point device.url at it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := global.ReadConfig(); err != nil {
			return err
		}
		config := configuration.CurrentConfig.Simulator
		return internal.RunSimulator(config.Host, config.Port)
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
}
