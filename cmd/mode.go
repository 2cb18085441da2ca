package cmd

import (
	"strings"

	"github.com/markusressel/heat2go/cmd/global"
	"github.com/markusressel/heat2go/internal/device"
	"github.com/markusressel/heat2go/internal/setpoint"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/spf13/cobra"
)

func modeNames() []string {
	result := make([]string, 0, len(device.Modes))
	for _, mode := range device.Modes {
		result = append(result, string(mode))
	}
	return result
}

var modeCmd = &cobra.Command{
	Use:       "mode <mode>",
	Short:     "Switch the operating mode (" + strings.Join(modeNames(), " | ") + ")",
	Args:      cobra.ExactArgs(1),
	ValidArgs: modeNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := setpoint.ParseMode(args[0])
		if err != nil {
			return err
		}
		if err := global.ReadConfig(); err != nil {
			return err
		}

		controller := setpoint.NewController(global.NewDeviceClient(), nil)
		if err := controller.SetMode(cmd.Context(), mode); err != nil {
			return err
		}
		ui.Success("Mode set to %s", mode)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modeCmd)
}
