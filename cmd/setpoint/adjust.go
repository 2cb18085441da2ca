package setpoint

import (
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/spf13/cobra"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Raise the manual setpoint by --step",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return adjust(cmd, step)
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Lower the manual setpoint by --step",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return adjust(cmd, -step)
	},
}

func adjust(cmd *cobra.Command, delta float64) error {
	controller, err := NewController(cmd.Context())
	if err != nil {
		return err
	}
	value, err := controller.Adjust(cmd.Context(), delta)
	if err != nil {
		return err
	}
	ui.Success("Manual setpoint set to %.1f °C", value)
	return nil
}

func init() {
	Command.AddCommand(upCmd)
	Command.AddCommand(downCmd)
}
