package setpoint

import (
	"fmt"

	"github.com/markusressel/heat2go/internal/sanitize"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <value>",
	Short: "Set the manual setpoint to an absolute value ([5..35] °C)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, ok := sanitize.Parse(args[0])
		if !ok {
			return fmt.Errorf("not a number: %s", args[0])
		}

		controller, err := NewController(cmd.Context())
		if err != nil {
			return err
		}
		result, err := controller.Set(cmd.Context(), value)
		if err != nil {
			return err
		}
		if result != value {
			ui.Warning("Requested %v °C is out of range, clamped", value)
		}
		ui.Success("Manual setpoint set to %.1f °C", result)
		return nil
	},
}

func init() {
	Command.AddCommand(setCmd)
}
