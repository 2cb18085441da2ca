package settings

import (
	"github.com/markusressel/heat2go/internal/settings"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/spf13/cobra"
)

func fieldNames() []string {
	result := make([]string, 0, len(settings.Fields))
	for _, field := range settings.Fields {
		result = append(result, string(field))
	}
	return result
}

var setCmd = &cobra.Command{
	Use:       "set <field> <value>",
	Short:     "Change a single settings field",
	Example:   `  heat2go settings set mqtt.port 8883`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: fieldNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		field, err := settings.ParseField(args[0])
		if err != nil {
			return err
		}
		session, err := openSession(cmd.Context(), false)
		if err != nil {
			return err
		}
		if err := session.Set(field, args[1]); err != nil {
			return err
		}
		if err := session.Save(); err != nil {
			return err
		}
		ui.Success("%s updated, use 'settings push' to send the settings to the device", field)
		return nil
	},
}

func init() {
	Command.AddCommand(setCmd)
}
