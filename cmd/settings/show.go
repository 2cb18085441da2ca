package settings

import (
	"fmt"
	"strings"

	"github.com/markusressel/heat2go/internal/settings"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/markusressel/heat2go/internal/util"
	"github.com/spf13/cobra"
)

const hiddenValue = "********"

var showSecrets bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the device settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd.Context(), false)
		if err != nil {
			return err
		}

		sections := map[string][][]string{}
		for _, field := range settings.Fields {
			value := session.Fields.Get(field)
			if field.IsSecret() && len(value) > 0 && !showSecrets {
				value = hiddenValue
			}
			section := field.Section()
			sections[section] = append(sections[section], []string{string(field), value, describeBounds(field)})
		}
		for _, section := range util.SortedKeys(sections) {
			ui.Printfln(section)
			if err := ui.PrintTable([]string{"Field", "Value", "Range"}, sections[section]); err != nil {
				return err
			}
		}

		for _, d := range session.Diagnostics() {
			ui.Warning("%s was invalid on the device (%v), replaced by default %v", d.Field, d.Raw, d.Default)
		}
		if session.FromDraft() {
			ui.Warning("Showing unsubmitted local changes, use 'settings push' or 'settings discard'")
		}
		return nil
	},
}

func describeBounds(field settings.Field) string {
	bounds, ok := settings.Bounds[field]
	if !ok {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%v..%v", bounds.Min, bounds.Max))
	sb.WriteString(fmt.Sprintf(" (default %v)", bounds.Default))
	return sb.String()
}

func init() {
	showCmd.Flags().BoolVarP(&showSecrets, "secrets", "s", false, "Show passwords and tokens")
	Command.AddCommand(showCmd)
}
