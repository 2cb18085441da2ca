package schedule

import (
	"github.com/markusressel/heat2go/internal/device"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/markusressel/heat2go/internal/util"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the schedule to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd.Context(), false)
		if err != nil {
			return err
		}
		session.Store.FlushSelectedDay()
		doc, err := session.Store.Document()
		if err != nil {
			return err
		}
		if err := util.WriteJsonFile(args[0], doc); err != nil {
			return err
		}
		ui.Success("Schedule written to %s", args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the local schedule draft with the content of a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var doc device.RawSchedule
		if err := util.ReadJsonFile(args[0], &doc); err != nil {
			return err
		}
		session, err := openSession(cmd.Context(), false)
		if err != nil {
			return err
		}
		if err := session.Replace(doc); err != nil {
			return err
		}
		return saveAndReport(session.Save(), "Schedule imported")
	},
}

func init() {
	Command.AddCommand(exportCmd)
	Command.AddCommand(importCmd)
}
