package schedule

import (
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/spf13/cobra"
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Fetch the schedule from the device, replacing the local draft",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd.Context(), true)
		if err != nil {
			return err
		}
		if err := session.Save(); err != nil {
			return err
		}
		ui.Success("Schedule loaded")
		return nil
	},
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Send the schedule to the device",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd.Context(), false)
		if err != nil {
			return err
		}
		return session.Push(cmd.Context())
	},
}

var discardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Drop all local changes of the schedule",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd.Context(), false)
		if err != nil {
			return err
		}
		if err := session.Discard(); err != nil {
			return err
		}
		ui.Success("Local schedule changes discarded")
		return nil
	},
}

func init() {
	Command.AddCommand(pullCmd)
	Command.AddCommand(pushCmd)
	Command.AddCommand(discardCmd)
}
