package settings

import (
	"errors"

	"github.com/markusressel/heat2go/cmd/global"
	"github.com/markusressel/heat2go/internal/settings"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/spf13/cobra"
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Fetch the settings from the device, replacing the local draft",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd.Context(), true)
		if err != nil {
			return err
		}
		if err := session.Save(); err != nil {
			return err
		}
		ui.Success("Settings loaded")
		return nil
	},
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Send the settings to the device, which reboots afterwards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd.Context(), false)
		if err != nil {
			return err
		}
		err = session.Push(cmd.Context(), global.Confirmer())
		if errors.Is(err, settings.ErrNotConfirmed) {
			ui.Info("Aborted, local changes are kept")
			return nil
		}
		return err
	},
}

var discardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Drop all local changes of the settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd.Context(), false)
		if err != nil {
			return err
		}
		if err := session.Discard(); err != nil {
			return err
		}
		ui.Success("Local settings changes discarded")
		return nil
	},
}

func init() {
	Command.AddCommand(pullCmd)
	Command.AddCommand(pushCmd)
	Command.AddCommand(discardCmd)
}
