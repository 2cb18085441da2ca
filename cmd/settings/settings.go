package settings

import (
	"context"

	"github.com/markusressel/heat2go/cmd/global"
	"github.com/markusressel/heat2go/internal/editor"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "settings",
	Short: "Device settings related commands",
	Long: `Edits of the device settings are kept as a local draft until they
are pushed to the device with 'heat2go settings push'. Pushing reboots the device.`,
	TraverseChildren: true,
}

func openSession(ctx context.Context, pull bool) (*editor.SettingsSession, error) {
	if err := global.ReadConfig(); err != nil {
		return nil, err
	}
	p, err := global.OpenPersistence()
	if err != nil {
		return nil, err
	}
	client := global.NewDeviceClient()

	session, err := editor.OpenSettingsSession(ctx, client, p, client.BaseUrl(), pull)
	if err != nil {
		return nil, err
	}
	if session.FromDraft() {
		ui.Debug("Using local settings draft, fetched at %s", session.FetchedAt().Format("2006-01-02 15:04"))
	}
	return session, nil
}
