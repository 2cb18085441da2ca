package schedule

import (
	"context"

	"github.com/markusressel/heat2go/cmd/global"
	"github.com/markusressel/heat2go/internal/editor"
	"github.com/markusressel/heat2go/internal/schedule"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/spf13/cobra"
)

var dayText string

var Command = &cobra.Command{
	Use:   "schedule",
	Short: "Weekly schedule related commands",
	Long: `Edits of the weekly schedule are kept as a local draft until they
are pushed to the device with 'heat2go schedule push'.`,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().StringVarP(
		&dayText,
		"day", "d",
		"",
		"Day to work on, 0-6 or name (default: the day selected last)",
	)
}

// openSession resumes the draft of the configured device or pulls the schedule.
// If --day is set, that day is selected.
func openSession(ctx context.Context, pull bool) (*editor.ScheduleSession, error) {
	if err := global.ReadConfig(); err != nil {
		return nil, err
	}
	p, err := global.OpenPersistence()
	if err != nil {
		return nil, err
	}
	client := global.NewDeviceClient()

	session, err := editor.OpenScheduleSession(ctx, client, p, client.BaseUrl(), pull)
	if err != nil {
		return nil, err
	}
	if session.FromDraft() {
		ui.Debug("Using local schedule draft, fetched at %s", session.FetchedAt().Format("2006-01-02 15:04"))
	}

	if len(dayText) > 0 {
		day, err := schedule.ParseDay(dayText)
		if err != nil {
			return nil, err
		}
		if err := session.Select(day); err != nil {
			return nil, err
		}
	}
	return session, nil
}
