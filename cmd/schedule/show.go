package schedule

import (
	"fmt"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/heat2go/internal/schedule"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/spf13/cobra"
)

const graphStepMinutes = 15

var (
	showAll   bool
	showGraph bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the schedule of the selected day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd.Context(), false)
		if err != nil {
			return err
		}
		if session.FromDraft() {
			// keep the --day selection
			if err := session.Save(); err != nil {
				return err
			}
		}
		week, err := session.Store.Week()
		if err != nil {
			return err
		}

		days := []int{session.Store.SelectedDay()}
		if showAll {
			days = []int{0, 1, 2, 3, 4, 5, 6}
		}

		for idx, day := range days {
			if idx > 0 {
				ui.Printfln("")
			}
			if err := printDay(&week, day, day == session.Store.SelectedDay()); err != nil {
				return err
			}
		}

		if session.FromDraft() {
			ui.Warning("Showing unsubmitted local changes, use 'schedule push' or 'schedule discard'")
		}
		return nil
	},
}

func printDay(week *schedule.WeeklySchedule, day int, selected bool) error {
	title := schedule.DayNames[day]
	if selected {
		title += " (selected)"
	}
	ui.Printfln(title)

	points := week[day].Points
	if len(points) <= 0 {
		ui.Printfln("No points")
	} else {
		rows := make([][]string, 0, len(points))
		for idx, p := range points {
			row := schedule.RowFromPoint(p)
			rows = append(rows, []string{
				"P" + strconv.Itoa(idx+1),
				fmt.Sprintf("%02d:%02d", p.Hour, p.Minute),
				row.Temp + " °C",
			})
		}
		if err := ui.PrintTable([]string{"#", "Time", "Temp"}, rows); err != nil {
			return err
		}
		if len(points) > schedule.MaxPointsPerDay {
			ui.Warning("The device only keeps the first %d points of a day", schedule.MaxPointsPerDay)
		}
	}

	if showGraph {
		values := week.DayProfile(day, graphStepMinutes)
		caption := "°C over the day (" + strconv.Itoa(graphStepMinutes) + " min steps)"
		graph := asciigraph.Plot(values, asciigraph.Height(10), asciigraph.Width(96), asciigraph.Caption(caption))
		ui.Printfln("%s", graph)
	}
	return nil
}

func init() {
	showCmd.Flags().BoolVarP(&showAll, "all", "a", false, "Show all days of the week")
	showCmd.Flags().BoolVarP(&showGraph, "graph", "g", false, "Plot the setpoint over the day")
	Command.AddCommand(showCmd)
}
