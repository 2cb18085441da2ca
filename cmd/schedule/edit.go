package schedule

import (
	"errors"
	"fmt"

	"github.com/markusressel/heat2go/internal/schedule"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/spf13/cobra"
)

var (
	rowNumber int
	timeText  string
	tempText  string
)

func rowFromFlags() (schedule.Row, error) {
	hour, minute, err := schedule.ParseTime(timeText)
	if err != nil {
		return schedule.Row{}, err
	}
	return schedule.Row{Hour: hour, Minute: minute, Temp: tempText}, nil
}

// rowIndex converts the 1 based --row flag.
func rowIndex() (int, error) {
	if rowNumber < 1 {
		return 0, errors.New("--row must be >= 1")
	}
	return rowNumber - 1, nil
}

var setCmd = &cobra.Command{
	Use:     "set",
	Short:   "Change a point of the selected day",
	Example: `  heat2go schedule set --day mon --row 1 --time 06:30 --temp 21.5`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := rowIndex()
		if err != nil {
			return err
		}
		session, err := openSession(cmd.Context(), false)
		if err != nil {
			return err
		}
		current, err := session.View.Row(index)
		if err != nil {
			return err
		}

		row := current
		if cmd.Flags().Changed("time") {
			hour, minute, err := schedule.ParseTime(timeText)
			if err != nil {
				return err
			}
			row.Hour, row.Minute = hour, minute
		}
		if cmd.Flags().Changed("temp") {
			row.Temp = tempText
		}

		if err := session.SetRow(index, row); err != nil {
			return err
		}
		return saveAndReport(session.Save(), fmt.Sprintf("Updated P%d", rowNumber))
	},
}

var addCmd = &cobra.Command{
	Use:     "add",
	Short:   "Append a point to the selected day",
	Example: `  heat2go schedule add --day sat --time 22:00 --temp 17`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		row, err := rowFromFlags()
		if err != nil {
			return err
		}
		session, err := openSession(cmd.Context(), false)
		if err != nil {
			return err
		}
		if err := session.AddRow(row); err != nil {
			return err
		}
		return saveAndReport(session.Save(), "Added point")
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a point of the selected day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := rowIndex()
		if err != nil {
			return err
		}
		session, err := openSession(cmd.Context(), false)
		if err != nil {
			return err
		}
		if err := session.RemoveRow(index); err != nil {
			return err
		}
		return saveAndReport(session.Save(), fmt.Sprintf("Removed P%d", rowNumber))
	},
}

func saveAndReport(err error, message string) error {
	if err != nil {
		return err
	}
	ui.Success("%s, use 'schedule push' to send the schedule to the device", message)
	return nil
}

func init() {
	setCmd.Flags().IntVarP(&rowNumber, "row", "r", 0, "Number of the point to change (1 based)")
	setCmd.Flags().StringVarP(&timeText, "time", "t", "", "Time of the point, HH:MM")
	setCmd.Flags().StringVarP(&tempText, "temp", "T", "", "Temperature of the point in °C")
	_ = setCmd.MarkFlagRequired("row")

	addCmd.Flags().StringVarP(&timeText, "time", "t", "", "Time of the point, HH:MM")
	addCmd.Flags().StringVarP(&tempText, "temp", "T", "", "Temperature of the point in °C")
	_ = addCmd.MarkFlagRequired("time")
	_ = addCmd.MarkFlagRequired("temp")

	removeCmd.Flags().IntVarP(&rowNumber, "row", "r", 0, "Number of the point to remove (1 based)")
	_ = removeCmd.MarkFlagRequired("row")

	Command.AddCommand(setCmd)
	Command.AddCommand(addCmd)
	Command.AddCommand(removeCmd)
}
