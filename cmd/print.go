package cmd

import (
	"fmt"

	"github.com/markusressel/heat2go/internal/poller"
	"github.com/markusressel/heat2go/internal/ui"
)

func snapshotRows(snapshot poller.Snapshot) [][]string {
	t := snapshot.Telemetry
	trend := poller.Unavailable
	span := poller.Unavailable
	if snapshot.HasTrend {
		trend = fmt.Sprintf("%.1f", snapshot.RoomTrend)
		span = fmt.Sprintf("%.1f .. %.1f", snapshot.RoomMin, snapshot.RoomMax)
	}
	manual := poller.Unavailable
	if t.ManualSetpoint != 0 {
		manual = fmt.Sprintf("%.1f", t.ManualSetpoint)
	}
	return [][]string{
		{"Room", t.RoomTemp.Text + " °C"},
		{"Room (avg)", trend + " °C"},
		{"Room (min .. max)", span + " °C"},
		{"Radiator", t.RadiatorTemp.Text + " °C"},
		{"Outside", t.OutsideTemp.Text + " °C"},
		{"Setpoint", t.CurrentSetpoint.Text + " °C"},
		{"Manual setpoint", manual + " °C"},
		{"Mode", t.State},
		{"Heater", t.RelayText()},
	}
}

func printSnapshot(snapshot poller.Snapshot) error {
	if !snapshot.Online {
		ui.Error("Offline: %v", snapshot.Err)
		return snapshot.Err
	}
	return ui.PrintTable([]string{"", ""}, snapshotRows(snapshot))
}

// printSnapshotLine prints a compact single line, used while watching.
func printSnapshotLine(snapshot poller.Snapshot) {
	timestamp := snapshot.Time.Format("15:04:05")
	if !snapshot.Online {
		ui.Printfln("%s  offline", timestamp)
		return
	}
	t := snapshot.Telemetry
	ui.Printfln("%s  room %s °C  rad %s °C  out %s °C  set %s °C  %s  heater %s",
		timestamp,
		t.RoomTemp.Text,
		t.RadiatorTemp.Text,
		t.OutsideTemp.Text,
		t.CurrentSetpoint.Text,
		t.State,
		t.RelayText(),
	)
}
