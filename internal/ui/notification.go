package ui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// For a list of possible icons, see: https://specifications.freedesktop.org/icon-naming-spec/icon-naming-spec-latest.html
const (
	IconDialogInfo = "dialog-information"
	IconDialogWarn = "dialog-warning"

	UrgencyLow    = "low"
	UrgencyNormal = "normal"
)

// NotifyInfo sends a desktop notification if a display session is available.
func NotifyInfo(title, text string) {
	NotifySend(UrgencyLow, title, text, IconDialogInfo)
}

func NotifyWarn(title, text string) {
	NotifySend(UrgencyNormal, title, text, IconDialogWarn)
}

func WarningAndNotify(title, format string, a ...interface{}) {
	Warning(format, a...)
	text := fmt.Sprintf(format, a...)
	NotifyWarn(title, text)
}

func InfoAndNotify(title, format string, a ...interface{}) {
	Info(format, a...)
	text := fmt.Sprintf(format, a...)
	NotifyInfo(title, text)
}

func NotifySend(urgency, title, text, icon string) {
	display, exists := os.LookupEnv("DISPLAY")
	if !exists {
		Debug("Cannot send notification, missing env variable 'DISPLAY'")
		return
	}

	path, err := exec.LookPath("notify-send")
	if err != nil {
		Debug("Cannot send notification, notify-send not found: %v", err)
		return
	}

	cmd := exec.Command(path,
		"-a", "heat2go",
		"-u", urgency,
		"-i", icon,
		title, strings.TrimSpace(text),
	)
	cmd.Env = append(os.Environ(), "DISPLAY="+display)
	err = cmd.Run()
	if err != nil {
		Error("Error sending notification: %v", err)
	}
}
