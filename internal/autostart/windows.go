package autostart

import (
	"fmt"
	"os/exec"
)

const taskName = "MirrorsyncWatch"

type WindowsAutoStarter struct{}

func (w *WindowsAutoStarter) Install(execPath string, target Target) error {
	cmd := exec.Command("schtasks", "/create",
		"/TN", taskName,
		"/TR", quote(watchArgs(execPath, target)),
		"/SC", "ONLOGON",
		"/F")

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to register task: %w\n%s", err, out)
	}

	return nil
}

func (w *WindowsAutoStarter) Uninstall() error {
	cmd := exec.Command("schtasks", "/DELETE", "/TN", taskName, "/F")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to remove task: %w\n%s", err, out)
	}

	return nil
}

func (w *WindowsAutoStarter) IsInstalled() (bool, error) {
	cmd := exec.Command("schtasks", "/Query", "/TN", taskName)
	if err := cmd.Run(); err != nil {
		return false, nil
	}

	return true, nil
}
