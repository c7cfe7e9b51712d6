package autostart

import (
	"runtime"
	"strings"
)

const serviceName = "mirrorsync"

// Target is what the registered watcher is started with. Empty fields are
// left off the command line.
type Target struct {
	ConfigPath      string
	SourceRoot      string
	DestinationRoot string
	LogLevel        string
}

type AutoStarter interface {
	Install(execPath string, target Target) error
	Uninstall() error
	IsInstalled() (bool, error)
}

func New() AutoStarter {
	switch runtime.GOOS {
	case "windows":
		return &WindowsAutoStarter{}
	case "linux":
		return &LinuxAutoStarter{}
	default:
		return &UnsupportedAutoStarter{}
	}
}

// watchArgs is the command line the service runs.
func watchArgs(execPath string, target Target) []string {
	args := []string{execPath, "watch"}
	if target.ConfigPath != "" {
		args = append(args, "--config", target.ConfigPath)
	}
	if target.SourceRoot != "" {
		args = append(args, "--src", target.SourceRoot)
	}
	if target.DestinationRoot != "" {
		args = append(args, "--dst", target.DestinationRoot)
	}
	if target.LogLevel != "" {
		args = append(args, "--log-level", target.LogLevel)
	}
	return args
}

func quote(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = `"` + strings.ReplaceAll(a, `"`, `\"`) + `"`
	}
	return strings.Join(quoted, " ")
}

type UnsupportedAutoStarter struct{}

func (u *UnsupportedAutoStarter) Install(_ string, _ Target) error {
	return nil
}

func (u *UnsupportedAutoStarter) Uninstall() error {
	return nil
}

func (u *UnsupportedAutoStarter) IsInstalled() (bool, error) {
	return false, nil
}
