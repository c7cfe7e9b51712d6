package autostart

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"text/template"
)

const serviceTemplate = `[Unit]
Description=mirrorsync directory mirror
After=local-fs.target

[Service]
ExecStart={{.ExecStart}}
Restart=on-failure
RestartSec=5

[Install]
WantedBy=default.target
`

var serviceTmpl = template.Must(template.New("service").Parse(serviceTemplate))

type LinuxAutoStarter struct {
	// Dir overrides ~/.config/systemd/user.
	Dir string
}

func (l *LinuxAutoStarter) servicePath() (string, error) {
	dir := l.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config", "systemd", "user")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(dir, serviceName+".service"), nil
}

// RenderUnit produces the systemd user unit for execPath.
func RenderUnit(execPath string, target Target) (string, error) {
	var buf bytes.Buffer
	data := map[string]string{"ExecStart": quote(watchArgs(execPath, target))}
	if err := serviceTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render service file: %w", err)
	}
	return buf.String(), nil
}

func (l *LinuxAutoStarter) WriteUnit(execPath string, target Target) (string, error) {
	path, err := l.servicePath()
	if err != nil {
		return "", err
	}

	unit, err := RenderUnit(execPath, target)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(unit), 0644); err != nil {
		return "", fmt.Errorf("failed to write service file: %w", err)
	}

	return path, nil
}

func (l *LinuxAutoStarter) Install(execPath string, target Target) error {
	if _, err := l.WriteUnit(execPath, target); err != nil {
		return err
	}

	cmds := [][]string{
		{"systemctl", "--user", "daemon-reload"},
		{"systemctl", "--user", "enable", serviceName + ".service"},
		{"systemctl", "--user", "start", serviceName + ".service"},
	}

	for _, args := range cmds {
		cmd := exec.Command(args[0], args[1:]...)
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("failed to run %v: %w\n%s", args, err, out)
		}
	}

	return nil
}

func (l *LinuxAutoStarter) Uninstall() error {
	cmds := [][]string{
		{"systemctl", "--user", "stop", serviceName + ".service"},
		{"systemctl", "--user", "disable", serviceName + ".service"},
	}

	for _, args := range cmds {
		cmd := exec.Command(args[0], args[1:]...)
		_ = cmd.Run()
	}

	path, err := l.servicePath()
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove service file: %w", err)
	}

	return nil
}

func (l *LinuxAutoStarter) IsInstalled() (bool, error) {
	path, err := l.servicePath()
	if err != nil {
		return false, err
	}

	_, err = os.Stat(path)
	return err == nil, nil
}
