package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"mirrorsync/internal/autostart"
	"mirrorsync/internal/config"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Register the watcher to start on login",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		execPath, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to get executable path: %w", err)
		}

		target, err := autostartTarget(cfg, v.ConfigFileUsed())
		if err != nil {
			return err
		}

		if err := autostart.New().Install(execPath, target); err != nil {
			return err
		}

		fmt.Println("mirrorsync registered for autostart")
		return nil
	},
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the autostart registration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := autostart.New().Uninstall(); err != nil {
			return err
		}

		fmt.Println("mirrorsync autostart removed")
		return nil
	},
}

// autostartTarget pins the validated roots and level into the service command
// line; the config file, when one was used, still supplies the other keys.
func autostartTarget(c *config.Config, configFile string) (autostart.Target, error) {
	target := autostart.Target{
		SourceRoot:      c.SourceRoot,
		DestinationRoot: c.DestinationRoot,
		LogLevel:        c.LogLevel,
	}

	if configFile != "" {
		abs, err := filepath.Abs(configFile)
		if err != nil {
			return autostart.Target{}, fmt.Errorf("failed to resolve config path: %w", err)
		}
		target.ConfigPath = abs
	}

	return target, nil
}

func init() {
	rootCmd.AddCommand(installCmd, uninstallCmd)
}
