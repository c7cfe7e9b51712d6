package cmd

import (
	"fmt"
	"os"

	"mirrorsync/internal/config"
	"mirrorsync/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfg     *config.Config
	cfgFile string
	v       = viper.New()
)

// clientCmds only talk to a running daemon and must not touch the log file.
var clientCmds = map[string]bool{
	"status": true, "history": true, "stop": true,
}

var rootCmd = &cobra.Command{
	Use:          "mirrorsync",
	Short:        "Mirror newly created files and directories into another tree",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(v, cfgFile)
		if err != nil {
			return err
		}

		opts := logger.Options{Level: cfg.LogLevel, File: cfg.LogFile}
		if clientCmds[cmd.Name()] {
			opts.File = ""
		}

		return logger.Init(opts)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Log.Error("command failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func daemonURL(path string) string {
	return fmt.Sprintf("http://127.0.0.1:%d%s", cfg.DaemonPort, path)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./config.yaml or ~/.mirrorsync/config.yaml)")
	flags.String("src", "", "source directory to watch")
	flags.String("dst", "", "destination directory to mirror into")
	flags.String("log-level", "", "DEBUG, INFO, WARNING, ERROR or CRITICAL")

	_ = v.BindPFlag("source_root", flags.Lookup("src"))
	_ = v.BindPFlag("destination_root", flags.Lookup("dst"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
}
