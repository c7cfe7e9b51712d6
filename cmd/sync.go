package cmd

import (
	"fmt"

	"mirrorsync/internal/daemon"
	"mirrorsync/internal/db"
	"mirrorsync/internal/logger"
	"mirrorsync/internal/mirror"
	"mirrorsync/internal/pipeline"
	"mirrorsync/internal/repository"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror everything already in the source tree once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()

		if err := cfg.Validate(); err != nil {
			return err
		}

		conn, err := db.Open(cfg.DBPath)
		if err != nil {
			return err
		}

		defer func() {
			_ = db.Close(conn)
		}()

		proc, err := mirror.NewProcessor(cfg.SourceRoot, cfg.DestinationRoot, logger.Log)
		if err != nil {
			return err
		}

		logger.Log.Info("starting full sync",
			zap.String("src", cfg.SourceRoot),
			zap.String("dst", cfg.DestinationRoot))

		src := mirror.NewScanSource(cfg.SourceRoot, logger.Log)
		runner := daemon.NewRunner(src, pipeline.NewMatcher(cfg.SourceRoot, cfg.IgnoreList), proc,
			repository.NewHistoryRepository(conn), logger.Log)
		if err := runner.Start(); err != nil {
			return err
		}
		<-runner.Done()

		snap := runner.Snapshot()
		fmt.Printf("done: %d dirs, %d copied, %d overwritten, %d skipped, %d failed\n",
			snap.Directories, snap.Copied, snap.Overwritten, snap.Skipped, snap.Failed)

		if snap.Failed > 0 {
			return fmt.Errorf("%d entries failed to sync", snap.Failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
