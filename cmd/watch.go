package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mirrorsync/internal/daemon"
	"mirrorsync/internal/db"
	"mirrorsync/internal/logger"
	"mirrorsync/internal/mirror"
	"mirrorsync/internal/pipeline"
	"mirrorsync/internal/repository"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the source tree and mirror every creation until stopped",
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
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

	repo := repository.NewHistoryRepository(conn)

	proc, err := mirror.NewProcessor(cfg.SourceRoot, cfg.DestinationRoot, logger.Log)
	if err != nil {
		return err
	}

	w, err := mirror.NewWatcher(cfg.SourceRoot, cfg.BufferSize, cfg.InitialSync, logger.Log)
	if err != nil {
		return err
	}

	runner := daemon.NewRunner(w, pipeline.NewMatcher(cfg.SourceRoot, cfg.IgnoreList), proc, repo, logger.Log)
	if err := runner.Start(); err != nil {
		return err
	}

	var (
		srv    *daemon.Server
		stopCh <-chan struct{}
	)
	if cfg.DaemonPort > 0 {
		srv = daemon.NewServer(runner, repo, cfg.DaemonPort)
		srv.Start()
		stopCh = srv.StopCh()
	}

	fmt.Printf("Now monitoring directory: %s\n", cfg.SourceRoot)
	logger.Log.Info("mirrorsync started",
		zap.String("src", cfg.SourceRoot),
		zap.String("dst", cfg.DestinationRoot),
		zap.Bool("initial_sync", cfg.InitialSync),
		zap.Int("port", cfg.DaemonPort))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigCh:
		logger.Log.Info("shutting down",
			zap.String("signal", sig.String()))
	case <-stopCh:
		logger.Log.Info("stop requested via API")
	case <-runner.Done():
		runErr = errors.New("event source closed unexpectedly")
	}

	runner.Stop()

	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Stop(ctx); err != nil && runErr == nil {
			runErr = err
		}
	}

	return runErr
}

func init() {
	watchCmd.Flags().Bool("initial-sync", false, "mirror what already exists before watching")
	_ = v.BindPFlag("initial_sync", watchCmd.Flags().Lookup("initial-sync"))
	rootCmd.AddCommand(watchCmd)
}
