package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mirrorsync/internal/model"
	"mirrorsync/internal/repository"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "View daemon status",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(daemonURL("/status"))
		if err != nil {
			return fmt.Errorf("daemon not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		var result struct {
			Mirror model.Snapshot    `json:"mirror"`
			Stats  *repository.Stats `json:"stats"`
		}

		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("failed to decode status response: %w", err)
		}

		snap := result.Mirror
		lastEvent := "-"
		if snap.LastEvent != nil {
			lastEvent = snap.LastEvent.Format("2006-01-02 15:04:05")
		}

		fmt.Printf("%-30s %-30s %-6s %-7s %-11s %-7s %-6s %s\n",
			"SRC", "DST", "DIRS", "COPIED", "OVERWRITTEN", "SKIPPED", "FAILED", "LAST EVENT")
		fmt.Printf("%-30s %-30s %-6d %-7d %-11d %-7d %-6d %s\n",
			snap.Src, snap.Dst, snap.Directories, snap.Copied, snap.Overwritten, snap.Skipped, snap.Failed, lastEvent)
		fmt.Printf("uptime: %s\n", time.Since(snap.StartedAt).Round(time.Second))

		if result.Stats != nil {
			fmt.Printf("history: %d total, %d ok, %d failed\n",
				result.Stats.Total, result.Stats.Success, result.Stats.Failed)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
