package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"mirrorsync/internal/model"

	"github.com/spf13/cobra"
)

var (
	historyN      int
	historyFailed bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View mirror history",
	RunE: func(cmd *cobra.Command, args []string) error {
		url := fmt.Sprintf("%s?n=%d&failed=%t", daemonURL("/history"), historyN, historyFailed)
		resp, err := http.Get(url)
		if err != nil {
			return fmt.Errorf("daemon not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("history unavailable: %s", resp.Status)
		}

		var histories []model.History
		if err := json.NewDecoder(resp.Body).Decode(&histories); err != nil {
			return err
		}

		if len(histories) == 0 {
			fmt.Println("no history yet")
			return nil
		}

		for _, h := range histories {
			status := "✓"
			if h.Status == model.StatusFailed {
				status = "✗"
			}

			fmt.Printf("%s [%s] %-16s %s\n",
				status,
				h.SyncedAt.Format("2006-01-02 15:04:05"),
				h.Decision,
				h.SrcPath,
			)
			if h.ErrMsg != "" {
				fmt.Printf("    %s\n", h.ErrMsg)
			}
		}

		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyN, "n", 20, "number of history entries to show")
	historyCmd.Flags().BoolVar(&historyFailed, "failed", false, "only show failed events")
	rootCmd.AddCommand(historyCmd)
}
