package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Ask the running watcher to shut down",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := requestStop(daemonURL("/stop"))
		if err != nil {
			return err
		}

		fmt.Printf("watcher %s\n", status)
		return nil
	},
}

// requestStop posts to the watcher's stop endpoint and returns the status it
// acknowledged with. Anything but a 200 carrying "stopping" is an error.
func requestStop(url string) (string, error) {
	resp, err := http.Post(url, "application/json", nil)
	if err != nil {
		return "", fmt.Errorf("daemon not running: %w", err)
	}

	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("stop rejected: %s", resp.Status)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode stop response: %w", err)
	}

	if body.Status != "stopping" {
		return "", fmt.Errorf("unexpected stop response %q", body.Status)
	}

	return body.Status, nil
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
