package model

import "time"

type Snapshot struct {
	Src         string     `json:"src"`
	Dst         string     `json:"dst"`
	StartedAt   time.Time  `json:"started_at"`
	Directories int        `json:"directories"`
	Copied      int        `json:"copied"`
	Overwritten int        `json:"overwritten"`
	Skipped     int        `json:"skipped"`
	Failed      int        `json:"failed"`
	LastEvent   *time.Time `json:"last_event"`
}
