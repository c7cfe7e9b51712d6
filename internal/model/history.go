package model

import (
	"time"

	"gorm.io/gorm"
)

type SyncStatus string

const (
	StatusSuccess SyncStatus = "SUCCESS"
	StatusFailed  SyncStatus = "FAILED"
)

type History struct {
	gorm.Model
	Status    SyncStatus `gorm:"not null;index"`
	Decision  Decision   `gorm:"not null"`
	EventKind EventKind  `gorm:"not null"`
	SrcPath   string     `gorm:"not null"`
	DstPath   string
	ErrMsg    string
	SyncedAt  time.Time `gorm:"not null;index"`
}
