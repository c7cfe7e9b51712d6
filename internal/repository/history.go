package repository

import (
	"time"

	"mirrorsync/internal/model"

	"gorm.io/gorm"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Save(result model.SyncResult) error {
	status := model.StatusSuccess
	errMsg := ""
	if result.Failed() {
		status = model.StatusFailed
		errMsg = result.Err.Error()
	}

	history := model.History{
		Status:    status,
		Decision:  result.Decision,
		EventKind: result.Event.Kind,
		SrcPath:   result.SrcPath,
		DstPath:   result.DstPath,
		ErrMsg:    errMsg,
		SyncedAt:  time.Now(),
	}

	return r.db.Create(&history).Error
}

type Stats struct {
	Total   int64 `json:"total"`
	Success int64 `json:"success"`
	Failed  int64 `json:"failed"`
}

func (r *HistoryRepository) GetStats() (Stats, error) {
	var stats Stats
	if err := r.db.Model(&model.History{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}

	if err := r.db.Model(&model.History{}).
		Where("status = ?", model.StatusSuccess).
		Count(&stats.Success).Error; err != nil {
		return stats, err
	}

	stats.Failed = stats.Total - stats.Success
	return stats, nil
}

func (r *HistoryRepository) GetRecent(limit int) ([]model.History, error) {
	var histories []model.History
	result := r.db.
		Order("synced_at desc").
		Order("id desc").
		Limit(limit).
		Find(&histories)

	return histories, result.Error
}

func (r *HistoryRepository) GetFailed() ([]model.History, error) {
	var histories []model.History
	result := r.db.
		Where("status = ?", model.StatusFailed).
		Order("synced_at desc").
		Order("id desc").
		Find(&histories)

	return histories, result.Error
}
