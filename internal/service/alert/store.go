package alert

import (
	"context"

	"seawatch/internal/model"
	pg "seawatch/internal/postgres"
)

// PGAlertStore appends alert records to PostgreSQL.
type PGAlertStore struct{}

// NewPGAlertStore returns the PostgreSQL-backed alert store.
func NewPGAlertStore() *PGAlertStore {
	return &PGAlertStore{}
}

// RecordAlert inserts one alert log row. Rows are never updated or deleted.
func (s *PGAlertStore) RecordAlert(ctx context.Context, alert *model.AlertLog) error {
	db := pg.GetDB()
	return db.WithContext(ctx).Create(alert).Error
}

// ListRecent returns the newest alert records, newest first.
func (s *PGAlertStore) ListRecent(ctx context.Context, limit int) ([]model.AlertLog, error) {
	db := pg.GetDB()
	var alerts []model.AlertLog
	result := db.WithContext(ctx).Order("timestamp desc").Limit(limit).Find(&alerts)
	return alerts, result.Error
}
