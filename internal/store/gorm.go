package store

import (
	"context"
	"errors"

	"github.com/cronmon-dev/cronmon/internal/models"
	"gorm.io/gorm"
)

// GormStore implements MonitorStore on top of a gorm connection. Every
// monitor mutation is a single-row write; the database's row-level
// atomicity is the only serialization between ping ingestion and the
// sweeper, so whichever write lands last wins.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateMonitor(ctx context.Context, monitor *models.Monitor) error {
	return s.db.WithContext(ctx).Create(monitor).Error
}

func (s *GormStore) GetMonitor(ctx context.Context, id string) (models.Monitor, error) {
	var monitor models.Monitor

	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&monitor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Monitor{}, ErrNotFound
		}
		return models.Monitor{}, err
	}

	return monitor, nil
}

func (s *GormStore) ListMonitors(ctx context.Context) ([]models.Monitor, error) {
	var monitors []models.Monitor

	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&monitors).Error; err != nil {
		return nil, err
	}

	return monitors, nil
}

func (s *GormStore) ListActiveMonitors(ctx context.Context) ([]models.Monitor, error) {
	var monitors []models.Monitor

	err := s.db.WithContext(ctx).
		Where("status IN ?", []string{models.StatusNew, models.StatusUp, models.StatusDown}).
		Find(&monitors).Error
	if err != nil {
		return nil, err
	}

	return monitors, nil
}

func (s *GormStore) MarkPingedOk(ctx context.Context, id string, ts int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ping := models.Ping{
			MonitorID: id,
			Timestamp: ts,
			Status:    models.PingStatusSuccess,
		}

		if err := tx.Create(&ping).Error; err != nil {
			return err
		}

		result := tx.Model(&models.Monitor{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"last_ping":     ts,
				"status":        models.StatusUp,
				"failure_count": 0,
			})

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		return nil
	})
}

func (s *GormStore) MarkOverdue(ctx context.Context, id string, failureCount int) error {
	result := s.db.WithContext(ctx).Model(&models.Monitor{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusDown,
			"failure_count": failureCount,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *GormStore) DeleteMonitorAndPings(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("monitor_id = ?", id).Delete(&models.Ping{}).Error; err != nil {
			return err
		}

		if err := tx.Where("monitor_id = ?", id).Delete(&models.Alert{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Monitor{})

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		return nil
	})
}

func (s *GormStore) RecentPings(ctx context.Context, id string, limit int) ([]models.Ping, error) {
	var pings []models.Ping

	err := s.db.WithContext(ctx).
		Where("monitor_id = ?", id).
		Order("timestamp DESC").
		Limit(limit).
		Find(&pings).Error
	if err != nil {
		return nil, err
	}

	return pings, nil
}

func (s *GormStore) RecordAlert(ctx context.Context, alert *models.Alert) error {
	return s.db.WithContext(ctx).Create(alert).Error
}
