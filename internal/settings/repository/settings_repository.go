package repository

import (
	"fmt"
	"time"

	"github.com/fhlgrn/ReadyReply/internal/settings/domain"

	"gorm.io/gorm"
)

// SettingsRepository stores the singleton settings row
type SettingsRepository interface {
	// Get returns the settings, creating them from defaults on first use
	Get() (*domain.AppSettings, error)

	Save(settings *domain.AppSettings) error
}

type settingsRepository struct {
	db       *gorm.DB
	defaults domain.AppSettings
}

func NewSettingsRepository(db *gorm.DB, defaults domain.AppSettings) SettingsRepository {
	defaults.ID = domain.SettingsID
	return &settingsRepository{db: db, defaults: defaults}
}

func (r *settingsRepository) Get() (*domain.AppSettings, error) {
	var settings domain.AppSettings
	result := r.db.Limit(1).Find(&settings, domain.SettingsID)
	if result.Error != nil {
		return nil, fmt.Errorf("get settings: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return &settings, nil
	}

	settings = r.defaults
	settings.UpdatedAt = time.Now()
	if err := r.db.Create(&settings).Error; err != nil {
		return nil, fmt.Errorf("create default settings: %w", err)
	}
	return &settings, nil
}

func (r *settingsRepository) Save(settings *domain.AppSettings) error {
	settings.ID = domain.SettingsID
	settings.UpdatedAt = time.Now()
	if err := r.db.Save(settings).Error; err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
