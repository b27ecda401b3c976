package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/redmane-backend/internal/domain"
)

// AutoMigrateAll creates missing tables, owners before the rows that reference them.
func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Project{},
		&domain.Dataset{},
		&domain.DatasetMetadata{},
		&domain.Patient{},
		&domain.PatientMetadata{},
		&domain.Sample{},
		&domain.SampleMetadata{},
		&domain.RawFile{},
		&domain.RawFileMetadata{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
