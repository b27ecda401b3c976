package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/redmane-backend/internal/http/handlers"
	"github.com/yungbote/redmane-backend/internal/platform/logger"
)

type Handlers struct {
	Project  *handlers.ProjectHandler
	Dataset  *handlers.DatasetHandler
	Clinical *handlers.ClinicalHandler
	RawFile  *handlers.RawFileHandler
	Health   *handlers.HealthHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Project:  handlers.NewProjectHandler(s.Catalog),
		Dataset:  handlers.NewDatasetHandler(s.Catalog),
		Clinical: handlers.NewClinicalHandler(s.Catalog),
		RawFile:  handlers.NewRawFileHandler(log, s.Catalog, s.RawFiles),
		Health:   handlers.NewHealthHandler(db),
	}
}
