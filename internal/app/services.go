package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/redmane-backend/internal/data/aggregates"
	"github.com/yungbote/redmane-backend/internal/observability"
	"github.com/yungbote/redmane-backend/internal/platform/logger"
	"github.com/yungbote/redmane-backend/internal/services"
)

type Services struct {
	Catalog  services.CatalogService
	RawFiles aggregates.RawFileAggregate
}

func wireServices(db *gorm.DB, log *logger.Logger, metrics *observability.Metrics, r Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Catalog: services.NewCatalogService(db, log,
			r.Project, r.Dataset, r.DatasetMeta, r.Patient, r.Sample, r.RawFile),
		RawFiles: aggregates.NewRawFileAggregate(aggregates.RawFileAggregateDeps{
			BaseDeps: aggregates.BaseDeps{
				DB:    db,
				Log:   log,
				Hooks: aggregates.NewObservabilityHooks(metrics),
			},
			Files:       r.RawFile,
			FileMeta:    r.RawFileMeta,
			DatasetMeta: r.DatasetMeta,
		}),
	}
}
