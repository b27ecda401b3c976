package app

import (
	httpserver "github.com/yungbote/redmane-backend/internal/http"
	"github.com/yungbote/redmane-backend/internal/observability"
	"github.com/yungbote/redmane-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, h Handlers) *httpserver.Server {
	return httpserver.NewServer(httpserver.RouterConfig{
		Log:             log,
		Metrics:         metrics,
		CORSOrigins:     cfg.CORSOrigins,
		Tracing:         cfg.Otel.Enabled,
		ServiceName:     cfg.Otel.ServiceName,
		ProjectHandler:  h.Project,
		DatasetHandler:  h.Dataset,
		ClinicalHandler: h.Clinical,
		RawFileHandler:  h.RawFile,
		HealthHandler:   h.Health,
	}, cfg.ShutdownTimeout)
}
