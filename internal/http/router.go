package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/redmane-backend/internal/http/handlers"
	httpMW "github.com/yungbote/redmane-backend/internal/http/middleware"
	"github.com/yungbote/redmane-backend/internal/observability"
	"github.com/yungbote/redmane-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	CORSOrigins []string
	// Tracing wraps every request in an OpenTelemetry span.
	Tracing     bool
	ServiceName string

	ProjectHandler  *httpH.ProjectHandler
	DatasetHandler  *httpH.DatasetHandler
	ClinicalHandler *httpH.ClinicalHandler
	RawFileHandler  *httpH.RawFileHandler
	HealthHandler   *httpH.HealthHandler
}

const metricsPath = "/metrics"

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics, metricsPath))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET(metricsPath, gin.WrapH(cfg.Metrics.Handler()))
	}

	// Projects
	if cfg.ProjectHandler != nil {
		r.GET("/projects/", cfg.ProjectHandler.ListProjects)
		r.POST("/projects/", cfg.ProjectHandler.CreateProject)
	}

	// Datasets
	if cfg.DatasetHandler != nil {
		r.GET("/datasets/", cfg.DatasetHandler.ListDatasets)
		r.POST("/datasets/", cfg.DatasetHandler.CreateDataset)
		r.GET("/datasets_with_metadata/:dataset_id", cfg.DatasetHandler.GetDatasetWithMetadata)
	}

	// Patients & samples
	if cfg.ClinicalHandler != nil {
		r.GET("/samples/:sample_id", cfg.ClinicalHandler.ListSamples)
		r.GET("/patients_metadata/:patient_id", cfg.ClinicalHandler.ListPatients)
	}

	// Raw files
	if cfg.RawFileHandler != nil {
		r.GET("/raw_files/", cfg.RawFileHandler.ListRawFiles)
		r.POST("/add_raw_files/", cfg.RawFileHandler.AddRawFiles)
		r.PUT("/datasets_metadata/size_update", cfg.RawFileHandler.UpdateDatasetSize)
	}

	return r
}
