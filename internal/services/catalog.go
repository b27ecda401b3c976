package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/redmane-backend/internal/data/repos"
	"github.com/yungbote/redmane-backend/internal/domain"
	"github.com/yungbote/redmane-backend/internal/platform/apierr"
	"github.com/yungbote/redmane-backend/internal/platform/ctxutil"
	"github.com/yungbote/redmane-backend/internal/platform/dbctx"
	"github.com/yungbote/redmane-backend/internal/platform/logger"
)

// CatalogService serves the read side of projects, datasets, patients, samples and
// raw files, plus the administrative creates for projects and datasets.
type CatalogService interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	CreateProject(ctx context.Context, in domain.NewProject) (*domain.Project, error)

	ListDatasets(ctx context.Context, projectID int64) ([]domain.DatasetView, error)
	CreateDataset(ctx context.Context, in domain.NewDataset) (*domain.DatasetView, error)
	DatasetWithMetadata(ctx context.Context, projectID, datasetID int64) (*domain.DatasetView, error)

	// Samples lists the project's samples with metadata and owning patient.
	// sampleID 0 means all samples.
	Samples(ctx context.Context, projectID, sampleID int64) ([]domain.SampleView, error)
	// Patients lists the project's patients with metadata and nested samples.
	// patientID 0 means all patients.
	Patients(ctx context.Context, projectID, patientID int64) ([]domain.PatientView, error)

	RawFiles(ctx context.Context, datasetID int64) ([]domain.RawFileView, error)
}

type catalogService struct {
	db          *gorm.DB
	log         *logger.Logger
	projects    repos.ProjectRepo
	datasets    repos.DatasetRepo
	datasetMeta repos.DatasetMetadataStore
	patients    repos.PatientRepo
	samples     repos.SampleRepo
	rawFiles    repos.RawFileRepo
}

func NewCatalogService(
	db *gorm.DB,
	baseLog *logger.Logger,
	projects repos.ProjectRepo,
	datasets repos.DatasetRepo,
	datasetMeta repos.DatasetMetadataStore,
	patients repos.PatientRepo,
	samples repos.SampleRepo,
	rawFiles repos.RawFileRepo,
) CatalogService {
	return &catalogService{
		db:          db,
		log:         baseLog.With("service", "CatalogService"),
		projects:    projects,
		datasets:    datasets,
		datasetMeta: datasetMeta,
		patients:    patients,
		samples:     samples,
		rawFiles:    rawFiles,
	}
}

func (s *catalogService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	out, err := s.projects.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, apierr.MapStore("projects.list", err)
	}
	return out, nil
}

func (s *catalogService) CreateProject(ctx context.Context, in domain.NewProject) (*domain.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apierr.Validation("projects.create", "name is required")
	}
	p := &domain.Project{Name: name, Status: strings.TrimSpace(in.Status)}
	if err := s.projects.Create(dbctx.Context{Ctx: ctx}, p); err != nil {
		return nil, apierr.MapStore("projects.create", err)
	}
	s.log.Info("project created", append(ctxutil.LogFields(ctx), "project_id", p.ID, "name", p.Name)...)
	return p, nil
}

func (s *catalogService) ListDatasets(ctx context.Context, projectID int64) ([]domain.DatasetView, error) {
	if projectID <= 0 {
		return nil, apierr.Validation("datasets.list", "project_id must be positive")
	}
	out, err := s.datasets.ListWithMetadata(dbctx.Context{Ctx: ctx}, projectID, 0)
	if err != nil {
		return nil, apierr.MapStore("datasets.list", err)
	}
	return out, nil
}

func (s *catalogService) CreateDataset(ctx context.Context, in domain.NewDataset) (*domain.DatasetView, error) {
	const op = "datasets.create"
	name := strings.TrimSpace(in.Name)
	if in.ProjectID <= 0 || name == "" {
		return nil, apierr.Validation(op, "project_id and name are required")
	}

	var view *domain.DatasetView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := s.projects.GetByID(dbc, in.ProjectID); err != nil {
			return err
		}
		d := &domain.Dataset{ProjectID: in.ProjectID, Name: name}
		if err := s.datasets.Create(dbc, d); err != nil {
			return err
		}
		meta, err := s.datasetMeta.Add(dbc, d.ID, in.Metadata)
		if err != nil {
			return err
		}
		view = &domain.DatasetView{ID: d.ID, ProjectID: d.ProjectID, Name: d.Name, Metadata: meta}
		return nil
	})
	if err != nil {
		return nil, apierr.MapStore(op, err)
	}
	s.log.Info("dataset created", append(ctxutil.LogFields(ctx), "dataset_id", view.ID, "project_id", view.ProjectID)...)
	return view, nil
}

func (s *catalogService) DatasetWithMetadata(ctx context.Context, projectID, datasetID int64) (*domain.DatasetView, error) {
	const op = "datasets.get"
	if projectID <= 0 || datasetID <= 0 {
		return nil, apierr.Validation(op, "project_id and dataset_id must be positive")
	}
	views, err := s.datasets.ListWithMetadata(dbctx.Context{Ctx: ctx}, projectID, datasetID)
	if err != nil {
		return nil, apierr.MapStore(op, err)
	}
	if len(views) == 0 {
		return nil, apierr.NotFound(op, "dataset %d not found in project %d", datasetID, projectID)
	}
	return &views[0], nil
}

func (s *catalogService) Samples(ctx context.Context, projectID, sampleID int64) ([]domain.SampleView, error) {
	const op = "samples.list"
	if projectID <= 0 || sampleID < 0 {
		return nil, apierr.Validation(op, "project_id must be positive and sample_id non-negative")
	}
	dbc := dbctx.Context{Ctx: ctx}
	views, err := s.samples.ListWithMetadata(dbc, repos.SampleFilter{ProjectID: projectID, SampleID: sampleID})
	if err != nil {
		return nil, apierr.MapStore(op, err)
	}

	seen := map[int64]bool{}
	ids := make([]int64, 0, len(views))
	for _, v := range views {
		if !seen[v.PatientID] {
			seen[v.PatientID] = true
			ids = append(ids, v.PatientID)
		}
	}
	patients, err := s.patients.GetByIDs(dbc, ids)
	if err != nil {
		return nil, apierr.MapStore(op, err)
	}
	byID := make(map[int64]*domain.Patient, len(patients))
	for i := range patients {
		byID[patients[i].ID] = &patients[i]
	}
	for i := range views {
		views[i].Patient = byID[views[i].PatientID]
	}
	return views, nil
}

func (s *catalogService) Patients(ctx context.Context, projectID, patientID int64) ([]domain.PatientView, error) {
	const op = "patients.list"
	if projectID <= 0 || patientID < 0 {
		return nil, apierr.Validation(op, "project_id must be positive and patient_id non-negative")
	}
	dbc := dbctx.Context{Ctx: ctx}
	views, err := s.patients.ListWithMetadata(dbc, projectID, patientID)
	if err != nil {
		return nil, apierr.MapStore(op, err)
	}
	if len(views) == 0 {
		return views, nil
	}
	byPatient, err := s.samples.ByPatient(dbc, repos.SampleFilter{ProjectID: projectID, PatientID: patientID})
	if err != nil {
		return nil, apierr.MapStore(op, err)
	}
	for i := range views {
		if samples, ok := byPatient[views[i].ID]; ok {
			views[i].Samples = samples
		}
	}
	return views, nil
}

func (s *catalogService) RawFiles(ctx context.Context, datasetID int64) ([]domain.RawFileView, error) {
	if datasetID <= 0 {
		return nil, apierr.Validation("raw_files.list", "dataset_id must be positive")
	}
	out, err := s.rawFiles.ListWithMetadata(dbctx.Context{Ctx: ctx}, datasetID)
	if err != nil {
		return nil, apierr.MapStore("raw_files.list", err)
	}
	return out, nil
}
