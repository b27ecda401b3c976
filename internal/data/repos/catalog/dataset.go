package catalog

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/redmane-backend/internal/data/rowagg"
	"github.com/yungbote/redmane-backend/internal/domain"
	"github.com/yungbote/redmane-backend/internal/platform/apierr"
	"github.com/yungbote/redmane-backend/internal/platform/dbctx"
	"github.com/yungbote/redmane-backend/internal/platform/logger"
)

type DatasetRepo interface {
	Create(dbc dbctx.Context, dataset *domain.Dataset) error
	GetByID(dbc dbctx.Context, id int64) (*domain.Dataset, error)
	// ListWithMetadata returns the project's datasets with their metadata. A non-zero
	// datasetID narrows the result to that dataset.
	ListWithMetadata(dbc dbctx.Context, projectID, datasetID int64) ([]domain.DatasetView, error)
}

type datasetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDatasetRepo(db *gorm.DB, baseLog *logger.Logger) DatasetRepo {
	repoLog := baseLog.With("repo", "DatasetRepo")
	return &datasetRepo{db: db, log: repoLog}
}

func (r *datasetRepo) Create(dbc dbctx.Context, dataset *domain.Dataset) error {
	return dbc.Conn(r.db).Create(dataset).Error
}

func (r *datasetRepo) GetByID(dbc dbctx.Context, id int64) (*domain.Dataset, error) {
	var d domain.Dataset
	if err := dbc.Conn(r.db).Where("id = ?", id).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("datasets.get", "dataset %d not found", id)
		}
		return nil, err
	}
	return &d, nil
}

type datasetMetadataRow struct {
	ID        int64
	ProjectID int64
	Name      string
	MetaID    *int64
	MetaKey   *string
	MetaValue *string
}

func (r *datasetRepo) ListWithMetadata(dbc dbctx.Context, projectID, datasetID int64) ([]domain.DatasetView, error) {
	var rows []datasetMetadataRow
	q := dbc.Conn(r.db).
		Table("datasets AS d").
		Select("d.id AS id, d.project_id AS project_id, d.name AS name, " +
			"m.id AS meta_id, m.key AS meta_key, m.value AS meta_value").
		Joins("LEFT JOIN datasets_metadata AS m ON m.dataset_id = d.id").
		Where("d.project_id = ?", projectID)
	if datasetID != 0 {
		q = q.Where("d.id = ?", datasetID)
	}
	if err := q.Order("d.id ASC").Order("m.id ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	flat := make([]rowagg.Row[int64, domain.DatasetView, domain.DatasetMetadata], 0, len(rows))
	for _, row := range rows {
		fr := rowagg.Row[int64, domain.DatasetView, domain.DatasetMetadata]{
			ParentID: row.ID,
			Parent:   domain.DatasetView{ID: row.ID, ProjectID: row.ProjectID, Name: row.Name},
		}
		if row.MetaID != nil {
			fr.Child = &domain.DatasetMetadata{
				ID:        *row.MetaID,
				DatasetID: row.ID,
				Key:       deref(row.MetaKey),
				Value:     deref(row.MetaValue),
			}
		}
		flat = append(flat, fr)
	}

	groups := rowagg.FoldRows(flat)
	out := make([]domain.DatasetView, 0, len(groups))
	for _, g := range groups {
		v := g.Parent
		v.Metadata = g.Children
		out = append(out, v)
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
