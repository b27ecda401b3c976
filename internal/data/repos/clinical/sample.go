package clinical

import (
	"gorm.io/gorm"

	"github.com/yungbote/redmane-backend/internal/data/rowagg"
	"github.com/yungbote/redmane-backend/internal/domain"
	"github.com/yungbote/redmane-backend/internal/platform/dbctx"
	"github.com/yungbote/redmane-backend/internal/platform/logger"
)

// SampleFilter narrows sample reads. Zero ids mean "all".
type SampleFilter struct {
	ProjectID int64
	SampleID  int64
	PatientID int64
}

type SampleRepo interface {
	Create(dbc dbctx.Context, sample *domain.Sample) error
	ListWithMetadata(dbc dbctx.Context, filter SampleFilter) ([]domain.SampleView, error)
	// ByPatient is ListWithMetadata keyed by owning patient id.
	ByPatient(dbc dbctx.Context, filter SampleFilter) (map[int64][]domain.SampleView, error)
}

type sampleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSampleRepo(db *gorm.DB, baseLog *logger.Logger) SampleRepo {
	repoLog := baseLog.With("repo", "SampleRepo")
	return &sampleRepo{db: db, log: repoLog}
}

func (r *sampleRepo) Create(dbc dbctx.Context, sample *domain.Sample) error {
	return dbc.Conn(r.db).Create(sample).Error
}

type sampleMetadataRow struct {
	ID           int64
	PatientID    int64
	ExtSampleID  string
	ExtSampleURL string
	MetaID       *int64
	MetaKey      *string
	MetaValue    *string
}

func (r *sampleRepo) groups(dbc dbctx.Context, filter SampleFilter) ([]rowagg.Group[domain.SampleView, domain.SampleMetadata], error) {
	var rows []sampleMetadataRow
	q := dbc.Conn(r.db).
		Table("samples AS s").
		Select("s.id AS id, s.patient_id AS patient_id, s.ext_sample_id AS ext_sample_id, " +
			"s.ext_sample_url AS ext_sample_url, " +
			"m.id AS meta_id, m.key AS meta_key, m.value AS meta_value").
		Joins("JOIN patients AS p ON p.id = s.patient_id").
		Joins("LEFT JOIN samples_metadata AS m ON m.sample_id = s.id").
		Where("p.project_id = ?", filter.ProjectID)
	if filter.SampleID != 0 {
		q = q.Where("s.id = ?", filter.SampleID)
	}
	if filter.PatientID != 0 {
		q = q.Where("s.patient_id = ?", filter.PatientID)
	}
	if err := q.Order("s.id ASC").Order("m.id ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	flat := make([]rowagg.Row[int64, domain.SampleView, domain.SampleMetadata], 0, len(rows))
	for _, row := range rows {
		fr := rowagg.Row[int64, domain.SampleView, domain.SampleMetadata]{
			ParentID: row.ID,
			Parent: domain.SampleView{
				ID:           row.ID,
				PatientID:    row.PatientID,
				ExtSampleID:  row.ExtSampleID,
				ExtSampleURL: row.ExtSampleURL,
			},
		}
		if row.MetaID != nil {
			fr.Child = &domain.SampleMetadata{
				ID:       *row.MetaID,
				SampleID: row.ID,
				Key:      deref(row.MetaKey),
				Value:    deref(row.MetaValue),
			}
		}
		flat = append(flat, fr)
	}
	return rowagg.FoldRows(flat), nil
}

func (r *sampleRepo) ListWithMetadata(dbc dbctx.Context, filter SampleFilter) ([]domain.SampleView, error) {
	groups, err := r.groups(dbc, filter)
	if err != nil {
		return nil, err
	}
	return sampleViews(groups), nil
}

func (r *sampleRepo) ByPatient(dbc dbctx.Context, filter SampleFilter) (map[int64][]domain.SampleView, error) {
	groups, err := r.groups(dbc, filter)
	if err != nil {
		return nil, err
	}
	byPatient := rowagg.Index(groups, func(s domain.SampleView) int64 { return s.PatientID })
	out := make(map[int64][]domain.SampleView, len(byPatient))
	for patientID, gs := range byPatient {
		out[patientID] = sampleViews(gs)
	}
	return out, nil
}

func sampleViews(groups []rowagg.Group[domain.SampleView, domain.SampleMetadata]) []domain.SampleView {
	out := make([]domain.SampleView, 0, len(groups))
	for _, g := range groups {
		v := g.Parent
		v.Metadata = g.Children
		out = append(out, v)
	}
	return out
}
