package clinical

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/redmane-backend/internal/data/rowagg"
	"github.com/yungbote/redmane-backend/internal/domain"
	"github.com/yungbote/redmane-backend/internal/platform/apierr"
	"github.com/yungbote/redmane-backend/internal/platform/dbctx"
	"github.com/yungbote/redmane-backend/internal/platform/logger"
)

type PatientRepo interface {
	Create(dbc dbctx.Context, patient *domain.Patient) error
	FindByExtID(dbc dbctx.Context, projectID int64, extPatientID string) (*domain.Patient, error)
	GetByIDs(dbc dbctx.Context, ids []int64) ([]domain.Patient, error)
	// ListWithMetadata returns patients of a project with their metadata; samples are
	// left empty. A non-zero patientID narrows the result to that patient.
	ListWithMetadata(dbc dbctx.Context, projectID, patientID int64) ([]domain.PatientView, error)
}

type patientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPatientRepo(db *gorm.DB, baseLog *logger.Logger) PatientRepo {
	repoLog := baseLog.With("repo", "PatientRepo")
	return &patientRepo{db: db, log: repoLog}
}

func (r *patientRepo) Create(dbc dbctx.Context, patient *domain.Patient) error {
	return dbc.Conn(r.db).Create(patient).Error
}

// FindByExtID returns the first registered patient with the external id.
func (r *patientRepo) FindByExtID(dbc dbctx.Context, projectID int64, extPatientID string) (*domain.Patient, error) {
	var p domain.Patient
	err := dbc.Conn(r.db).
		Where("project_id = ? AND ext_patient_id = ?", projectID, extPatientID).
		Order("id ASC").
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("patients.find", "no patient %q in project %d", extPatientID, projectID)
		}
		return nil, err
	}
	return &p, nil
}

func (r *patientRepo) GetByIDs(dbc dbctx.Context, ids []int64) ([]domain.Patient, error) {
	results := []domain.Patient{}
	if len(ids) == 0 {
		return results, nil
	}
	if err := dbc.Conn(r.db).Where("id IN ?", ids).Order("id ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type patientMetadataRow struct {
	ID              int64
	ProjectID       int64
	ExtPatientID    string
	ExtPatientURL   string
	PublicPatientID *string
	MetaID          *int64
	MetaKey         *string
	MetaValue       *string
}

func (r *patientRepo) ListWithMetadata(dbc dbctx.Context, projectID, patientID int64) ([]domain.PatientView, error) {
	var rows []patientMetadataRow
	q := dbc.Conn(r.db).
		Table("patients AS p").
		Select("p.id AS id, p.project_id AS project_id, p.ext_patient_id AS ext_patient_id, " +
			"p.ext_patient_url AS ext_patient_url, p.public_patient_id AS public_patient_id, " +
			"m.id AS meta_id, m.key AS meta_key, m.value AS meta_value").
		Joins("LEFT JOIN patients_metadata AS m ON m.patient_id = p.id").
		Where("p.project_id = ?", projectID)
	if patientID != 0 {
		q = q.Where("p.id = ?", patientID)
	}
	if err := q.Order("p.id ASC").Order("m.id ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	flat := make([]rowagg.Row[int64, domain.PatientView, domain.PatientMetadata], 0, len(rows))
	for _, row := range rows {
		fr := rowagg.Row[int64, domain.PatientView, domain.PatientMetadata]{
			ParentID: row.ID,
			Parent: domain.PatientView{
				ID:              row.ID,
				ProjectID:       row.ProjectID,
				ExtPatientID:    row.ExtPatientID,
				ExtPatientURL:   row.ExtPatientURL,
				PublicPatientID: row.PublicPatientID,
			},
		}
		if row.MetaID != nil {
			fr.Child = &domain.PatientMetadata{
				ID:        *row.MetaID,
				PatientID: row.ID,
				Key:       deref(row.MetaKey),
				Value:     deref(row.MetaValue),
			}
		}
		flat = append(flat, fr)
	}

	groups := rowagg.FoldRows(flat)
	out := make([]domain.PatientView, 0, len(groups))
	for _, g := range groups {
		v := g.Parent
		v.Metadata = g.Children
		v.Samples = []domain.SampleView{}
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
