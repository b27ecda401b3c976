package rawfiles

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/redmane-backend/internal/data/rowagg"
	"github.com/yungbote/redmane-backend/internal/domain"
	"github.com/yungbote/redmane-backend/internal/platform/dbctx"
	"github.com/yungbote/redmane-backend/internal/platform/logger"
)

type RawFileRepo interface {
	// CreateIgnoreDuplicate inserts the file unless (dataset_id, path) is already
	// registered. It reports whether a row was created; on false file.ID is unset.
	CreateIgnoreDuplicate(dbc dbctx.Context, file *domain.RawFile) (bool, error)
	ListWithMetadata(dbc dbctx.Context, datasetID int64) ([]domain.RawFileView, error)
	CountByDataset(dbc dbctx.Context, datasetID int64) (int64, error)
}

type rawFileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRawFileRepo(db *gorm.DB, baseLog *logger.Logger) RawFileRepo {
	repoLog := baseLog.With("repo", "RawFileRepo")
	return &rawFileRepo{db: db, log: repoLog}
}

func (r *rawFileRepo) CreateIgnoreDuplicate(dbc dbctx.Context, file *domain.RawFile) (bool, error) {
	res := dbc.Conn(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "dataset_id"}, {Name: "path"}},
			DoNothing: true,
		}).
		Create(file)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		file.ID = 0
		return false, nil
	}
	return true, nil
}

func (r *rawFileRepo) CountByDataset(dbc dbctx.Context, datasetID int64) (int64, error) {
	var n int64
	err := dbc.Conn(r.db).Model(&domain.RawFile{}).Where("dataset_id = ?", datasetID).Count(&n).Error
	return n, err
}

type rawFileMetadataRow struct {
	ID        int64
	DatasetID int64
	Path      string
	MetaID    *int64
	MetaKey   *string
	MetaValue *string
}

func (r *rawFileRepo) ListWithMetadata(dbc dbctx.Context, datasetID int64) ([]domain.RawFileView, error) {
	var rows []rawFileMetadataRow
	err := dbc.Conn(r.db).
		Table("raw_files AS f").
		Select("f.id AS id, f.dataset_id AS dataset_id, f.path AS path, " +
			"m.id AS meta_id, m.key AS meta_key, m.value AS meta_value").
		Joins("LEFT JOIN raw_files_metadata AS m ON m.raw_file_id = f.id").
		Where("f.dataset_id = ?", datasetID).
		Order("f.id ASC").Order("m.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	flat := make([]rowagg.Row[int64, domain.RawFileView, domain.RawFileMetadata], 0, len(rows))
	for _, row := range rows {
		fr := rowagg.Row[int64, domain.RawFileView, domain.RawFileMetadata]{
			ParentID: row.ID,
			Parent:   domain.RawFileView{ID: row.ID, DatasetID: row.DatasetID, Path: row.Path},
		}
		if row.MetaID != nil {
			m := domain.NewRawFileMetadata(row.ID, "", "")
			m.ID = *row.MetaID
			if row.MetaKey != nil {
				m.Key = *row.MetaKey
			}
			if row.MetaValue != nil {
				m.Value = *row.MetaValue
			}
			fr.Child = &m
		}
		flat = append(flat, fr)
	}

	groups := rowagg.FoldRows(flat)
	out := make([]domain.RawFileView, 0, len(groups))
	for _, g := range groups {
		v := g.Parent
		v.Metadata = g.Children
		out = append(out, v)
	}
	return out, nil
}
