package metadata

import (
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/redmane-backend/internal/domain"
	"github.com/yungbote/redmane-backend/internal/platform/apierr"
	"github.com/yungbote/redmane-backend/internal/platform/dbctx"
	"github.com/yungbote/redmane-backend/internal/platform/logger"
)

// Store persists the key/value bag attached to one kind of owner (dataset, patient,
// sample or raw file).
type Store[T domain.Metadata] interface {
	ListByOwners(dbc dbctx.Context, ownerIDs []int64) ([]T, error)
	Attributes(dbc dbctx.Context, ownerID int64) (domain.Attributes, error)
	Add(dbc dbctx.Context, ownerID int64, pairs []domain.KV) ([]T, error)
	Upsert(dbc dbctx.Context, ownerID int64, key, value string) error
}

type store[T domain.Metadata] struct {
	db     *gorm.DB
	log    *logger.Logger
	newRow func(ownerID int64, key, value string) T
}

func NewStore[T domain.Metadata](db *gorm.DB, baseLog *logger.Logger, newRow func(ownerID int64, key, value string) T) Store[T] {
	var zero T
	repoLog := baseLog.With("repo", "MetadataStore", "table", zero.TableName())
	return &store[T]{db: db, log: repoLog, newRow: newRow}
}

func NewDatasetStore(db *gorm.DB, baseLog *logger.Logger) Store[domain.DatasetMetadata] {
	return NewStore(db, baseLog, domain.NewDatasetMetadata)
}

func NewPatientStore(db *gorm.DB, baseLog *logger.Logger) Store[domain.PatientMetadata] {
	return NewStore(db, baseLog, domain.NewPatientMetadata)
}

func NewSampleStore(db *gorm.DB, baseLog *logger.Logger) Store[domain.SampleMetadata] {
	return NewStore(db, baseLog, domain.NewSampleMetadata)
}

func NewRawFileStore(db *gorm.DB, baseLog *logger.Logger) Store[domain.RawFileMetadata] {
	return NewStore(db, baseLog, domain.NewRawFileMetadata)
}

func (s *store[T]) ListByOwners(dbc dbctx.Context, ownerIDs []int64) ([]T, error) {
	results := []T{}
	if len(ownerIDs) == 0 {
		return results, nil
	}
	var zero T
	owner := zero.OwnerColumn()
	if err := dbc.Conn(s.db).
		Where(owner+" IN ?", ownerIDs).
		Order(owner + " ASC").
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *store[T]) Attributes(dbc dbctx.Context, ownerID int64) (domain.Attributes, error) {
	rows, err := s.ListByOwners(dbc, []int64{ownerID})
	if err != nil {
		return nil, err
	}
	return domain.AttributesOf(rows), nil
}

func (s *store[T]) Add(dbc dbctx.Context, ownerID int64, pairs []domain.KV) ([]T, error) {
	rows := make([]T, 0, len(pairs))
	for _, p := range pairs {
		key := strings.TrimSpace(p.Key)
		if key == "" {
			var zero T
			return nil, apierr.Validation("metadata.add", "empty metadata key for %s %d", zero.OwnerColumn(), ownerID)
		}
		rows = append(rows, s.newRow(ownerID, key, p.Value))
	}
	if len(rows) == 0 {
		return rows, nil
	}
	if err := dbc.Conn(s.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert replaces the value of every existing row for (owner, key), or inserts one row
// when there is none.
func (s *store[T]) Upsert(dbc dbctx.Context, ownerID int64, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return apierr.Validation("metadata.upsert", "empty metadata key")
	}
	var zero T
	conn := dbc.Conn(s.db)
	res := conn.Model(&zero).
		Where(zero.OwnerColumn()+" = ? AND key = ?", ownerID, key).
		Update("value", value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	row := s.newRow(ownerID, key, value)
	return conn.Create(&row).Error
}
