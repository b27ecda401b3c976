package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/redmane-backend/internal/data/repos/catalog"
	"github.com/yungbote/redmane-backend/internal/data/repos/clinical"
	"github.com/yungbote/redmane-backend/internal/data/repos/metadata"
	"github.com/yungbote/redmane-backend/internal/data/repos/rawfiles"
	"github.com/yungbote/redmane-backend/internal/domain"
	"github.com/yungbote/redmane-backend/internal/platform/logger"
)

type ProjectRepo = catalog.ProjectRepo
type DatasetRepo = catalog.DatasetRepo

type PatientRepo = clinical.PatientRepo
type SampleRepo = clinical.SampleRepo
type SampleFilter = clinical.SampleFilter

type RawFileRepo = rawfiles.RawFileRepo

type DatasetMetadataStore = metadata.Store[domain.DatasetMetadata]
type PatientMetadataStore = metadata.Store[domain.PatientMetadata]
type SampleMetadataStore = metadata.Store[domain.SampleMetadata]
type RawFileMetadataStore = metadata.Store[domain.RawFileMetadata]

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	return catalog.NewProjectRepo(db, baseLog)
}
func NewDatasetRepo(db *gorm.DB, baseLog *logger.Logger) DatasetRepo {
	return catalog.NewDatasetRepo(db, baseLog)
}

func NewPatientRepo(db *gorm.DB, baseLog *logger.Logger) PatientRepo {
	return clinical.NewPatientRepo(db, baseLog)
}
func NewSampleRepo(db *gorm.DB, baseLog *logger.Logger) SampleRepo {
	return clinical.NewSampleRepo(db, baseLog)
}

func NewRawFileRepo(db *gorm.DB, baseLog *logger.Logger) RawFileRepo {
	return rawfiles.NewRawFileRepo(db, baseLog)
}

func NewDatasetMetadataStore(db *gorm.DB, baseLog *logger.Logger) DatasetMetadataStore {
	return metadata.NewDatasetStore(db, baseLog)
}
func NewPatientMetadataStore(db *gorm.DB, baseLog *logger.Logger) PatientMetadataStore {
	return metadata.NewPatientStore(db, baseLog)
}
func NewSampleMetadataStore(db *gorm.DB, baseLog *logger.Logger) SampleMetadataStore {
	return metadata.NewSampleStore(db, baseLog)
}
func NewRawFileMetadataStore(db *gorm.DB, baseLog *logger.Logger) RawFileMetadataStore {
	return metadata.NewRawFileStore(db, baseLog)
}
