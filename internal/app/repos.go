package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/redmane-backend/internal/data/repos"
	"github.com/yungbote/redmane-backend/internal/platform/logger"
)

type Repos struct {
	Project repos.ProjectRepo
	Dataset repos.DatasetRepo
	Patient repos.PatientRepo
	Sample  repos.SampleRepo
	RawFile repos.RawFileRepo

	DatasetMeta repos.DatasetMetadataStore
	RawFileMeta repos.RawFileMetadataStore
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Project:     repos.NewProjectRepo(db, log),
		Dataset:     repos.NewDatasetRepo(db, log),
		Patient:     repos.NewPatientRepo(db, log),
		Sample:      repos.NewSampleRepo(db, log),
		RawFile:     repos.NewRawFileRepo(db, log),
		DatasetMeta: repos.NewDatasetMetadataStore(db, log),
		RawFileMeta: repos.NewRawFileMetadataStore(db, log),
	}
}
