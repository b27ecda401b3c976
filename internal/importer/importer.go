// Package importer loads patient and sample rosters exported from clinical
// systems as CSV into the store.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/redmane-backend/internal/data/repos"
	"github.com/yungbote/redmane-backend/internal/domain"
	"github.com/yungbote/redmane-backend/internal/platform/apierr"
	"github.com/yungbote/redmane-backend/internal/platform/dbctx"
	"github.com/yungbote/redmane-backend/internal/platform/logger"
)

type PatientImport struct {
	ProjectID     int64
	ExtPatientURL string
	Profile       Profile
	Source        io.Reader
}

type SampleImport struct {
	ProjectID    int64
	ExtSampleURL string
	Profile      Profile
	Source       io.Reader
}

// Report counts rows written and rows skipped. Line numbers are 1-based and
// count the header.
type Report struct {
	Inserted       int
	Skipped        int
	SkippedLines   []int
	MissingColumns []string
}

type Importer struct {
	db          *gorm.DB
	log         *logger.Logger
	projects    repos.ProjectRepo
	patients    repos.PatientRepo
	samples     repos.SampleRepo
	patientMeta repos.PatientMetadataStore
	sampleMeta  repos.SampleMetadataStore
}

func New(db *gorm.DB, baseLog *logger.Logger) *Importer {
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	return &Importer{
		db:          db,
		log:         baseLog.With("component", "Importer"),
		projects:    repos.NewProjectRepo(db, baseLog),
		patients:    repos.NewPatientRepo(db, baseLog),
		samples:     repos.NewSampleRepo(db, baseLog),
		patientMeta: repos.NewPatientMetadataStore(db, baseLog),
		sampleMeta:  repos.NewSampleMetadataStore(db, baseLog),
	}
}

// ImportPatients creates one patient per CSV row keyed by record_id, with one
// metadata row per profile column. The whole file is one transaction.
func (im *Importer) ImportPatients(ctx context.Context, in PatientImport) (Report, error) {
	const op = "importer.patients"
	var rep Report
	err := im.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := im.projects.GetByID(dbc, in.ProjectID); err != nil {
			return err
		}
		return im.eachRow(op, in.Source, []string{ColumnRecordID}, in.Profile, &rep, func(line int, row csvRow, meta []domain.KV) error {
			extID := row.get(ColumnRecordID)
			if extID == "" {
				im.log.Warn("row without record_id skipped", "line", line)
				rep.skip(line)
				return nil
			}
			p := &domain.Patient{ProjectID: in.ProjectID, ExtPatientID: extID, ExtPatientURL: in.ExtPatientURL}
			if err := im.patients.Create(dbc, p); err != nil {
				return err
			}
			if _, err := im.patientMeta.Add(dbc, p.ID, meta); err != nil {
				return err
			}
			rep.Inserted++
			return nil
		})
	})
	if err != nil {
		return Report{}, apierr.MapStore(op, err)
	}
	im.log.Info("patients imported", "project_id", in.ProjectID, "profile", in.Profile.String(),
		"inserted", rep.Inserted, "skipped", rep.Skipped)
	return rep, nil
}

// ImportSamples creates one sample per CSV row. The owning patient is looked up
// by (project_id, record_id); rows whose patient is unknown are skipped.
func (im *Importer) ImportSamples(ctx context.Context, in SampleImport) (Report, error) {
	const op = "importer.samples"
	var rep Report
	err := im.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := im.projects.GetByID(dbc, in.ProjectID); err != nil {
			return err
		}
		return im.eachRow(op, in.Source, []string{ColumnRecordID, ColumnSampleID}, in.Profile, &rep, func(line int, row csvRow, meta []domain.KV) error {
			recordID := row.get(ColumnRecordID)
			patient, err := im.patients.FindByExtID(dbc, in.ProjectID, recordID)
			if apierr.IsCode(err, apierr.CodeNotFound) {
				im.log.Warn("no patient for sample row, skipping",
					"line", line, "project_id", in.ProjectID, "ext_patient_id", recordID)
				rep.skip(line)
				return nil
			}
			if err != nil {
				return err
			}
			s := &domain.Sample{PatientID: patient.ID, ExtSampleID: row.get(ColumnSampleID), ExtSampleURL: in.ExtSampleURL}
			if err := im.samples.Create(dbc, s); err != nil {
				return err
			}
			if _, err := im.sampleMeta.Add(dbc, s.ID, meta); err != nil {
				return err
			}
			rep.Inserted++
			return nil
		})
	})
	if err != nil {
		return Report{}, apierr.MapStore(op, err)
	}
	im.log.Info("samples imported", "project_id", in.ProjectID, "profile", in.Profile.String(),
		"inserted", rep.Inserted, "skipped", rep.Skipped)
	return rep, nil
}

func (r *Report) skip(line int) {
	r.Skipped++
	r.SkippedLines = append(r.SkippedLines, line)
}

type csvRow struct {
	index  map[string]int
	record []string
}

func (r csvRow) get(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

type rowFunc func(line int, row csvRow, meta []domain.KV) error

// eachRow reads the header, checks required columns and calls fn per record.
// Profile columns absent from the header are logged once and left out.
func (im *Importer) eachRow(op string, src io.Reader, required []string, profile Profile, rep *Report, fn rowFunc) error {
	if src == nil {
		return apierr.Validation(op, "no csv source")
	}
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return apierr.Validation(op, "csv is empty")
	}
	if err != nil {
		return apierr.Validation(op, "read csv header: %v", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return apierr.Validation(op, "csv has no %q column", col)
		}
	}
	var present []string
	for _, col := range profile.Columns {
		if _, ok := index[col]; !ok {
			im.log.Warn("profile column missing from csv, skipping", "column", col, "profile", profile.Name)
			rep.MissingColumns = append(rep.MissingColumns, col)
			continue
		}
		present = append(present, col)
	}

	line := 1
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		line++
		if err != nil {
			return apierr.Validation(op, "read csv line %d: %v", line, err)
		}
		row := csvRow{index: index, record: record}
		meta := make([]domain.KV, 0, len(present))
		for _, col := range present {
			meta = append(meta, domain.KV{Key: col, Value: row.get(col)})
		}
		if err := fn(line, row, meta); err != nil {
			return err
		}
	}
}
