package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/redmane-backend/internal/domain"
)

func SeedProject(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *domain.Project {
	tb.Helper()
	p := &domain.Project{Name: name, Status: "active"}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed project: %v", err)
	}
	return p
}

func SeedDataset(tb testing.TB, ctx context.Context, tx *gorm.DB, projectID int64, name string, meta ...domain.KV) *domain.Dataset {
	tb.Helper()
	d := &domain.Dataset{ProjectID: projectID, Name: name}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed dataset: %v", err)
	}
	for _, kv := range meta {
		m := domain.NewDatasetMetadata(d.ID, kv.Key, kv.Value)
		if err := tx.WithContext(ctx).Create(&m).Error; err != nil {
			tb.Fatalf("seed dataset metadata: %v", err)
		}
	}
	return d
}

func SeedPatient(tb testing.TB, ctx context.Context, tx *gorm.DB, projectID int64, extID string, meta ...domain.KV) *domain.Patient {
	tb.Helper()
	p := &domain.Patient{ProjectID: projectID, ExtPatientID: extID, ExtPatientURL: "REDCAP-TEST"}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed patient: %v", err)
	}
	for _, kv := range meta {
		m := domain.NewPatientMetadata(p.ID, kv.Key, kv.Value)
		if err := tx.WithContext(ctx).Create(&m).Error; err != nil {
			tb.Fatalf("seed patient metadata: %v", err)
		}
	}
	return p
}

func SeedSample(tb testing.TB, ctx context.Context, tx *gorm.DB, patientID int64, extID string, meta ...domain.KV) *domain.Sample {
	tb.Helper()
	s := &domain.Sample{PatientID: patientID, ExtSampleID: extID, ExtSampleURL: "LIMS-TEST"}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed sample: %v", err)
	}
	for _, kv := range meta {
		m := domain.NewSampleMetadata(s.ID, kv.Key, kv.Value)
		if err := tx.WithContext(ctx).Create(&m).Error; err != nil {
			tb.Fatalf("seed sample metadata: %v", err)
		}
	}
	return s
}
