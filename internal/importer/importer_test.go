package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/redmane-backend/internal/data/repos/testutil"
	"github.com/yungbote/redmane-backend/internal/domain"
	"github.com/yungbote/redmane-backend/internal/platform/apierr"
)

func TestImportPatientsWithProfile(t *testing.T) {
	db := testutil.DB(t)
	p := testutil.SeedProject(t, t.Context(), db, "onj")
	profile, _ := BuiltinProfile("onj")

	csv := "record_id,age_range,smoking,control\nONJ-1,40-49,yes,no\n,50-59,no,no\nONJ-2,60-69,no,yes\n"
	rep, err := New(db, testutil.Logger(t)).ImportPatients(t.Context(), PatientImport{
		ProjectID: p.ID, ExtPatientURL: "REDCAP-ONJ-443", Profile: profile, Source: strings.NewReader(csv),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Inserted)
	assert.Equal(t, []int{3}, rep.SkippedLines)

	var patients []domain.Patient
	require.NoError(t, db.Order("id").Find(&patients).Error)
	require.Len(t, patients, 2)
	assert.Equal(t, "ONJ-1", patients[0].ExtPatientID)
	assert.Equal(t, "REDCAP-ONJ-443", patients[0].ExtPatientURL)

	var meta []domain.PatientMetadata
	require.NoError(t, db.Where("patient_id = ?", patients[0].ID).Order("id").Find(&meta).Error)
	assert.Equal(t, domain.Attributes{"age_range": "40-49", "smoking": "yes", "control": "no"}, domain.AttributesOf(meta))
}

func TestImportPatientsSkipsMissingProfileColumns(t *testing.T) {
	db := testutil.DB(t)
	p := testutil.SeedProject(t, t.Context(), db, "rmh")
	profile, _ := BuiltinProfile("rmh")

	rep, err := New(db, testutil.Logger(t)).ImportPatients(t.Context(), PatientImport{
		ProjectID: p.ID, Profile: profile, Source: strings.NewReader("record_id,age_range\nRMH-1,30-39\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Inserted)
	assert.Equal(t, []string{"diabetes_1", "diabetes_2"}, rep.MissingColumns)

	var count int64
	require.NoError(t, db.Model(&domain.PatientMetadata{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestImportPatientsRequiresRecordIDAndProject(t *testing.T) {
	db := testutil.DB(t)
	p := testutil.SeedProject(t, t.Context(), db, "onj")
	im := New(db, testutil.Logger(t))

	_, err := im.ImportPatients(t.Context(), PatientImport{ProjectID: p.ID, Source: strings.NewReader("id,age\n1,2\n")})
	assert.True(t, apierr.IsCode(err, apierr.CodeValidation), "got %v", err)

	_, err = im.ImportPatients(t.Context(), PatientImport{ProjectID: p.ID + 100, Source: strings.NewReader("record_id\nX\n")})
	assert.True(t, apierr.IsCode(err, apierr.CodeNotFound), "got %v", err)

	var count int64
	require.NoError(t, db.Model(&domain.Patient{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestImportSamplesLooksUpPatients(t *testing.T) {
	db := testutil.DB(t)
	ctx := t.Context()
	p := testutil.SeedProject(t, ctx, db, "onj")
	pt := testutil.SeedPatient(t, ctx, db, p.ID, "ONJ-1")
	profile, _ := BuiltinProfile("samples")

	csv := "record_id,sample_id,ext_sample_batch,tissue,sample_date\n" +
		"ONJ-1,S1,B1,blood,2024-01-02\n" +
		"ONJ-404,S2,B1,bone,2024-01-03\n" +
		"ONJ-1,S3,B2,bone,2024-02-01\n"
	rep, err := New(db, testutil.Logger(t)).ImportSamples(ctx, SampleImport{
		ProjectID: p.ID, ExtSampleURL: "LIMS-1", Profile: profile, Source: strings.NewReader(csv),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Inserted)
	assert.Equal(t, 1, rep.Skipped)
	assert.Equal(t, []int{3}, rep.SkippedLines)

	var samples []domain.Sample
	require.NoError(t, db.Order("id").Find(&samples).Error)
	require.Len(t, samples, 2)
	for _, s := range samples {
		assert.Equal(t, pt.ID, s.PatientID)
		assert.Equal(t, "LIMS-1", s.ExtSampleURL)
	}
	assert.Equal(t, "S3", samples[1].ExtSampleID)

	var meta []domain.SampleMetadata
	require.NoError(t, db.Where("sample_id = ?", samples[1].ID).Find(&meta).Error)
	assert.Equal(t, domain.Attributes{"ext_sample_batch": "B2", "tissue": "bone", "sample_date": "2024-02-01"}, domain.AttributesOf(meta))
}

func TestImportSamplesRollsBackOnBadCSV(t *testing.T) {
	db := testutil.DB(t)
	ctx := t.Context()
	p := testutil.SeedProject(t, ctx, db, "onj")
	testutil.SeedPatient(t, ctx, db, p.ID, "ONJ-1")

	csv := "record_id,sample_id\nONJ-1,S1\nONJ-1,\"S2\n"
	_, err := New(db, testutil.Logger(t)).ImportSamples(ctx, SampleImport{ProjectID: p.ID, Source: strings.NewReader(csv)})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&domain.Sample{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestImportSamplesRequiresProject(t *testing.T) {
	db := testutil.DB(t)
	p := testutil.SeedProject(t, t.Context(), db, "onj")

	_, err := New(db, testutil.Logger(t)).ImportSamples(t.Context(), SampleImport{
		ProjectID: p.ID + 100, Source: strings.NewReader("record_id,sample_id\nONJ-1,S1\n"),
	})
	assert.True(t, apierr.IsCode(err, apierr.CodeNotFound), "got %v", err)
}
