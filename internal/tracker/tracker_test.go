package tracker

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/redmane-backend/internal/domain"
	"github.com/yungbote/redmane-backend/internal/platform/apierr"
)

func TestRunStopsOnConfigurationError(t *testing.T) {
	c, mt := newMockClient(t)
	mt.RegisterResponder(http.MethodGet, mockServer+"/datasets_with_metadata/2?project_id=1",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, datasetWith(domain.MetaRawFileExtensions, "*.fastq")))

	_, err := New(nil, c).Run(t.Context(), Options{Directory: t.TempDir(), DatasetID: 2, ProjectID: 1})
	require.Error(t, err)
	assert.True(t, apierr.IsCode(err, apierr.CodeConfiguration), "got %v", err)
	assert.Equal(t, 1, mt.GetTotalCallCount())
}

func TestRunSubmitsSizeBeforeFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "run", "SMP-A1_r1.fastq"), "ACGT")
	writeFile(t, filepath.Join(root, "unknown.fastq"), "ACGT")

	c, mt := newMockClient(t)
	mt.RegisterResponder(http.MethodGet, mockServer+"/datasets_with_metadata/2?project_id=1",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, datasetWith(
			domain.MetaSampleInfoStored, "filename",
			domain.MetaRawFileExtensions, "*.fastq",
		)))
	mt.RegisterResponder(http.MethodGet, mockServer+"/samples/0?project_id=1",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, []domain.SampleView{{ID: 4, PatientID: 3, ExtSampleID: "SMP-A1"}}))

	var order []string
	var size domain.SizeUpdate
	mt.RegisterResponder(http.MethodPut, mockServer+"/datasets_metadata/size_update",
		func(req *http.Request) (*http.Response, error) {
			order = append(order, "size")
			if err := jsonDecode(req, &size); err != nil {
				return nil, err
			}
			return httpmock.NewJsonResponse(http.StatusOK, map[string]string{"status": "success"})
		})
	mt.RegisterResponder(http.MethodPost, mockServer+"/add_raw_files/",
		func(req *http.Request) (*http.Response, error) {
			order = append(order, "files")
			return httpmock.NewJsonResponse(http.StatusOK, map[string]any{"status": "success", "created": 1})
		})

	tr := New(nil, c)
	tr.now = func() time.Time { return time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC) }
	rep, err := tr.Run(t.Context(), Options{Directory: root, DatasetID: 2, ProjectID: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"size", "files"}, order)
	assert.Equal(t, domain.SizeUpdate{DatasetID: 2, RawFileSize: "4 B", LastSizeUpdate: "2024-05-06"}, size)
	assert.Equal(t, domain.SubmitResult{Created: 1}, rep.Submitted)
	require.Len(t, rep.Match.Unmatched, 1)
	assert.Equal(t, filepath.Join(root, "unknown.fastq"), rep.Match.Unmatched[0].Path)
}

func TestRunValidatesOptions(t *testing.T) {
	c, mt := newMockClient(t)
	_, err := New(nil, c).Run(t.Context(), Options{Directory: t.TempDir(), DatasetID: 0, ProjectID: 1})
	assert.True(t, apierr.IsCode(err, apierr.CodeValidation))
	assert.Zero(t, mt.GetTotalCallCount())
}

func TestRunReportsMissingDirectoryAsIOError(t *testing.T) {
	c, mt := newMockClient(t)
	mt.RegisterResponder(http.MethodGet, mockServer+"/datasets_with_metadata/2?project_id=1",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, datasetWith(
			domain.MetaSampleInfoStored, "filename",
			domain.MetaRawFileExtensions, "*.fastq",
		)))
	mt.RegisterResponder(http.MethodGet, mockServer+"/samples/0?project_id=1",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, []domain.SampleView{}))

	missing := filepath.Join(t.TempDir(), "missing")
	_, err := New(nil, c).Run(t.Context(), Options{Directory: missing, DatasetID: 2, ProjectID: 1})
	require.Error(t, err)
	assert.True(t, apierr.IsCode(err, apierr.CodeIO), "got %v", err)
	assert.Equal(t, 2, mt.GetTotalCallCount())
}
