package tracker

import (
	"errors"
	"iter"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/redmane-backend/internal/domain"
	"github.com/yungbote/redmane-backend/internal/platform/apierr"
)

func paths(ps ...string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, p := range ps {
			if !yield(p, nil) {
				return
			}
		}
	}
}

func sampleIDsOf(req domain.RawFileRequest) []string {
	out := make([]string, 0, len(req.Metadata))
	for _, m := range req.Metadata {
		out = append(out, m.MetadataKey+"="+m.MetadataValue)
	}
	return out
}

func TestFilenameMatcherSampleSubstring(t *testing.T) {
	roster := []RosterSample{{SampleID: 1, PatientID: 10, ExtSampleID: "S1", ExtPatientID: "P 100"}}
	res, err := NewFilenameMatcher().Match(t.Context(), paths("/data/S1_run.fastq"), roster, 5)
	require.NoError(t, err)

	require.Len(t, res.Requests, 1)
	assert.Equal(t, domain.RawFileRequest{
		DatasetID: 5,
		Path:      "/data/S1_run.fastq",
		Metadata:  []domain.MetadataPair{{MetadataKey: "sample_id", MetadataValue: "1"}},
	}, res.Requests[0])
	assert.Equal(t, StatusSampleFound, res.Matched[0].Status)
	assert.Empty(t, res.Unmatched)
}

func TestFilenameMatcherPatientWildcard(t *testing.T) {
	roster := []RosterSample{{SampleID: 2, PatientID: 20, ExtSampleID: "X9", ExtPatientID: "P 100"}}
	res, err := NewFilenameMatcher().Match(t.Context(),
		paths("/data/P-run-100-abc.fastq", "/data/Q100.fastq"), roster, 5)
	require.NoError(t, err)

	require.Len(t, res.Matched, 1)
	assert.Equal(t, "/data/P-run-100-abc.fastq", res.Matched[0].Path)
	assert.Equal(t, StatusPatientFound, res.Matched[0].Status)
	assert.Equal(t, []int64{2}, res.Matched[0].SampleIDs)

	require.Len(t, res.Unmatched, 1)
	assert.Equal(t, FileStatus{Path: "/data/Q100.fastq", Status: StatusNotFound}, res.Unmatched[0])
}

func TestFilenameMatcherSampleMatchesAreExhaustive(t *testing.T) {
	roster := []RosterSample{
		{SampleID: 1, ExtSampleID: "S1"},
		{SampleID: 2, ExtSampleID: "S12"},
		{SampleID: 3, ExtSampleID: "S3"},
	}
	res, err := NewFilenameMatcher().Match(t.Context(), paths("/d/S12_lane.fastq"), roster, 1)
	require.NoError(t, err)
	require.Len(t, res.Requests, 1)
	assert.Equal(t, []string{"sample_id=1", "sample_id=2"}, sampleIDsOf(res.Requests[0]))
}

func TestFilenameMatcherPatientMatchStopsTheScan(t *testing.T) {
	roster := []RosterSample{
		{SampleID: 1, ExtSampleID: "X1", ExtPatientID: "P1"},
		{SampleID: 2, ExtSampleID: "X2", ExtPatientID: "P1"},
		{SampleID: 3, ExtSampleID: "S3"},
	}
	res, err := NewFilenameMatcher().Match(t.Context(), paths("/d/P1_S3.fastq"), roster, 1)
	require.NoError(t, err)
	require.Len(t, res.Requests, 1)
	assert.Equal(t, []string{"sample_id=1"}, sampleIDsOf(res.Requests[0]))
}

func TestFilenameMatcherEmptyIdentifiersNeverMatch(t *testing.T) {
	roster := []RosterSample{{SampleID: 1}}
	res, err := NewFilenameMatcher().Match(t.Context(), paths("/d/anything.fastq"), roster, 1)
	require.NoError(t, err)
	assert.Empty(t, res.Requests)
	require.Len(t, res.Unmatched, 1)
	assert.Equal(t, StatusNotFound, res.Unmatched[0].Status)
}

func TestPatientPatternQuotesMetacharacters(t *testing.T) {
	re := PatientPattern("P.1 (a)")
	require.NotNil(t, re)
	assert.True(t, re.MatchString("/d/P.1_x_(a).fastq"))
	assert.False(t, re.MatchString("/d/PX1_x_(a).fastq"))
	assert.Nil(t, PatientPattern(""))
}

func TestHeaderMatcherMatchesFirstLineTokens(t *testing.T) {
	dir := t.TempDir()
	counts := filepath.Join(dir, "counts.tsv")
	writeFile(t, counts, "GeneID\tS1\tS2\nS3\t1\t2\n")
	other := filepath.Join(dir, "other.tsv")
	writeFile(t, other, "GeneID   S10")

	roster := []RosterSample{
		{SampleID: 1, ExtSampleID: "S1"},
		{SampleID: 2, ExtSampleID: "S2"},
		{SampleID: 3, ExtSampleID: "S3"},
		{SampleID: 4},
	}
	res, err := NewHeaderMatcher().Match(t.Context(), paths(counts, other), roster, 9)
	require.NoError(t, err)

	require.Len(t, res.Requests, 1)
	assert.Equal(t, counts, res.Requests[0].Path)
	assert.Equal(t, []string{"sample_id=1", "sample_id=2"}, sampleIDsOf(res.Requests[0]))
	require.Len(t, res.Unmatched, 1)
	assert.Equal(t, FileStatus{Path: other, Status: StatusNotFound}, res.Unmatched[0])
}

func TestHeaderMatcherReportsUnreadableFiles(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone.tsv")
	res, err := NewHeaderMatcher().Match(t.Context(), paths(missing), []RosterSample{{SampleID: 1, ExtSampleID: "S1"}}, 1)
	require.NoError(t, err)
	require.Len(t, res.Unmatched, 1)
	assert.Equal(t, StatusUnreadable, res.Unmatched[0].Status)
	assert.Error(t, res.Unmatched[0].Err)
}

func TestMatchPropagatesScanErrors(t *testing.T) {
	boom := errors.New("walk failed")
	files := func(yield func(string, error) bool) {
		if !yield("/d/S1.fastq", nil) {
			return
		}
		yield("", boom)
	}
	_, err := NewFilenameMatcher().Match(t.Context(), files, []RosterSample{{SampleID: 1, ExtSampleID: "S1"}}, 1)
	assert.ErrorIs(t, err, boom)
}

func TestNewMatcher(t *testing.T) {
	m, err := NewMatcher(StrategyHeader)
	require.NoError(t, err)
	assert.Equal(t, StrategyHeader, m.Strategy())

	m, err = NewMatcher(StrategyFilename)
	require.NoError(t, err)
	assert.Equal(t, StrategyFilename, m.Strategy())

	_, err = NewMatcher("content")
	assert.True(t, apierr.IsCode(err, apierr.CodeConfiguration))
}

func TestHeaderMatcherRejectsOverlongFirstLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.tsv")
	writeFile(t, path, strings.Repeat("x", maxHeaderBytes-3)+" S10\tS2\n")

	roster := []RosterSample{{SampleID: 1, ExtSampleID: "S1"}, {SampleID: 10, ExtSampleID: "S10"}}
	res, err := NewHeaderMatcher().Match(t.Context(), paths(path), roster, 1)
	require.NoError(t, err)
	assert.Empty(t, res.Matched)
	require.Len(t, res.Unmatched, 1)
	assert.Equal(t, StatusUnreadable, res.Unmatched[0].Status)
	assert.Error(t, res.Unmatched[0].Err)
}

func TestHeaderMatcherAcceptsLineAtLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "full.tsv")
	writeFile(t, path, "S10 "+strings.Repeat("x", maxHeaderBytes-4)+"\nS1\n")

	roster := []RosterSample{{SampleID: 1, ExtSampleID: "S1"}, {SampleID: 10, ExtSampleID: "S10"}}
	res, err := NewHeaderMatcher().Match(t.Context(), paths(path), roster, 1)
	require.NoError(t, err)
	require.Len(t, res.Matched, 1)
	assert.Equal(t, []int64{10}, res.Matched[0].SampleIDs)
}
