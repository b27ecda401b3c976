package tracker

import (
	"context"
	"iter"
	"strconv"

	"github.com/yungbote/redmane-backend/internal/domain"
	"github.com/yungbote/redmane-backend/internal/platform/apierr"
)

// Status is the per-file outcome reported after matching.
type Status string

const (
	StatusSampleFound  Status = "sample_found"
	StatusPatientFound Status = "patient_found"
	StatusNotFound     Status = "not_found"
	StatusUnreadable   Status = "unreadable"
)

type FileStatus struct {
	Path      string
	Status    Status
	SampleIDs []int64
	Err       error
}

type MatchResult struct {
	Requests  []domain.RawFileRequest
	Matched   []FileStatus
	Unmatched []FileStatus
}

// Matcher associates scanned files with roster samples.
type Matcher interface {
	Strategy() Strategy
	Match(ctx context.Context, files iter.Seq2[string, error], roster []RosterSample, datasetID int64) (MatchResult, error)
}

func NewMatcher(strategy Strategy) (Matcher, error) {
	switch strategy {
	case StrategyHeader:
		return NewHeaderMatcher(), nil
	case StrategyFilename:
		return NewFilenameMatcher(), nil
	}
	return nil, apierr.Configuration("tracker.NewMatcher", "unknown strategy %q", strategy)
}

// fileMatchFunc decides one file. A non-nil error marks the file unreadable.
type fileMatchFunc func(path string) (Status, []int64, error)

func collectMatches(ctx context.Context, files iter.Seq2[string, error], datasetID int64, decide fileMatchFunc) (MatchResult, error) {
	var res MatchResult
	for path, err := range files {
		if err != nil {
			return res, err
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		status, ids, ferr := decide(path)
		if ferr != nil {
			res.Unmatched = append(res.Unmatched, FileStatus{Path: path, Status: StatusUnreadable, Err: ferr})
			continue
		}
		if len(ids) == 0 {
			res.Unmatched = append(res.Unmatched, FileStatus{Path: path, Status: StatusNotFound})
			continue
		}
		res.Matched = append(res.Matched, FileStatus{Path: path, Status: status, SampleIDs: ids})
		res.Requests = append(res.Requests, newRawFileRequest(datasetID, path, ids))
	}
	return res, nil
}

func newRawFileRequest(datasetID int64, path string, sampleIDs []int64) domain.RawFileRequest {
	pairs := make([]domain.MetadataPair, 0, len(sampleIDs))
	for _, id := range sampleIDs {
		pairs = append(pairs, domain.MetadataPair{
			MetadataKey:   domain.MetaSampleID,
			MetadataValue: strconv.FormatInt(id, 10),
		})
	}
	return domain.RawFileRequest{DatasetID: datasetID, Path: path, Metadata: pairs}
}

// sampleSet keeps matched sample ids distinct and in first-seen order.
type sampleSet struct {
	seen map[int64]struct{}
	ids  []int64
}

func (s *sampleSet) add(id int64) {
	if s.seen == nil {
		s.seen = make(map[int64]struct{})
	}
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)
}
