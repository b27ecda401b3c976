package tracker

import (
	"context"
	"iter"
	"regexp"
	"strings"
)

// FilenameMatcher matches on the file path. A literal ext_sample_id substring
// matches and checking continues with the next sample; otherwise a patient
// pattern match is taken and the remaining samples are skipped.
type FilenameMatcher struct{}

func NewFilenameMatcher() *FilenameMatcher { return &FilenameMatcher{} }

func (m *FilenameMatcher) Strategy() Strategy { return StrategyFilename }

func (m *FilenameMatcher) Match(ctx context.Context, files iter.Seq2[string, error], roster []RosterSample, datasetID int64) (MatchResult, error) {
	patterns := make([]*regexp.Regexp, len(roster))
	for i, r := range roster {
		patterns[i] = PatientPattern(r.ExtPatientID)
	}
	return collectMatches(ctx, files, datasetID, func(path string) (Status, []int64, error) {
		var found sampleSet
		bySample := false
		for i, r := range roster {
			if r.ExtSampleID != "" && strings.Contains(path, r.ExtSampleID) {
				found.add(r.SampleID)
				bySample = true
				continue
			}
			if patterns[i] != nil && patterns[i].MatchString(path) {
				found.add(r.SampleID)
				break
			}
		}
		if bySample {
			return StatusSampleFound, found.ids, nil
		}
		return StatusPatientFound, found.ids, nil
	})
}

// PatientPattern compiles a patient id into a path pattern: the id is matched
// literally except that each space stands for any run of characters. It
// returns nil for an empty id.
func PatientPattern(extPatientID string) *regexp.Regexp {
	if extPatientID == "" {
		return nil
	}
	expr := strings.ReplaceAll(regexp.QuoteMeta(extPatientID), " ", ".*")
	return regexp.MustCompile(expr)
}
