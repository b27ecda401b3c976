package tracker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
)

// maxHeaderBytes bounds how much of a file is read looking for the first line.
const maxHeaderBytes = 1 << 20

// HeaderMatcher matches samples whose external id is a whitespace-separated
// token of the file's first line.
type HeaderMatcher struct {
	readHeader func(path string) (string, error)
}

func NewHeaderMatcher() *HeaderMatcher {
	return &HeaderMatcher{readHeader: readFirstLine}
}

func (m *HeaderMatcher) Strategy() Strategy { return StrategyHeader }

func (m *HeaderMatcher) Match(ctx context.Context, files iter.Seq2[string, error], roster []RosterSample, datasetID int64) (MatchResult, error) {
	return collectMatches(ctx, files, datasetID, func(path string) (Status, []int64, error) {
		line, err := m.readHeader(path)
		if err != nil {
			return "", nil, err
		}
		tokens := headerTokens(line)
		var found sampleSet
		for _, r := range roster {
			if r.ExtSampleID == "" {
				continue
			}
			if _, ok := tokens[r.ExtSampleID]; ok {
				found.add(r.SampleID)
			}
		}
		return StatusSampleFound, found.ids, nil
	})
}

func headerTokens(line string) map[string]struct{} {
	fields := strings.Fields(line)
	out := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		out[f] = struct{}{}
	}
	return out
}

func readFirstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	r := bufio.NewReader(io.LimitReader(f, maxHeaderBytes+1))
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if !strings.HasSuffix(line, "\n") && len(line) > maxHeaderBytes {
		return "", fmt.Errorf("first line of %s exceeds %d bytes", path, maxHeaderBytes)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
