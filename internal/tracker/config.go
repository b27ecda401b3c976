package tracker

import (
	"strings"

	"github.com/yungbote/redmane-backend/internal/domain"
	"github.com/yungbote/redmane-backend/internal/platform/apierr"
)

// Strategy selects how files are associated with samples.
type Strategy string

const (
	StrategyHeader   Strategy = "header"
	StrategyFilename Strategy = "filename"
)

func ParseStrategy(tag string) (Strategy, bool) {
	switch Strategy(strings.TrimSpace(tag)) {
	case StrategyHeader:
		return StrategyHeader, true
	case StrategyFilename:
		return StrategyFilename, true
	}
	return "", false
}

// DatasetConfig is what the tracker needs to know about a dataset before scanning.
type DatasetConfig struct {
	DatasetID int64
	Strategy  Strategy
	Suffix    string
}

// ResolveConfig reads the strategy and extension from a dataset's metadata.
func ResolveConfig(ds domain.DatasetView) (DatasetConfig, error) {
	const op = "tracker.ResolveConfig"
	attrs := ds.Attributes()

	tag, ok := attrs.Lookup(domain.MetaSampleInfoStored)
	if !ok {
		return DatasetConfig{}, apierr.Configuration(op, "dataset %d has no %s metadata", ds.ID, domain.MetaSampleInfoStored)
	}
	strategy, ok := ParseStrategy(tag)
	if !ok {
		return DatasetConfig{}, apierr.Configuration(op, "dataset %d: unknown %s %q", ds.ID, domain.MetaSampleInfoStored, tag)
	}

	ext, ok := attrs.Lookup(domain.MetaRawFileExtensions)
	if !ok {
		return DatasetConfig{}, apierr.Configuration(op, "dataset %d has no %s metadata", ds.ID, domain.MetaRawFileExtensions)
	}
	suffix := strings.TrimLeft(strings.TrimSpace(ext), "*")
	if suffix == "" {
		return DatasetConfig{}, apierr.Configuration(op, "dataset %d: %s %q yields an empty suffix", ds.ID, domain.MetaRawFileExtensions, ext)
	}

	return DatasetConfig{DatasetID: ds.ID, Strategy: strategy, Suffix: suffix}, nil
}
