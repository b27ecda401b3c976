package aggregates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/redmane-backend/internal/data/repos"
	"github.com/yungbote/redmane-backend/internal/domain"
	"github.com/yungbote/redmane-backend/internal/platform/dbctx"
)

// RawFileAggregate registers discovered raw files and dataset size facts.
type RawFileAggregate interface {
	// AddRawFiles inserts every request and its metadata in one transaction.
	// Files already registered under the same (dataset_id, path) are skipped
	// together with their metadata. Any failure discards the whole batch.
	AddRawFiles(ctx context.Context, reqs []domain.RawFileRequest) (domain.SubmitResult, error)
	// UpdateDatasetSize upserts the raw_file_size and last_size_update keys.
	UpdateDatasetSize(ctx context.Context, upd domain.SizeUpdate) error
}

type RawFileAggregateDeps struct {
	BaseDeps
	Files       repos.RawFileRepo
	FileMeta    repos.RawFileMetadataStore
	DatasetMeta repos.DatasetMetadataStore
}

type rawFileAggregate struct {
	deps RawFileAggregateDeps
}

func NewRawFileAggregate(deps RawFileAggregateDeps) RawFileAggregate {
	deps.BaseDeps = deps.BaseDeps.withDefaults()
	deps.Log = deps.Log.With("aggregate", "RawFileAggregate")
	return &rawFileAggregate{deps: deps}
}

const (
	opAddRawFiles        = "raw_files.add"
	opUpdateDatasetSize  = "datasets.size_update"
	sizeUpdateDateLayout = "2006-01-02"
)

func (a *rawFileAggregate) AddRawFiles(ctx context.Context, reqs []domain.RawFileRequest) (domain.SubmitResult, error) {
	var result domain.SubmitResult
	if err := validateRawFileRequests(reqs); err != nil {
		return result, MapError(opAddRawFiles, err)
	}
	if len(reqs) == 0 {
		return result, nil
	}

	err := executeWrite(ctx, a.deps.BaseDeps, opAddRawFiles, func(dbc dbctx.Context) error {
		result = domain.SubmitResult{}
		seen := map[int64]bool{}
		for _, req := range reqs {
			if !seen[req.DatasetID] {
				ok, err := a.deps.Guard.Exists(dbc, "datasets", req.DatasetID)
				if err != nil {
					return err
				}
				if err := RequireExists(ok, opAddRawFiles, "dataset", req.DatasetID); err != nil {
					return err
				}
				seen[req.DatasetID] = true
			}

			file := &domain.RawFile{DatasetID: req.DatasetID, Path: req.Path}
			created, err := a.deps.Files.CreateIgnoreDuplicate(dbc, file)
			if err != nil {
				return err
			}
			if !created {
				result.Skipped++
				continue
			}
			if len(req.Metadata) > 0 {
				pairs := make([]domain.KV, 0, len(req.Metadata))
				for _, m := range req.Metadata {
					pairs = append(pairs, domain.KV{Key: m.MetadataKey, Value: m.MetadataValue})
				}
				if _, err := a.deps.FileMeta.Add(dbc, file.ID, pairs); err != nil {
					return err
				}
			}
			result.Created++
		}
		return nil
	})
	if err != nil {
		a.deps.Log.Warn("raw file batch rolled back", "files", len(reqs), "error", err)
		return domain.SubmitResult{}, err
	}
	a.deps.Hooks.AddRawFiles(result.Created, result.Skipped)
	a.deps.Log.Info("raw file batch committed", "created", result.Created, "skipped", result.Skipped)
	return result, nil
}

func validateRawFileRequests(reqs []domain.RawFileRequest) error {
	for i, req := range reqs {
		if req.DatasetID <= 0 {
			return ValidationError(fmt.Sprintf("file %d: dataset_id must be positive", i))
		}
		if strings.TrimSpace(req.Path) == "" {
			return ValidationError(fmt.Sprintf("file %d: path is required", i))
		}
		for _, m := range req.Metadata {
			if strings.TrimSpace(m.MetadataKey) == "" {
				return ValidationError(fmt.Sprintf("file %d: metadata_key is required", i))
			}
		}
	}
	return nil
}

func (a *rawFileAggregate) UpdateDatasetSize(ctx context.Context, upd domain.SizeUpdate) error {
	if upd.DatasetID <= 0 {
		return MapError(opUpdateDatasetSize, ValidationError("dataset_id must be positive"))
	}
	if strings.TrimSpace(upd.RawFileSize) == "" {
		return MapError(opUpdateDatasetSize, ValidationError("raw_file_size is required"))
	}
	if !validSizeDate(upd.LastSizeUpdate) {
		return MapError(opUpdateDatasetSize, ValidationError("last_size_update must be an ISO date"))
	}
	return executeWrite(ctx, a.deps.BaseDeps, opUpdateDatasetSize, func(dbc dbctx.Context) error {
		ok, err := a.deps.Guard.Exists(dbc, "datasets", upd.DatasetID)
		if err != nil {
			return err
		}
		if err := RequireExists(ok, opUpdateDatasetSize, "dataset", upd.DatasetID); err != nil {
			return err
		}
		if err := a.deps.DatasetMeta.Upsert(dbc, upd.DatasetID, domain.MetaRawFileSize, upd.RawFileSize); err != nil {
			return err
		}
		return a.deps.DatasetMeta.Upsert(dbc, upd.DatasetID, domain.MetaLastSizeUpdate, upd.LastSizeUpdate)
	})
}

// validSizeDate accepts a calendar date or a full RFC 3339 timestamp.
func validSizeDate(s string) bool {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(sizeUpdateDateLayout, s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}
