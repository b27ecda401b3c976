// Package tracker discovers raw files on disk, associates them with the
// samples of a project and registers them with the redmane server.
package tracker

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yungbote/redmane-backend/internal/domain"
	"github.com/yungbote/redmane-backend/internal/platform/apierr"
	"github.com/yungbote/redmane-backend/internal/platform/logger"
)

type Options struct {
	Directory string
	DatasetID int64
	ProjectID int64
}

// Report is what one run did.
type Report struct {
	Config    DatasetConfig
	Match     MatchResult
	Sizes     SizeReport
	Submitted domain.SubmitResult
}

type Tracker struct {
	log    *logger.Logger
	client Client
	now    func() time.Time
}

func New(log *logger.Logger, client Client) *Tracker {
	if log == nil {
		log = logger.Nop()
	}
	return &Tracker{log: log.With("component", "Tracker"), client: client, now: time.Now}
}

func (o Options) validate() error {
	const op = "tracker.Run"
	if strings.TrimSpace(o.Directory) == "" {
		return apierr.Validation(op, "directory is required")
	}
	if o.DatasetID <= 0 {
		return apierr.Validation(op, "dataset_id must be positive")
	}
	if o.ProjectID <= 0 {
		return apierr.Validation(op, "project_id must be positive")
	}
	return nil
}

// Run resolves the dataset config, scans and matches, then submits the size
// update followed by the raw file batch. Any failure aborts the run.
func (t *Tracker) Run(ctx context.Context, opts Options) (Report, error) {
	var rep Report
	if err := opts.validate(); err != nil {
		return rep, err
	}
	log := t.log.With("dataset_id", opts.DatasetID, "project_id", opts.ProjectID)

	ds, err := t.client.GetDataset(ctx, opts.ProjectID, opts.DatasetID)
	if err != nil {
		return rep, err
	}
	cfg, err := ResolveConfig(ds)
	if err != nil {
		return rep, err
	}
	rep.Config = cfg
	log.Info("dataset resolved", "strategy", cfg.Strategy, "suffix", cfg.Suffix)

	samples, err := t.client.GetSamples(ctx, opts.ProjectID)
	if err != nil {
		return rep, err
	}
	roster := RosterFromSamples(samples)

	matcher, err := NewMatcher(cfg.Strategy)
	if err != nil {
		return rep, err
	}
	res, err := matcher.Match(ctx, Scan(opts.Directory, cfg.Suffix), roster, opts.DatasetID)
	if err != nil {
		return rep, wrapIO("tracker.Scan", err)
	}
	rep.Match = res
	for _, f := range res.Matched {
		log.Info("file matched", "path", f.Path, "status", f.Status, "samples", f.SampleIDs)
	}
	for _, f := range res.Unmatched {
		if f.Err != nil {
			log.Warn("file unreadable", "path", f.Path, "status", f.Status, "error", f.Err)
			continue
		}
		log.Info("file unmatched", "path", f.Path, "status", f.Status)
	}

	matched := make([]string, 0, len(res.Matched))
	for _, f := range res.Matched {
		matched = append(matched, f.Path)
	}
	sizes, err := BuildSizeReport(ctx, opts.Directory, cfg.Suffix, matched)
	if err != nil {
		return rep, wrapIO("tracker.Sizes", err)
	}
	rep.Sizes = sizes
	log.Info("matched size", "files", sizes.MatchedFiles, "size", sizes.Human())
	for _, d := range sizes.Subdirs {
		log.Info("subdirectory size", "path", d.Path, "files", d.Files, "size", humanBytes(d.Bytes))
	}
	if sizes.Usage != nil {
		log.Info("filesystem usage",
			"path", sizes.Usage.Path,
			"used", humanBytes(sizes.Usage.Used),
			"free", humanBytes(sizes.Usage.Free),
			"used_percent", sizes.Usage.UsedPercent,
		)
	}

	if err := t.client.UpdateDatasetSize(ctx, domain.SizeUpdate{
		DatasetID:      opts.DatasetID,
		RawFileSize:    sizes.Human(),
		LastSizeUpdate: t.now().Format("2006-01-02"),
	}); err != nil {
		return rep, err
	}

	submitted, err := t.client.AddRawFiles(ctx, res.Requests)
	if err != nil {
		return rep, err
	}
	rep.Submitted = submitted
	log.Info("raw files submitted", "created", submitted.Created, "skipped", submitted.Skipped,
		"unmatched", len(res.Unmatched))
	return rep, nil
}

// wrapIO tags filesystem failures; cancellation passes through unchanged.
func wrapIO(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return apierr.Wrap(apierr.CodeIO, op, err)
}
