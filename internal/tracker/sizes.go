package tracker

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/disk"
	"golang.org/x/sync/errgroup"
)

const subdirWorkers = 4

type SubdirSize struct {
	Path  string
	Files int
	Bytes uint64
}

// SizeReport summarizes how much matched data a run found and where it lives.
type SizeReport struct {
	MatchedFiles int
	MatchedBytes uint64
	Subdirs      []SubdirSize
	Usage        *disk.UsageStat
}

func (r SizeReport) Human() string { return humanBytes(r.MatchedBytes) }

func humanBytes(n uint64) string { return humanize.Bytes(n) }

// MatchedSize sums the sizes of the given files.
func MatchedSize(paths []string) (uint64, error) {
	var total uint64
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return 0, err
		}
		total += uint64(info.Size())
	}
	return total, nil
}

// SubdirSizes totals suffix-matching files under each immediate subdirectory of root.
func SubdirSizes(ctx context.Context, root, suffix string) ([]SubdirSize, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}

	out := make([]SubdirSize, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(subdirWorkers)
	for i, dir := range dirs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			files, err := Collect(Scan(dir, suffix))
			if err != nil {
				return err
			}
			size, err := MatchedSize(files)
			if err != nil {
				return err
			}
			out[i] = SubdirSize{Path: dir, Files: len(files), Bytes: size}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Path < out[b].Path })
	return out, nil
}

// BuildSizeReport gathers the matched total, the subdirectory breakdown and
// filesystem usage for root. Usage is left nil when the platform cannot report it.
func BuildSizeReport(ctx context.Context, root, suffix string, matched []string) (SizeReport, error) {
	total, err := MatchedSize(matched)
	if err != nil {
		return SizeReport{}, err
	}
	subdirs, err := SubdirSizes(ctx, root, suffix)
	if err != nil {
		return SizeReport{}, err
	}
	rep := SizeReport{MatchedFiles: len(matched), MatchedBytes: total, Subdirs: subdirs}
	if usage, err := disk.UsageWithContext(ctx, root); err == nil {
		rep.Usage = usage
	}
	return rep, nil
}
