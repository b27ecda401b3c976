package tracker

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"
)

// Scan yields every regular file under root whose name ends with suffix.
// Each range over the returned sequence walks the tree again. Symlinks are
// reported as non-regular entries and never followed.
func Scan(root, suffix string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stopped := false
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if !strings.HasSuffix(d.Name(), suffix) {
				return nil
			}
			if !yield(path, nil) {
				stopped = true
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil && !stopped {
			yield("", err)
		}
	}
}

// Collect drains a scan into a slice, stopping at the first walk error.
func Collect(seq iter.Seq2[string, error]) ([]string, error) {
	var out []string
	for path, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, path)
	}
	return out, nil
}
