// Package scanner locates spec files under a root directory.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mksls/pkg/errors"
	"mksls/pkg/logging"
)

// Scanner finds files with a given base name under a root directory.
type Scanner struct {
	// Root is the directory the scan starts from.
	Root string

	// Filename is the base name (name + extension) a file must have
	// to be collected.
	Filename string

	// Depth limits recursion: entries directly under Root are at
	// depth 1. Negative means unlimited.
	Depth int
}

// New creates a Scanner with unlimited depth.
func New(root, filename string) *Scanner {
	return &Scanner{Root: root, Filename: filename, Depth: -1}
}

// Scan walks the root recursively and returns the absolute paths of
// all matching files, sorted lexicographically so runs are
// reproducible. A missing or unreadable root is fatal and aborts the
// run before anything is processed.
func (s *Scanner) Scan() ([]string, error) {
	logger := logging.GetLogger("scanner")

	info, err := os.Stat(s.Root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrScanRoot, "cannot scan %s", s.Root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrScanRoot, "%s is not a directory", s.Root)
	}

	absRoot, err := filepath.Abs(s.Root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrScanRoot, "cannot resolve %s", s.Root)
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// The root was stat'ed above; deeper errors mean an
			// unreadable subtree, which is fatal per the contract
			return errors.Wrapf(err, errors.ErrScanWalk, "cannot read %s", path)
		}
		if d.IsDir() {
			if s.Depth >= 0 && path != absRoot && s.depthOf(absRoot, path) >= s.Depth {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != s.Filename {
			return nil
		}
		if s.Depth >= 0 && s.depthOf(absRoot, path) > s.Depth {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	logger.Debug().Str("root", absRoot).Int("count", len(files)).Msg("scan complete")
	return files, nil
}

// depthOf returns how many path components below root the path is.
func (s *Scanner) depthOf(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
