// Package sources discovers and opens input log files.
package sources

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/hydraflow/hydraflow/pkg/util"
)

// LogFile is one discovered input log.
type LogFile struct {
	path string
	info os.FileInfo
}

// NewLogFile stats path and wraps it as a source.
func NewLogFile(path string) (*LogFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &LogFile{path: path, info: info}, nil
}

// Path returns the file path as given at discovery.
func (f *LogFile) Path() string { return f.path }

// Name returns the basename used to tag cycles from this file.
func (f *LogFile) Name() string { return filepath.Base(f.path) }

// Size returns the file size in bytes.
func (f *LogFile) Size() int64 { return f.info.Size() }

// Open returns a reader for the log, decompressing gzip transparently.
// The caller must invoke the cleanup function when done.
func (f *LogFile) Open() (io.Reader, func() error, error) {
	return util.OpenLog(f.path)
}

// DiscoverLogs enumerates the dispensing logs directly under dir: files
// matching *.TXT or *.txt, deduplicated and sorted for deterministic
// ordering. On case-insensitive filesystems the two globs return the
// same entries, which the dedupe absorbs. Unreadable entries are
// skipped. An empty result is not an error; the caller decides whether
// no input is worth reporting.
func DiscoverLogs(dir string) ([]*LogFile, error) {
	var paths []string
	seen := make(map[string]bool)

	for _, pattern := range []string{"*.TXT", "*.txt"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}

	sort.Strings(paths)

	files := make([]*LogFile, 0, len(paths))
	for _, path := range paths {
		f, err := NewLogFile(path)
		if err != nil {
			continue
		}
		files = append(files, f)
	}

	return files, nil
}
