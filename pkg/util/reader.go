// Package util provides file helpers for log ingestion.
package util

import (
	"compress/gzip"
	"io"
	"os"
	"strings"
)

// OpenLog opens a log file, automatically decompressing if it's
// gzip-compressed. Returns the reader, a cleanup function (to close
// resources), and any error. The caller must call the cleanup function
// when done reading.
func OpenLog(path string) (io.Reader, func() error, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	if IsGzipFile(path) {
		gzReader, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, nil, err
		}
		cleanup := func() error {
			gzReader.Close()
			return file.Close()
		}
		return gzReader, cleanup, nil
	}

	cleanup := func() error {
		return file.Close()
	}
	return file, cleanup, nil
}

// IsGzipFile returns true if the file path indicates gzip compression.
func IsGzipFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}
