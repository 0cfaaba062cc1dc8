package main

import (
	"path/filepath"
	"testing"

	hferrors "github.com/hydraflow/hydraflow/pkg/errors"
)

func TestRunInfo_MissingFile(t *testing.T) {
	err := runInfo(nil, []string{filepath.Join(t.TempDir(), "absent.TXT")})
	if err == nil {
		t.Fatal("runInfo succeeded on a missing file")
	}
	if !hferrors.IsCode(err, hferrors.CodeFileNotFound) {
		t.Errorf("code = %v, want %v", hferrors.GetCode(err), hferrors.CodeFileNotFound)
	}
}
