package tests

import (
	"bytes"
	"errors"
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

var updateGolden = flag.Bool("update", false, "update golden files")

// CompareWithGolden compares got with the content of the golden file at path.
// The golden file is (re)written when the test binary runs with -update. A
// missing golden file is a failure otherwise.
func CompareWithGolden(tb testing.TB, got []byte, path string) {
	tb.Helper()

	if *updateGolden {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			tb.Fatal(err)
		}
		if err := os.WriteFile(path, got, 0644); err != nil {
			tb.Fatal(err)
		}
		tb.Logf("golden file written: %s", path)
		return
	}

	want, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		tb.Fatalf("missing golden file %s, run with -update to create it", path)
		return
	}
	if err != nil {
		tb.Fatal(err)
		return
	}

	if !bytes.Equal(got, want) {
		failed := path + ".failed"
		if err := os.WriteFile(failed, got, 0644); err != nil {
			tb.Logf("failed to write %s: %v", failed, err)
		}
		tb.Fatalf("output differs from golden file %s (%d bytes, want %d), got output saved to %s",
			path, len(got), len(want), failed)
	}
}
