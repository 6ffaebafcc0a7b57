package tests

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// recorder is a testing.TB recording fatal failures instead of stopping the
// test.
type recorder struct {
	testing.TB
	fatal string
}

func (r *recorder) Helper()                      {}
func (r *recorder) Logf(string, ...any)          {}
func (r *recorder) Fatal(args ...any)            { r.fatal = fmt.Sprint(args...) }
func (r *recorder) Fatalf(f string, args ...any) { r.fatal = fmt.Sprintf(f, args...) }

func TestCompareWithGolden(t *testing.T) {
	if *updateGolden {
		t.Skip("golden files are being updated")
	}
	dir := t.TempDir()

	t.Run("missing", func(t *testing.T) {
		path := filepath.Join(dir, "missing.golden")
		rec := &recorder{TB: t}
		CompareWithGolden(rec, []byte{1, 2, 3}, path)
		if !strings.Contains(rec.fatal, "missing golden file") {
			t.Errorf("fatal = %q, want a missing golden file failure", rec.fatal)
		}
		if _, err := os.Stat(path); err == nil {
			t.Errorf("golden file %s created without -update", path)
		}
	})

	t.Run("equal", func(t *testing.T) {
		path := filepath.Join(dir, "equal.golden")
		if err := os.WriteFile(path, []byte{1, 2, 3}, 0644); err != nil {
			t.Fatal(err)
		}
		rec := &recorder{TB: t}
		CompareWithGolden(rec, []byte{1, 2, 3}, path)
		if rec.fatal != "" {
			t.Errorf("unexpected failure: %s", rec.fatal)
		}
	})

	t.Run("differ", func(t *testing.T) {
		path := filepath.Join(dir, "differ.golden")
		if err := os.WriteFile(path, []byte{1, 2, 3}, 0644); err != nil {
			t.Fatal(err)
		}
		rec := &recorder{TB: t}
		CompareWithGolden(rec, []byte{1, 2, 4}, path)
		if !strings.Contains(rec.fatal, "differs from golden file") {
			t.Errorf("fatal = %q, want a mismatch failure", rec.fatal)
		}
		if _, err := os.Stat(path + ".failed"); err != nil {
			t.Errorf("mismatching output not saved: %v", err)
		}
	})
}
