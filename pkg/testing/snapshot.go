package testing

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// UpdateEnv is the environment variable that rewrites golden files.
const UpdateEnv = "SHARD_UPDATE_SNAPSHOTS"

// Snapshot is a text rendering of the materialized view tree: one line per
// view with its kind, frame and kind-specific state.
type Snapshot struct {
	Tree string
}

// CaptureSnapshot renders the current view tree.
func (t *Tester) CaptureSnapshot() *Snapshot {
	v := t.View()
	if v == nil {
		return &Snapshot{}
	}
	return &Snapshot{Tree: v.Tree().String()}
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When SHARD_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(&Snapshot{Tree: string(data)}); diff != "" {
		t.Errorf("snapshot mismatch: %s (-want +got):\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateEnv, t.Name())
	}
}

// UpdateFile writes the tree dump to path, creating parent directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(s.Tree), 0o644)
}

// Diff returns a line diff from other to s. Returns empty string if equal.
// Trailing whitespace differences are ignored.
func (s *Snapshot) Diff(other *Snapshot) string {
	return cmp.Diff(lines(other.Tree), lines(s.Tree))
}

func lines(tree string) []string {
	tree = strings.TrimRight(tree, "\n")
	if tree == "" {
		return nil
	}
	out := strings.Split(tree, "\n")
	for i, l := range out {
		out[i] = strings.TrimRight(l, " \t")
	}
	return out
}
