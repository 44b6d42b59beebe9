package solv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const brokenSolution = "Microsoft Visual Studio Solution File, Format Version 12.00\n\"never closed"

// scanTree lays out a root with solutions at several depths, one of them
// unparseable, plus a file the default pattern must skip.
func scanTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "top.sln"), twoProjectSolution)
	writeFile(t, filepath.Join(root, "sub", "nested.sln"), twoProjectSolution)
	writeFile(t, filepath.Join(root, "sub", "deep", "broken.sln"), brokenSolution)
	writeFile(t, filepath.Join(root, "sub", "notes.txt"), "not a solution")
	return root
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestScanDirectory(t *testing.T) {
	root := scanTree(t)

	for _, workers := range []int{1, 4} {
		report, err := ScanDirectory(context.Background(), root, workers)
		require.NoError(t, err)

		assert.Equal(t, 3, report.Files, "workers=%d", workers)
		assert.Equal(t, 2, report.Parsed)
		assert.Equal(t, 1, report.Failed)
		assert.Equal(t, 4, report.Projects)
		assert.Zero(t, report.ErrorFindings)
		assert.Zero(t, report.InfoFindings)

		require.Len(t, report.Results, 3)
		byPath := map[string]FileResult{}
		for _, r := range report.Results {
			byPath[r.Path] = r
		}
		broken := byPath[filepath.Join(root, "sub", "deep", "broken.sln")]
		assert.Error(t, broken.Err)
		assert.Nil(t, broken.Solution)
		parsed := byPath[filepath.Join(root, "top.sln")]
		require.NotNil(t, parsed.Solution)
		assert.Equal(t, parsed.Path, parsed.Solution.Path)
	}
}

func TestScanPatternFiltersDiscovery(t *testing.T) {
	root := scanTree(t)

	s := &Scanner{Pattern: "sub/**/*.sln"}
	report, err := s.Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Files)
	for _, r := range report.Results {
		assert.NotEqual(t, filepath.Join(root, "top.sln"), r.Path)
	}
}

func TestScanInvalidPattern(t *testing.T) {
	s := &Scanner{Pattern: "[unclosed"}
	report, err := s.Scan(context.Background(), t.TempDir())
	assert.Nil(t, report)
	assert.ErrorContains(t, err, "invalid file pattern")
}

func TestScanMissingRoot(t *testing.T) {
	report, err := ScanDirectory(context.Background(), filepath.Join(t.TempDir(), "absent"), 0)
	assert.Nil(t, report)
	assert.Error(t, err)
}

// A cancelled context stops dispatch; what was not dispatched is not in the
// report.
func TestScanCancelledContext(t *testing.T) {
	root := scanTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := ScanDirectory(ctx, root, 1)
	require.NotNil(t, report)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, report.Files)
	assert.Empty(t, report.Results)
}
