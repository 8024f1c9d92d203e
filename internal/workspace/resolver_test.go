package workspace

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/shinji-kodama/cratemover/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRepo creates a temporary directory with an initialized Git
// repository and a nested subdirectory. rev-parse works without any commit,
// so no identity configuration is needed.
//
// Returns the repository root and the subdirectory, both with symlinks
// resolved so they compare equal to what git prints.
func setupTestRepo(t *testing.T) (string, string) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	runTestGit(t, dir, "init")

	sub := filepath.Join(dir, "day05", "notes")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	return dir, sub
}

// runTestGit is a test helper that runs a git command in the specified directory
// and fails the test immediately if the command exits with a non-zero status.
func runTestGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(output))
	return string(output)
}

// TestResolve_WorkDir verifies resolution against the working directory.
func TestResolve_WorkDir(t *testing.T) {
	workDir := t.TempDir()
	r := NewResolver(workDir, false)

	tests := []struct {
		input    string
		expected string
	}{
		{"", filepath.Join(workDir, DefaultInput)},
		{"sample.txt", filepath.Join(workDir, "sample.txt")},
		{"data/../in.txt", filepath.Join(workDir, "in.txt")},
		{"/abs/./in.txt", "/abs/in.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := r.Resolve(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestResolve_RepoRoot verifies that relative paths are anchored at the
// repository root when requested, from any subdirectory.
func TestResolve_RepoRoot(t *testing.T) {
	root, sub := setupTestRepo(t)
	r := NewResolver(sub, true)

	got, err := r.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, DefaultInput), got)

	// Second call uses the cached root.
	got, err = r.Resolve(context.Background(), "inputs/day5.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "inputs", "day5.txt"), got)
}

// TestRepoRoot verifies git root lookup.
func TestRepoRoot(t *testing.T) {
	root, sub := setupTestRepo(t)

	got, err := RepoRoot(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

// TestRepoRoot_NotARepository verifies the git failure maps to ExitGitError.
func TestRepoRoot_NotARepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	// GIT_CEILING_DIRECTORIES stops git from finding a repository that
	// happens to enclose the temp directory.
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))

	r := NewResolver(dir, true)
	_, err := r.Resolve(context.Background(), "input.txt")
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitGitError, cliErr.Code)
	assert.Contains(t, cliErr.Message, "git rev-parse --show-toplevel failed")
}
