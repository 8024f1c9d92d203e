package workspace

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/shinji-kodama/cratemover/internal/model"
)

// DefaultInput is the input file used when a command gets no path.
const DefaultInput = "input.txt"

// Resolver turns command-line input paths into absolute file paths.
type Resolver struct {
	workDir      string
	fromRepoRoot bool

	// root caches the repository root once it has been looked up.
	root string
}

// NewResolver creates a Resolver. workDir is the base for relative paths
// (the process working directory in the CLI). When fromRepoRoot is set,
// relative paths are resolved against the Git repository containing workDir
// instead.
func NewResolver(workDir string, fromRepoRoot bool) *Resolver {
	return &Resolver{workDir: workDir, fromRepoRoot: fromRepoRoot}
}

// Resolve returns the absolute, cleaned path for input. An empty input
// means DefaultInput. Absolute paths are returned unchanged apart from
// cleaning.
func (r *Resolver) Resolve(ctx context.Context, input string) (string, error) {
	if input == "" {
		input = DefaultInput
	}
	if filepath.IsAbs(input) {
		return filepath.Clean(input), nil
	}

	base := r.workDir
	if r.fromRepoRoot {
		root, err := r.repoRoot(ctx)
		if err != nil {
			return "", err
		}
		base = root
	}

	abs, err := filepath.Abs(filepath.Join(base, input))
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", input, err)
	}
	return abs, nil
}

func (r *Resolver) repoRoot(ctx context.Context) (string, error) {
	if r.root != "" {
		return r.root, nil
	}
	root, err := RepoRoot(ctx, r.workDir)
	if err != nil {
		return "", err
	}
	r.root = root
	return root, nil
}

// RepoRoot returns the top-level directory of the Git repository that
// contains path.
func RepoRoot(ctx context.Context, path string) (string, error) {
	output, err := runGit(ctx, path, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return filepath.Clean(strings.TrimSpace(output)), nil
}

// runGit executes a git command with -C <dir> and returns stdout. On
// failure, it returns a model.CLIError with ExitGitError that includes
// git's stderr output.
func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", dir}, args...)

	// #nosec G204 -- args are constructed internally, not from user input
	cmd := exec.CommandContext(ctx, "git", fullArgs...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		message := fmt.Sprintf("git %s failed", strings.Join(args, " "))
		if stderrStr != "" {
			message = fmt.Sprintf("%s: %s", message, stderrStr)
		}
		return "", model.WrapCLIError(model.ExitGitError, message, err)
	}

	return stdout.String(), nil
}
