// Package workspace resolves input file paths for cratemover commands.
//
// Relative paths are resolved against the working directory by default, or
// against the root of the enclosing Git repository when requested, so that
// a puzzle input checked in at the repository root can be found from any
// subdirectory.
//
// The repository root is obtained by shelling out to the git CLI
// ("git rev-parse --show-toplevel"). Git failures are returned as
// model.CLIError with ExitGitError to enable proper CLI exit code handling.
package workspace
