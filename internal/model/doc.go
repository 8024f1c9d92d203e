// Package model defines the value objects shared by the cratemover CLI
// layers.
//
// This package contains pure data structures with no external dependencies:
// the output format selector, the result records printed by each command
// (as text, JSON or YAML), and the exit codes (ExitCode) together with a
// custom error type (CLIError) that carries them to the process exit.
package model
