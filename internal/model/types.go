package model

import (
	"fmt"
	"strings"
)

// OutputFormat selects how command results are printed.
type OutputFormat string

const (
	// FormatText is human-readable output, the default.
	FormatText OutputFormat = "text"

	// FormatJSON is indented JSON, one document per command run.
	FormatJSON OutputFormat = "json"

	// FormatYAML is a YAML document, one per command run.
	FormatYAML OutputFormat = "yaml"
)

// String returns the string representation of OutputFormat.
func (f OutputFormat) String() string {
	return string(f)
}

// IsValid checks whether the OutputFormat value is one of the
// predefined formats.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// IsStructured reports whether the format is machine-readable.
func (f OutputFormat) IsStructured() bool {
	return f == FormatJSON || f == FormatYAML
}

// ParseOutputFormat converts a string to an OutputFormat.
// Returns an error if the string does not match any valid format.
func ParseOutputFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if !format.IsValid() {
		return "", fmt.Errorf("invalid output format: %q (valid: text, json, yaml)", s)
	}
	return format, nil
}

// SolveResult is the answer for one input file.
type SolveResult struct {
	// File is the resolved input path.
	File string `json:"file" yaml:"file"`

	// Puzzle is the registered name of the solver that produced Answer.
	Puzzle string `json:"puzzle" yaml:"puzzle"`

	// Label describes Answer in text output, e.g. "Crate on top of each stack".
	Label string `json:"label" yaml:"label"`

	// Answer is the solver result, e.g. "CMZ".
	Answer string `json:"answer" yaml:"answer"`
}

// StepRecord is one applied move as reported by the steps command.
type StepRecord struct {
	// Line is the 1-based input line of the command.
	Line int `json:"line" yaml:"line"`

	// Command is the command in input notation.
	Command string `json:"command" yaml:"command"`

	// Requested is the number of crates the command asked for.
	Requested int `json:"requested" yaml:"requested"`

	// Moved is the number of crates actually transferred. It is lower than
	// Requested when the source stack ran out.
	Moved int `json:"moved" yaml:"moved"`

	// Tops is the top of every stack after the move.
	Tops string `json:"tops" yaml:"tops"`
}

// StepsResult is the full trace of a run.
type StepsResult struct {
	File    string       `json:"file" yaml:"file"`
	Initial string       `json:"initial" yaml:"initial"`
	Steps   []StepRecord `json:"steps" yaml:"steps"`
	Final   string       `json:"final" yaml:"final"`
}

// ShowResult is a rendered hold.
type ShowResult struct {
	File    string `json:"file" yaml:"file"`
	Initial bool   `json:"initial" yaml:"initial"`
	Diagram string `json:"diagram" yaml:"diagram"`
	Stacks  int    `json:"stacks" yaml:"stacks"`
	Crates  int    `json:"crates" yaml:"crates"`
}

// CheckResult summarizes a validated input file.
type CheckResult struct {
	File     string `json:"file" yaml:"file"`
	Valid    bool   `json:"valid" yaml:"valid"`
	Stacks   int    `json:"stacks" yaml:"stacks"`
	Crates   int    `json:"crates" yaml:"crates"`
	Commands int    `json:"commands" yaml:"commands"`
}

// ExitCode defines the CLI exit codes. These codes allow scripts and CI
// systems to programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitInputError indicates the input file could not be found or read.
	ExitInputError ExitCode = 2

	// ExitMalformedDiagram indicates an unreadable crate diagram.
	ExitMalformedDiagram ExitCode = 3

	// ExitMalformedCommand indicates a move command that could not be parsed.
	ExitMalformedCommand ExitCode = 4

	// ExitInvalidMove indicates a move naming a stack that does not exist,
	// or, in strict mode, asking for more crates than the source holds.
	ExitInvalidMove ExitCode = 5

	// ExitInvalidConfig indicates a configuration file or flag value that
	// failed validation.
	ExitInvalidConfig ExitCode = 6

	// ExitGitError indicates the repository root could not be determined.
	ExitGitError ExitCode = 7
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
