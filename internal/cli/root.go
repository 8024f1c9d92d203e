// Package cli implements the cobra-based CLI commands for cratemover.
//
// Each subcommand (solve, steps, show, check, config) is defined in its own
// file within this package. This file defines the root command that serves as
// the parent for all subcommands and handles global flags, configuration
// loading and exit codes.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/cratemover/internal/config"
	"github.com/shinji-kodama/cratemover/internal/logging"
	"github.com/shinji-kodama/cratemover/internal/model"
	"github.com/shinji-kodama/cratemover/internal/workspace"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput and yamlOutput select structured output. They are
	// mutually exclusive and override the configured output format.
	jsonOutput bool
	yamlOutput bool

	// verbosity is the number of -v flags; it selects the log level.
	verbosity int

	// configPath is an explicit config file given with --config.
	configPath string

	// fromRepoRoot resolves relative input paths against the Git
	// repository root instead of the working directory.
	fromRepoRoot bool
)

// State prepared by the root command before any subcommand runs.
var (
	cfg          = config.DefaultConfig()
	configSource string
	resolver     = workspace.NewResolver(".", false)
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// The root command itself does not perform any action. It only provides
// help text and global flags. Actual functionality is provided by
// subcommands.
func NewRootCommand() *cobra.Command {
	cfg = config.DefaultConfig()
	configSource = ""
	resolver = workspace.NewResolver(".", false)

	rootCmd := &cobra.Command{
		Use:   "cratemover",
		Short: "Crate stack diagram parser and crane simulator",
		Long: `cratemover reads a drawing of stacked crates followed by a list of
"move N from S to D" commands, replays the commands with a crane that lifts
one crate at a time, and reports the crate on top of each stack.

Input format:

      [D]
  [N] [C]
  [Z] [M] [P]
   1   2   3

  move 1 from 2 to 1
  move 3 from 1 to 3`,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text, JSON or YAML).
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// PersistentPreRunE runs before every subcommand: it configures
		// logging and resolves the layered configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	pf.BoolVar(&yamlOutput, "yaml", false, "Output in YAML format")
	pf.CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug, -vvv trace)")
	pf.StringVar(&configPath, "config", "", "Config file (default: ./cratemover.yaml or $XDG_CONFIG_HOME/cratemover/config.yaml)")
	pf.BoolVar(&fromRepoRoot, "from-repo-root", false, "Resolve relative input paths against the Git repository root")

	// Settings that can also come from config files and CRATEMOVER_* variables.
	pf.String(config.KeyPlaceholder, cfg.Placeholder, "Character printed for an empty stack")
	pf.Bool(config.KeyStrict, false, "Fail when a move asks for more crates than the source stack holds")
	pf.Int(config.KeyPitch, 0, "Diagram column width in characters (0 = derive from the stack number line)")
	pf.StringP(config.KeyOutput, "o", model.FormatText.String(), "Output format: text, json, yaml")

	rootCmd.MarkFlagsMutuallyExclusive("json", "yaml")

	// Register subcommands. Each subcommand is defined in its own file
	// (solve.go, steps.go, etc.) and returns a *cobra.Command.
	rootCmd.AddCommand(NewSolveCommand())
	rootCmd.AddCommand(NewStepsCommand())
	rootCmd.AddCommand(NewShowCommand())
	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// setup configures logging and loads the configuration for cmd.
func setup(cmd *cobra.Command) error {
	logging.SetupLogger(verbosity, cmd.ErrOrStderr())

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	loaded, path, err := config.Load(config.LoadOptions{
		ConfigFilePath: configPath,
		WorkDir:        wd,
		Flags:          cmd.Flags(),
	})
	if err != nil {
		return err
	}
	if path != "" {
		VerboseLog("Loaded configuration from %s", path)
	}

	cfg = loaded
	configSource = path
	resolver = workspace.NewResolver(wd, fromRepoRoot)
	return nil
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	if code := run(rootCmd); code != model.ExitSuccess {
		os.Exit(int(code))
	}
}

// run executes rootCmd, prints any error and returns the exit code.
//
// CLIError types carry their own exit codes; other errors default to
// exit code 1.
func run(rootCmd *cobra.Command) model.ExitCode {
	err := rootCmd.Execute()
	if err == nil {
		return model.ExitSuccess
	}

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(rootCmd.ErrOrStderr(), cliErr.Message, cliErr.Err)
		return cliErr.Code
	}

	// Generic error: exit with code 1.
	printError(rootCmd.ErrOrStderr(), err.Error(), nil)
	return model.ExitGeneralError
}

// errorOutput is the structured error document written to stderr.
type errorOutput struct {
	Error errorBody `json:"error" yaml:"error"`
}

type errorBody struct {
	Message string `json:"message" yaml:"message"`
	Detail  string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// printError outputs an error message in the selected output format.
// Errors always go to stderr, even in structured mode, because stdout
// is reserved for successful command output.
func printError(w io.Writer, message string, underlying error) {
	format := outputFormat()
	if format.IsStructured() {
		doc := errorOutput{Error: errorBody{Message: message}}
		if underlying != nil {
			doc.Error.Detail = underlying.Error()
		}
		_ = printStructured(w, format, doc)
		return
	}

	// Text format: "Error: <message>" on stderr.
	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// VerboseLog writes an informational message through the CLI logger. It is
// shown with -v or more.
func VerboseLog(format string, args ...interface{}) {
	logger := logging.GetLogger("cli")
	logger.Info().Msgf(format, args...)
}

// outputFormat returns the format selected by --json/--yaml, falling back
// to the configured format.
func outputFormat() model.OutputFormat {
	switch {
	case jsonOutput:
		return model.FormatJSON
	case yamlOutput:
		return model.FormatYAML
	default:
		return cfg.OutputFormat()
	}
}
