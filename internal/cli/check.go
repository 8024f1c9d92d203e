package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/cratemover/internal/cargo"
	"github.com/shinji-kodama/cratemover/internal/model"
)

// NewCheckCommand creates the "check" cobra command, which validates an
// input file without running it.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Validate an input file without running the moves",
		Long: `Parse the diagram and every move command and verify that all stack numbers
exist. No move is applied, so --strict failures are only reported by solve,
steps and show.

Examples:
  cratemover check
  cratemover check day5.txt --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), cmd.OutOrStdout(), inputArg(args))
		},
	}
}

// runCheck is the main logic function for the check command.
func runCheck(ctx context.Context, w io.Writer, arg string) error {
	path, input, err := readInput(ctx, arg)
	if err != nil {
		return err
	}

	sum, err := cargo.Check(input, simulationOptions()...)
	if err != nil {
		return classifyError(fmt.Sprintf("%s is invalid", path), err)
	}

	return printCheckResult(w, model.CheckResult{
		File:     path,
		Valid:    true,
		Stacks:   sum.Stacks,
		Crates:   sum.Crates,
		Commands: sum.Commands,
	})
}

// printCheckResult outputs the summary in text or structured format.
func printCheckResult(w io.Writer, result model.CheckResult) error {
	if format := outputFormat(); format.IsStructured() {
		return printStructured(w, format, result)
	}

	st := newStyles(w)
	fmt.Fprintf(w, "%s %s: %d stacks, %d crates, %d commands\n",
		st.ok.Render("OK"), result.File, result.Stacks, result.Crates, result.Commands)
	return nil
}
