package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/cratemover/internal/cargo"
	"github.com/shinji-kodama/cratemover/internal/model"
)

// showFlags holds the flag values for the show command.
type showFlags struct {
	// initial renders the hold before any move instead of after all moves.
	initial bool
}

// NewShowCommand creates the "show" cobra command, which draws a hold in
// the input's bracket notation.
func NewShowCommand() *cobra.Command {
	flags := &showFlags{}

	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Draw the stacks after all moves",
		Long: `Render the stacks back into the bracket diagram notation of the input,
including the stack number line. By default the final state is drawn;
--initial draws the stacks as parsed, before any move.

Examples:
  cratemover show
  cratemover show day5.txt --initial`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.Context(), cmd.OutOrStdout(), flags, inputArg(args))
		},
	}

	cmd.Flags().BoolVar(&flags.initial, "initial", false, "Draw the stacks before any move")

	return cmd
}

// runShow is the main logic function for the show command.
func runShow(ctx context.Context, w io.Writer, flags *showFlags, arg string) error {
	path, input, err := readInput(ctx, arg)
	if err != nil {
		return err
	}

	sim, err := cargo.NewSimulation(input, simulationOptions()...)
	if err != nil {
		return classifyError(fmt.Sprintf("cannot parse diagram in %s", path), err)
	}

	var hold *cargo.Hold
	if flags.initial {
		hold = sim.Initial()
	} else {
		hold, err = sim.Result()
		if err != nil {
			return classifyError(fmt.Sprintf("simulation of %s failed", path), err)
		}
	}

	return printShowResult(w, model.ShowResult{
		File:    path,
		Initial: flags.initial,
		Diagram: hold.Diagram(),
		Stacks:  hold.Len(),
		Crates:  hold.TotalCrates(),
	})
}

// printShowResult outputs the diagram as plain text or inside a structured
// document.
func printShowResult(w io.Writer, result model.ShowResult) error {
	if format := outputFormat(); format.IsStructured() {
		return printStructured(w, format, result)
	}
	_, err := io.WriteString(w, result.Diagram)
	return err
}
