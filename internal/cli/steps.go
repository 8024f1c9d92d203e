package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/cratemover/internal/cargo"
	"github.com/shinji-kodama/cratemover/internal/model"
)

// NewStepsCommand creates the "steps" cobra command, which traces a run
// move by move.
func NewStepsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "steps [file]",
		Short: "Trace every move and the stack tops after it",
		Long: `Replay the move commands one at a time and print, for each of them, how many
crates were actually moved and the crate on top of each stack afterwards.
A move that asks for more crates than the source stack holds shows fewer
moved crates than requested.

Examples:
  cratemover steps
  cratemover steps day5.txt --yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSteps(cmd.Context(), cmd.OutOrStdout(), inputArg(args))
		},
	}
}

// runSteps is the main logic function for the steps command. Nothing is
// printed unless the whole run succeeds.
func runSteps(ctx context.Context, w io.Writer, arg string) error {
	path, input, err := readInput(ctx, arg)
	if err != nil {
		return err
	}

	sim, err := cargo.NewSimulation(input, simulationOptions()...)
	if err != nil {
		return classifyError(fmt.Sprintf("cannot parse diagram in %s", path), err)
	}

	placeholder := cfg.PlaceholderRune()
	result := model.StepsResult{
		File:    path,
		Initial: cargo.FormatTops(sim.Tops(), placeholder),
		Steps:   []model.StepRecord{},
	}
	for sim.Next() {
		step := sim.Step()
		result.Steps = append(result.Steps, model.StepRecord{
			Line:      step.LineNo,
			Command:   step.Command.String(),
			Requested: step.Command.Count,
			Moved:     step.Moved,
			Tops:      cargo.FormatTops(sim.Tops(), placeholder),
		})
	}
	if err := sim.Err(); err != nil {
		return classifyError(fmt.Sprintf("simulation of %s failed", path), err)
	}
	result.Final = cargo.FormatTops(sim.Tops(), placeholder)

	return printStepsResult(w, result)
}

// printStepsResult outputs the trace in text or structured format.
//
// The text format is:
//
//	initial           NDP
//	line 6   move 1 from 2 to 1   moved 1     DCP
//	line 7   move 3 from 1 to 3   moved 3     -CZ
//	final             CMZ
func printStepsResult(w io.Writer, result model.StepsResult) error {
	if format := outputFormat(); format.IsStructured() {
		return printStructured(w, format, result)
	}

	st := newStyles(w)
	fmt.Fprintf(w, "%-8s %-20s %-10s  %s\n", "initial", "", "", result.Initial)
	for _, s := range result.Steps {
		moved := fmt.Sprintf("moved %d", s.Moved)
		if s.Moved < s.Requested {
			moved = fmt.Sprintf("moved %d/%d", s.Moved, s.Requested)
		}
		fmt.Fprintf(w, "%-8s %-20s %-10s  %s\n",
			fmt.Sprintf("line %d", s.Line), s.Command, moved, s.Tops)
	}
	fmt.Fprintf(w, "%-8s %-20s %-10s  %s\n", "final", "", "", st.answer.Render(result.Final))
	return nil
}
