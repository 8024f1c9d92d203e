// solve.go implements the "cratemover solve" command.
//
// The solve command runs the full simulation for one or more input files
// and prints the crate on top of each stack. Files are processed
// concurrently but reported in argument order; the first failure aborts
// the command.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/shinji-kodama/cratemover/internal/logging"
	"github.com/shinji-kodama/cratemover/internal/model"
	"github.com/shinji-kodama/cratemover/internal/puzzle"
)

// solveFlags holds the flag values for the solve command.
type solveFlags struct {
	// puzzle selects the registered solver by name or alias.
	puzzle string
}

// NewSolveCommand creates the "solve" cobra command.
func NewSolveCommand() *cobra.Command {
	flags := &solveFlags{}

	cmd := &cobra.Command{
		Use:   "solve [file...]",
		Short: "Print the crate on top of each stack after all moves",
		Long: `Run every move command of each input file and print the crate that ends up
on top of each stack. Empty stacks are shown with the placeholder character.

Without arguments the file input.txt is used.

Examples:
  cratemover solve
  cratemover solve day5.txt
  cratemover solve a.txt b.txt --json
  cratemover solve --from-repo-root inputs/day5.txt`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd.Context(), cmd.OutOrStdout(), flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.puzzle, "puzzle", puzzle.CrateTopsName, "Puzzle solver to run")

	return cmd
}

// solveOutput is the structured output of the solve command.
type solveOutput struct {
	Results []model.SolveResult `json:"results" yaml:"results"`
}

// runSolve is the main logic function for the solve command.
func runSolve(ctx context.Context, w io.Writer, flags *solveFlags, args []string) error {
	logger := logging.GetLogger("solve")
	done := logging.LogOperationStart(logger, "solve")
	defer done()

	// Step 1: Look up the solver.
	registry := puzzle.DefaultRegistry(cfg.PlaceholderRune(), simulationOptions()...)
	p, err := registry.Lookup(flags.puzzle)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "cannot select puzzle", err)
	}

	// Step 2: Resolve all paths up front so errors surface before any work.
	if len(args) == 0 {
		args = []string{""}
	}
	paths := make([]string, len(args))
	for i, arg := range args {
		path, err := resolver.Resolve(ctx, arg)
		if err != nil {
			return err
		}
		paths[i] = path
	}

	// Step 3: Solve every file in its own goroutine.
	results := make([]model.SolveResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			VerboseLog("Solving %s with %s", path, p.Name)
			answer, err := p.Solver.Solve(gctx, path)
			if err != nil {
				return classifyError("solve failed", err)
			}
			results[i] = model.SolveResult{
				File:   path,
				Puzzle: p.Name,
				Label:  p.Label,
				Answer: answer,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Step 4: Output results in argument order.
	return printSolveResult(w, results)
}

// printSolveResult outputs the answers in text or structured format.
//
// The text format is one line per file:
//
//	Crate on top of each stack: CMZ
//
// prefixed with the file path when more than one file was given.
func printSolveResult(w io.Writer, results []model.SolveResult) error {
	if format := outputFormat(); format.IsStructured() {
		return printStructured(w, format, solveOutput{Results: results})
	}

	st := newStyles(w)
	for _, r := range results {
		if len(results) > 1 {
			fmt.Fprintf(w, "%s: ", st.muted.Render(r.File))
		}
		fmt.Fprintf(w, "%s: %s\n", r.Label, st.answer.Render(r.Answer))
	}
	return nil
}
