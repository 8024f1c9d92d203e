package puzzle

import (
	"context"
	"fmt"

	"github.com/shinji-kodama/cratemover/internal/cargo"
)

// CrateTopsName is the registered name of the crate simulation puzzle.
const CrateTopsName = "crate-tops"

// CrateTops runs the crane simulation over an input file and answers with
// the crate on top of every stack, e.g. "CMZ".
type CrateTops struct {
	UnimplementedSolver

	// Placeholder stands in for empty stacks in the answer.
	Placeholder rune

	// Options are passed to the simulation.
	Options []cargo.Option
}

// Solve implements Solver.
func (s *CrateTops) Solve(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	hold, err := cargo.Build(path, s.Options...)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	placeholder := s.Placeholder
	if placeholder == 0 {
		placeholder = cargo.DefaultPlaceholder
	}
	return cargo.FormatTops(hold.Tops(), placeholder), nil
}

// DefaultRegistry returns a registry with the built-in puzzles.
func DefaultRegistry(placeholder rune, opts ...cargo.Option) *Registry {
	r := NewRegistry()
	err := r.Register(Puzzle{
		Name:    CrateTopsName,
		Aliases: []string{"day5a", "day5"},
		Label:   "Crate on top of each stack",
		Solver:  &CrateTops{Placeholder: placeholder, Options: opts},
	})
	if err != nil {
		panic(err)
	}
	return r
}
