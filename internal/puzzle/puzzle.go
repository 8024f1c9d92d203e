// Package puzzle maps puzzle names to solvers.
//
// A Solver turns one input file into a single answer string. Solvers are
// registered under a canonical name plus optional aliases; the CLI looks
// them up by either.
package puzzle

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Solver produces the answer for one input file.
type Solver interface {
	Solve(ctx context.Context, path string) (string, error)
}

// UnimplementedSolver can be embedded by solvers that are registered before
// their logic exists. Calling Solve on it is a programming error and panics.
type UnimplementedSolver struct{}

// Solve panics.
func (UnimplementedSolver) Solve(context.Context, string) (string, error) {
	panic("puzzle: solver not implemented")
}

// Puzzle is a registered solver with its display metadata.
type Puzzle struct {
	// Name is the canonical name, e.g. "crate-tops".
	Name string

	// Aliases are alternative lookup names.
	Aliases []string

	// Label precedes the answer in text output.
	Label string

	// Solver computes the answer.
	Solver Solver
}

// Registry holds puzzles by name and alias.
type Registry struct {
	byName map[string]*Puzzle
	names  []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]*Puzzle{}}
}

// Register adds p under its name and aliases. Names are case-insensitive
// and must be unique across names and aliases.
func (r *Registry) Register(p Puzzle) error {
	if p.Name == "" {
		return fmt.Errorf("puzzle name must not be empty")
	}
	if p.Solver == nil {
		return fmt.Errorf("puzzle %q has no solver", p.Name)
	}

	keys := append([]string{p.Name}, p.Aliases...)
	for _, k := range keys {
		if _, exists := r.byName[strings.ToLower(k)]; exists {
			return fmt.Errorf("puzzle name %q is already registered", k)
		}
	}

	entry := p
	for _, k := range keys {
		r.byName[strings.ToLower(k)] = &entry
	}
	r.names = append(r.names, p.Name)
	sort.Strings(r.names)
	return nil
}

// Lookup finds a puzzle by name or alias.
func (r *Registry) Lookup(name string) (*Puzzle, error) {
	p, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown puzzle %q (available: %s)", name, strings.Join(r.names, ", "))
	}
	return p, nil
}

// Names lists the canonical names in sorted order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}
