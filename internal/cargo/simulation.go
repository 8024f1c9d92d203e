package cargo

import (
	"errors"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// State is the position of a Simulation in its lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateParsingDiagram
	StateStacksBuilt
	StateApplyingCommands
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateParsingDiagram:
		return "parsing-diagram"
	case StateStacksBuilt:
		return "stacks-built"
	case StateApplyingCommands:
		return "applying-commands"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type options struct {
	policy Policy
	layout *Layout
	logger zerolog.Logger
}

// Option configures a Simulation.
type Option func(*options)

// WithPolicy sets how the crane handles a move larger than its source stack.
func WithPolicy(p Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithLayout forces the diagram column layout instead of deriving it from
// the footer line.
func WithLayout(l Layout) Option {
	return func(o *options) { o.layout = &l }
}

// WithLogger sets the logger used for diagram and move events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts []Option) options {
	o := options{policy: TruncatePolicy, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Step records one applied command.
type Step struct {
	LineNo  int         `json:"line" yaml:"line"`
	Command MoveCommand `json:"command" yaml:"command"`
	Moved   int         `json:"moved" yaml:"moved"`
}

// Simulation runs one input: the diagram is parsed when the Simulation is
// created, then commands are applied in file order by Next.
//
// Iteration follows bufio.Scanner:
//
//	sim, err := cargo.NewSimulation(input)
//	...
//	for sim.Next() {
//		step := sim.Step()
//	}
//	if err := sim.Err(); err != nil { ... }
type Simulation struct {
	state   State
	initial *Hold
	hold    *Hold
	crane   *Crane
	logger  zerolog.Logger

	lines []string
	pos   int
	step  Step
	err   error
}

// NewSimulation parses the diagram section of input and returns a
// Simulation in StateStacksBuilt. A diagram error is returned directly and
// no Simulation is created.
func NewSimulation(input string, opts ...Option) (*Simulation, error) {
	o := newOptions(opts)
	sim := &Simulation{
		state:  StateParsingDiagram,
		crane:  NewCrane(o.policy, o.logger),
		logger: o.logger,
		lines:  splitLines(input),
	}

	hold, next, err := parseDiagram(sim.lines, o.layout)
	if err != nil {
		sim.state = StateFailed
		return nil, err
	}
	sim.hold = hold
	sim.initial = hold.Clone()
	sim.pos = next
	sim.state = StateStacksBuilt

	sim.logger.Debug().
		Int("stacks", hold.Len()).
		Int("crates", hold.TotalCrates()).
		Str("policy", o.policy.String()).
		Msg("diagram parsed")
	return sim, nil
}

// Next parses and applies the next command. It returns false when the input
// is exhausted or a command failed; Err distinguishes the two.
func (s *Simulation) Next() bool {
	if s.state == StateDone || s.state == StateFailed {
		return false
	}

	for s.pos < len(s.lines) {
		lineNo := s.pos + 1
		line := s.lines[s.pos]
		s.pos++
		if strings.TrimSpace(line) == "" {
			continue
		}

		s.state = StateApplyingCommands
		cmd, err := ParseMoveCommand(line)
		if err != nil {
			s.fail(annotate(err, lineNo, line))
			return false
		}
		moved, err := s.crane.Apply(s.hold, cmd)
		if err != nil {
			s.fail(annotate(err, lineNo, line))
			return false
		}
		s.step = Step{LineNo: lineNo, Command: cmd, Moved: moved}
		return true
	}

	s.state = StateDone
	return false
}

func (s *Simulation) fail(err error) {
	s.err = err
	s.state = StateFailed
	s.logger.Debug().Err(err).Msg("simulation failed")
}

// Step returns the command applied by the last successful call to Next.
func (s *Simulation) Step() Step {
	return s.step
}

// Err returns the error that stopped the simulation, if any.
func (s *Simulation) Err() error {
	return s.err
}

// State returns the current lifecycle state.
func (s *Simulation) State() State {
	return s.state
}

// Tops returns the current top of every stack. It may be called between
// steps.
func (s *Simulation) Tops() []Slot {
	return s.hold.Tops()
}

// Initial returns a copy of the hold as it was built from the diagram.
func (s *Simulation) Initial() *Hold {
	return s.initial.Clone()
}

// Result applies every remaining command and returns the final hold. On
// failure it returns nil and the error; the partially moved hold is never
// exposed.
func (s *Simulation) Result() (*Hold, error) {
	for s.Next() {
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.hold, nil
}

// Load reads the whole input file. Read errors are reported as
// KindIOFailure and unwrap to the underlying *fs.PathError.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{Kind: KindIOFailure, Token: path, Err: err}
	}
	return string(data), nil
}

// Build reads path and runs the complete simulation, returning the final
// hold.
func Build(path string, opts ...Option) (*Hold, error) {
	input, err := Load(path)
	if err != nil {
		return nil, err
	}
	return BuildString(input, opts...)
}

// BuildString runs the complete simulation over input.
func BuildString(input string, opts ...Option) (*Hold, error) {
	sim, err := NewSimulation(input, opts...)
	if err != nil {
		return nil, err
	}
	return sim.Result()
}

// Summary describes a parsed input without running it.
type Summary struct {
	Stacks   int `json:"stacks" yaml:"stacks"`
	Crates   int `json:"crates" yaml:"crates"`
	Commands int `json:"commands" yaml:"commands"`
}

// Check parses the diagram and every command of input and verifies that all
// stack numbers are in range. No command is applied, so policy-dependent
// failures such as KindInsufficientCrates are not detected here.
func Check(input string, opts ...Option) (Summary, error) {
	o := newOptions(opts)
	lines := splitLines(input)

	hold, next, err := parseDiagram(lines, o.layout)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{Stacks: hold.Len(), Crates: hold.TotalCrates()}
	for i := next; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		cmd, err := ParseMoveCommand(line)
		if err != nil {
			return Summary{}, annotate(err, i+1, line)
		}
		if _, err := hold.index(cmd.From, "source"); err != nil {
			return Summary{}, annotate(err, i+1, line)
		}
		if _, err := hold.index(cmd.To, "destination"); err != nil {
			return Summary{}, annotate(err, i+1, line)
		}
		sum.Commands++
	}
	return sum, nil
}

// parseDiagram consumes the diagram section at the start of lines and
// returns the built hold plus the index of the first command line.
//
// The section ends at the first whitespace-only line, at the footer line
// of stack numbers, or before the first line holding no "[" at all, which
// is left as the first command line. A blank line right after the footer
// belongs to the diagram.
func parseDiagram(lines []string, override *Layout) (*Hold, int, error) {
	var (
		raw    []string
		footer []int
		next   = len(lines)
	)

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			next = i + 1
			break
		}
		if starts, ok := ParseFooter(line); ok {
			footer = starts
			next = i + 1
			if next < len(lines) && strings.TrimSpace(lines[next]) == "" {
				next++
			}
			break
		}
		if !strings.Contains(line, "[") {
			next = i
			break
		}
		raw = append(raw, line)
	}

	layout := DefaultLayout()
	switch {
	case override != nil:
		layout = *override
	case footer != nil:
		layout = LayoutFromFooter(footer)
	}

	rows := make([]Row, 0, len(raw))
	for i, line := range raw {
		row, _, err := ParseRow(line, layout)
		if err != nil {
			return nil, 0, annotate(err, i+1, line)
		}
		rows = append(rows, row)
	}

	width := len(footer)
	if footer == nil {
		width = rowsWidth(rows)
	}

	hold, err := BuildHold(rows, width)
	if err != nil {
		var e *Error
		if errors.As(err, &e) && e.LineNo > 0 && e.LineNo <= len(raw) {
			return nil, 0, annotate(err, e.LineNo, raw[e.LineNo-1])
		}
		return nil, 0, err
	}
	return hold, next, nil
}

// splitLines splits input on "\n" and drops the "\r" of CRLF endings.
func splitLines(input string) []string {
	lines := strings.Split(input, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
