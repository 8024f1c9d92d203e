package cargo

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Policy decides what the crane does when a command asks for more crates
// than the source stack holds.
type Policy int

const (
	// TruncatePolicy moves what is there and silently skips the remaining
	// iterations. This is the default.
	TruncatePolicy Policy = iota

	// StrictPolicy rejects the command with KindInsufficientCrates before
	// anything is moved.
	StrictPolicy
)

// String returns the policy name used in configuration and logs.
func (p Policy) String() string {
	switch p {
	case TruncatePolicy:
		return "truncate"
	case StrictPolicy:
		return "strict"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Crane applies move commands to a Hold one crate at a time.
type Crane struct {
	policy Policy
	logger zerolog.Logger
}

// NewCrane returns a crane using policy and logging each move at trace level.
func NewCrane(policy Policy, logger zerolog.Logger) *Crane {
	return &Crane{policy: policy, logger: logger}
}

// Policy returns the crane's insufficient-crates policy.
func (c *Crane) Policy() Policy {
	return c.policy
}

// Apply executes cmd against h and returns the number of crates actually
// moved.
//
// Both stack numbers are checked before h is touched, so a rejected command
// leaves the hold unchanged. Crates move one per iteration: the last crate
// taken from the source is the first one placed on the destination, which
// reverses the order of a multi-crate move. Under TruncatePolicy an
// iteration that finds the source empty moves nothing.
func (c *Crane) Apply(h *Hold, cmd MoveCommand) (int, error) {
	src, err := h.index(cmd.From, "source")
	if err != nil {
		return 0, err
	}
	dst, err := h.index(cmd.To, "destination")
	if err != nil {
		return 0, err
	}

	if src == dst || cmd.Count == 0 {
		c.logger.Trace().Stringer("command", cmd).Msg("no-op move")
		return 0, nil
	}

	if c.policy == StrictPolicy {
		if have := len(h.stacks[src]); have < cmd.Count {
			return 0, &Error{
				Kind:   KindInsufficientCrates,
				Field:  "count",
				Token:  fmt.Sprint(cmd.Count),
				Detail: fmt.Sprintf("stack %d holds %d", cmd.From, have),
			}
		}
	}

	moved := 0
	for i := 0; i < cmd.Count; i++ {
		crate, ok := h.pop(src)
		if !ok {
			break
		}
		h.push(dst, crate)
		moved++
	}

	c.logger.Trace().
		Stringer("command", cmd).
		Int("moved", moved).
		Msg("applied move")
	return moved, nil
}
