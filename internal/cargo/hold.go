package cargo

import (
	"fmt"
	"strings"
)

// DefaultPlaceholder stands in for the top of an empty stack when tops are
// formatted as a string.
const DefaultPlaceholder = '-'

// Hold is the complete set of stacks at one point of a run.
//
// Stacks are numbered 1..N by callers and stored 0-based. Each stack is kept
// bottom to top (index 0 is the bottom crate). The number of stacks is fixed
// when the Hold is built. The Hold owns its stacks: accessors return copies.
type Hold struct {
	stacks [][]Crate
}

// newHold returns a Hold with n empty stacks.
func newHold(n int) *Hold {
	return &Hold{stacks: make([][]Crate, n)}
}

// Len returns the number of stacks.
func (h *Hold) Len() int {
	return len(h.stacks)
}

// Stack returns a copy of stack n (1-based), bottom crate first.
func (h *Hold) Stack(n int) ([]Crate, error) {
	i, err := h.index(n, "")
	if err != nil {
		return nil, err
	}
	out := make([]Crate, len(h.stacks[i]))
	copy(out, h.stacks[i])
	return out, nil
}

// Height returns the number of crates on stack n (1-based).
func (h *Hold) Height(n int) (int, error) {
	i, err := h.index(n, "")
	if err != nil {
		return 0, err
	}
	return len(h.stacks[i]), nil
}

// TotalCrates counts every crate in the hold.
func (h *Hold) TotalCrates() int {
	total := 0
	for _, s := range h.stacks {
		total += len(s)
	}
	return total
}

// Tops returns the top slot of every stack in column order. An empty stack
// yields an empty Slot. Tops never modifies the hold.
func (h *Hold) Tops() []Slot {
	tops := make([]Slot, len(h.stacks))
	for i, s := range h.stacks {
		if len(s) > 0 {
			tops[i] = Occupied(s[len(s)-1])
		}
	}
	return tops
}

// Clone returns a deep copy of the hold.
func (h *Hold) Clone() *Hold {
	c := newHold(len(h.stacks))
	for i, s := range h.stacks {
		c.stacks[i] = append([]Crate(nil), s...)
	}
	return c
}

// String renders the hold for debugging, bottom to top per stack:
//
//	[ [ZN] [MCD] [P] ]
func (h *Hold) String() string {
	var b strings.Builder
	b.WriteString("[ ")
	for _, s := range h.stacks {
		b.WriteString("[")
		for _, c := range s {
			b.WriteRune(rune(c))
		}
		b.WriteString("] ")
	}
	b.WriteString("]")
	return b.String()
}

// index converts a 1-based stack number into a slice index. field names the
// command part being checked ("source", "destination") for error messages.
func (h *Hold) index(n int, field string) (int, error) {
	if n < 1 || n > len(h.stacks) {
		return 0, &Error{
			Kind:   KindStackIndexOutOfRange,
			Field:  field,
			Token:  fmt.Sprint(n),
			Detail: fmt.Sprintf("valid stacks are 1..%d", len(h.stacks)),
		}
	}
	return n - 1, nil
}

func (h *Hold) push(i int, c Crate) {
	h.stacks[i] = append(h.stacks[i], c)
}

// pop removes the top crate of stack i. ok is false when the stack is empty
// and nothing was removed.
func (h *Hold) pop(i int) (c Crate, ok bool) {
	s := h.stacks[i]
	if len(s) == 0 {
		return 0, false
	}
	c = s[len(s)-1]
	h.stacks[i] = s[:len(s)-1]
	return c, true
}

// FormatTops concatenates the labels of tops left to right, writing
// placeholder for every empty stack.
func FormatTops(tops []Slot, placeholder rune) string {
	var b strings.Builder
	for _, t := range tops {
		b.WriteString(t.Label(placeholder))
	}
	return b.String()
}
