package cargo

import (
	"fmt"
	"strings"
)

// Diagram renders the hold back into the bracket notation it was parsed
// from, tallest row first, followed by the stack-number footer. Trailing
// spaces are trimmed from every line. Parsing the result with BuildString
// yields a hold equal to h.
//
//	    [D]
//	[N] [C]
//	[Z] [M] [P]
//	 1   2   3
func (h *Hold) Diagram() string {
	height := 0
	for _, s := range h.stacks {
		if len(s) > height {
			height = len(s)
		}
	}

	lines := make([]string, 0, height+1)
	fields := make([]string, len(h.stacks))
	for level := height - 1; level >= 0; level-- {
		for i, s := range h.stacks {
			if level < len(s) {
				fields[i] = "[" + s[level].String() + "]"
			} else {
				fields[i] = "   "
			}
		}
		lines = append(lines, strings.TrimRight(strings.Join(fields, " "), " "))
	}

	for i := range h.stacks {
		fields[i] = fmt.Sprintf(" %-2d", i+1)
	}
	lines = append(lines, strings.TrimRight(strings.Join(fields, " "), " "))

	return strings.Join(lines, "\n") + "\n"
}
