package cargo

import "fmt"

// BuildHold folds parsed diagram rows into a Hold with width stacks.
//
// rows must be in file order, so the first row is the top of the picture.
// Rows are applied in reverse: the bottom row is pushed first and the
// textual top of every stack ends up last. Empty slots are skipped, and rows
// shorter than width (trailing whitespace trimmed) simply leave the missing
// columns untouched. A crate in a column at or beyond width is reported as
// KindMalformedCrateField with LineNo set to the row's 1-based position.
func BuildHold(rows []Row, width int) (*Hold, error) {
	if width < 0 {
		return nil, fmt.Errorf("build hold: negative width %d", width)
	}

	hold := newHold(width)
	placed := 0

	for i := len(rows) - 1; i >= 0; i-- {
		for col, slot := range rows[i] {
			c, ok := slot.Crate()
			if !ok {
				continue
			}
			if col >= width {
				return nil, &Error{
					Kind:   KindMalformedCrateField,
					LineNo: i + 1,
					Token:  "[" + c.String() + "]",
					Detail: fmt.Sprintf("column %d is beyond the %d stacks of the diagram", col+1, width),
				}
			}
			hold.push(col, c)
			placed++
		}
	}

	// Every occupied slot must land on exactly one stack.
	if total := hold.TotalCrates(); total != placed {
		return nil, fmt.Errorf("build hold: %d crates in rows but %d on stacks", placed, total)
	}
	return hold, nil
}

// rowsWidth returns the widest row length.
func rowsWidth(rows []Row) int {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	return width
}
