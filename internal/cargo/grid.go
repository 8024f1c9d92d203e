package cargo

import (
	"strings"
	"unicode"
)

const (
	// DefaultPitch is the width of one diagram column: a three-character
	// "[X]" crate plus one separator.
	DefaultPitch = 4

	// crateWidth is the width of the bracket notation itself. A pitch
	// smaller than this cannot hold a crate.
	crateWidth = 3
)

// Layout describes where the columns of a diagram line start.
//
// Column k (0-based) covers the runes [Origin + k*Pitch, Origin + (k+1)*Pitch).
// The last column of a line may be shorter because it has no trailing
// separator, or because an editor trimmed trailing spaces.
type Layout struct {
	// Pitch is the distance between two columns, in runes.
	Pitch int

	// Origin is the rune offset of the first column.
	Origin int
}

// DefaultLayout is the standard layout: four-rune columns starting at the
// beginning of the line.
func DefaultLayout() Layout {
	return Layout{Pitch: DefaultPitch}
}

// normalized returns the layout with unusable values replaced by defaults.
func (l Layout) normalized() Layout {
	if l.Pitch < crateWidth {
		l.Pitch = DefaultPitch
	}
	if l.Origin < 0 {
		l.Origin = 0
	}
	return l
}

// ParseRow classifies one diagram line.
//
// It returns ok=false for a line made only of whitespace, which ends the
// diagram section. Otherwise the line is cut into fields according to layout
// and each field becomes one Slot:
//
//   - "[X]" (exactly one "[" and one "]" around one non-space rune) holds crate X
//   - a field without brackets (spaces, or a footer digit) is an empty slot
//   - anything else is a KindMalformedCrateField error carrying the raw field
//
// Fields are measured in runes so labels outside ASCII keep their column.
func ParseRow(line string, layout Layout) (Row, bool, error) {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" {
		return nil, false, nil
	}

	layout = layout.normalized()
	runes := []rune(line)

	origin := layout.Origin
	if origin > len(runes) {
		origin = len(runes)
	}
	// Anything to the left of the first column must be padding.
	if lead := string(runes[:origin]); strings.TrimSpace(lead) != "" {
		return nil, false, &Error{
			Kind:   KindMalformedCrateField,
			Token:  lead,
			Detail: "text before the first column",
		}
	}

	row := make(Row, 0, (len(runes)-origin+layout.Pitch-1)/layout.Pitch)
	for start := origin; start < len(runes); start += layout.Pitch {
		end := start + layout.Pitch
		if end > len(runes) {
			end = len(runes)
		}
		slot, err := parseField(string(runes[start:end]))
		if err != nil {
			return nil, false, err
		}
		row = append(row, slot)
	}
	return row, true, nil
}

// parseField turns one fixed-width field into a Slot.
func parseField(field string) (Slot, error) {
	opens := strings.Count(field, "[")
	closes := strings.Count(field, "]")

	if opens == 0 && closes == 0 {
		return Slot{}, nil
	}

	if opens == 1 && closes == 1 {
		open := strings.IndexByte(field, '[')
		end := strings.IndexByte(field, ']')
		if end > open {
			inner := []rune(field[open+1 : end])
			if len(inner) == 1 && !unicode.IsSpace(inner[0]) {
				return Occupied(Crate(inner[0])), nil
			}
		}
	}

	return Slot{}, &Error{Kind: KindMalformedCrateField, Token: field}
}

// ParseFooter recognizes the stack-number line under a diagram, such as
// " 1   2   3". It returns the rune offset of the first digit of every number,
// and ok=false unless the line holds only digits and spaces with at least
// one digit.
func ParseFooter(line string) ([]int, bool) {
	line = strings.TrimRight(line, "\r")

	var starts []int
	inNumber := false
	for i, r := range []rune(line) {
		switch {
		case r >= '0' && r <= '9':
			if !inNumber {
				starts = append(starts, i)
			}
			inNumber = true
		case r == ' ' || r == '\t':
			inNumber = false
		default:
			return nil, false
		}
	}
	return starts, len(starts) > 0
}

// LayoutFromFooter derives the column layout from the footer's number
// positions. Each number sits under the label of its column, one rune right
// of the column start. With fewer than two numbers the pitch cannot be
// measured and DefaultPitch is used.
func LayoutFromFooter(starts []int) Layout {
	layout := DefaultLayout()
	if len(starts) == 0 {
		return layout
	}
	if len(starts) >= 2 {
		if pitch := starts[1] - starts[0]; pitch >= crateWidth {
			layout.Pitch = pitch
		}
	}
	layout.Origin = starts[0] - 1
	if layout.Origin < 0 {
		layout.Origin = 0
	}
	return layout
}
