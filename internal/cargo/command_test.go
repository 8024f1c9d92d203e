package cargo

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseMoveCommand verifies parsing of well-formed command lines,
// including irregular whitespace.
func TestParseMoveCommand(t *testing.T) {
	tests := []struct {
		line     string
		expected MoveCommand
	}{
		{"move 1 from 2 to 1", MoveCommand{Count: 1, From: 2, To: 1}},
		{"move 0 from 1 to 3", MoveCommand{Count: 0, From: 1, To: 3}},
		{"  move  12  from 7   to 9  ", MoveCommand{Count: 12, From: 7, To: 9}},
		{"move 3 from 1 to 3\r", MoveCommand{Count: 3, From: 1, To: 3}},
		{"\tmove 2 from 4 to 4", MoveCommand{Count: 2, From: 4, To: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, err := ParseMoveCommand(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cmd)
		})
	}
}

// TestParseMoveCommand_MissingKeyword verifies that absent or misplaced
// keywords are reported by name.
func TestParseMoveCommand_MissingKeyword(t *testing.T) {
	tests := []struct {
		line    string
		keyword string
	}{
		{"", "move"},
		{"shift 1 from 2 to 3", "move"},
		{"please move 1 from 2 to 3", "move"},
		{"move 1 of 2 to 3", "from"},
		{"move 1 from 2 at 3", "to"},
		{"to 3 from 2 move 1", "move"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := ParseMoveCommand(tt.line)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingKeyword)

			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.keyword, e.Token)
			assert.Equal(t, tt.line, e.Line)
		})
	}
}

// TestParseMoveCommand_BadNumber verifies that every numeric field is
// validated and named in the error.
func TestParseMoveCommand_BadNumber(t *testing.T) {
	tests := []struct {
		line  string
		field string
		token string
	}{
		{"move x from 2 to 3", "count", "x"},
		{"move -1 from 2 to 3", "count", "-1"},
		{"move  from 2 to 3", "count", ""},
		{"move 1 from 2.5 to 3", "source", "2.5"},
		{"move 1 from 2 to three", "destination", "three"},
		{"move 1 from 2 to 3 4", "destination", "3 4"},
		{"move 99999999999999999999999 from 1 to 2", "count", "99999999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := ParseMoveCommand(tt.line)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNumericParseFailure)

			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.field, e.Field)
			assert.Equal(t, tt.token, e.Token)
		})
	}
}

// TestParseMoveCommand_OutOfRange verifies that overflow keeps the strconv
// cause.
func TestParseMoveCommand_OutOfRange(t *testing.T) {
	_, err := ParseMoveCommand("move 99999999999999999999999 from 1 to 2")
	assert.ErrorIs(t, err, strconv.ErrRange)
}

// TestMoveCommand_String verifies that a command prints back in input form.
func TestMoveCommand_String(t *testing.T) {
	line := "move 3 from 1 to 3"
	cmd, err := ParseMoveCommand(line)
	require.NoError(t, err)
	assert.Equal(t, line, cmd.String())
}
