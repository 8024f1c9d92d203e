package cargo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Command keywords, in the order they must appear.
const (
	keywordMove = "move"
	keywordFrom = "from"
	keywordTo   = "to"
)

// MoveCommand is one parsed relocation instruction: move Count crates, one
// at a time, from stack From to stack To. Stack numbers are 1-based. From and
// To may be equal, which makes the command a no-op.
type MoveCommand struct {
	Count int `json:"count" yaml:"count"`
	From  int `json:"from" yaml:"from"`
	To    int `json:"to" yaml:"to"`
}

// String returns the command in input notation, e.g. "move 1 from 2 to 1".
func (c MoveCommand) String() string {
	return fmt.Sprintf("move %d from %d to %d", c.Count, c.From, c.To)
}

// ParseMoveCommand parses a line of the form "move N from S to D".
//
// The keywords are located in order, each searched after the end of the
// previous one, and only whitespace may precede "move". The text between the
// keywords is trimmed and must be an unsigned decimal integer. Any extra
// whitespace around the keywords is accepted.
func ParseMoveCommand(line string) (MoveCommand, error) {
	line = strings.TrimRight(line, "\r")

	// Step 1: locate the three keywords in order.
	movePos := strings.Index(line, keywordMove)
	if movePos < 0 || strings.TrimSpace(line[:movePos]) != "" {
		return MoveCommand{}, missingKeyword(keywordMove, line)
	}
	countStart := movePos + len(keywordMove)

	fromPos := strings.Index(line[countStart:], keywordFrom)
	if fromPos < 0 {
		return MoveCommand{}, missingKeyword(keywordFrom, line)
	}
	fromPos += countStart
	srcStart := fromPos + len(keywordFrom)

	toPos := strings.Index(line[srcStart:], keywordTo)
	if toPos < 0 {
		return MoveCommand{}, missingKeyword(keywordTo, line)
	}
	toPos += srcStart
	dstStart := toPos + len(keywordTo)

	// Step 2: parse the numbers between them.
	count, err := parseNumber("count", line[countStart:fromPos], line)
	if err != nil {
		return MoveCommand{}, err
	}
	from, err := parseNumber("source", line[srcStart:toPos], line)
	if err != nil {
		return MoveCommand{}, err
	}
	to, err := parseNumber("destination", line[dstStart:], line)
	if err != nil {
		return MoveCommand{}, err
	}

	return MoveCommand{Count: count, From: from, To: to}, nil
}

func missingKeyword(keyword, line string) error {
	return &Error{Kind: KindMissingKeyword, Token: keyword, Line: line}
}

// parseNumber reads an unsigned decimal integer that fits an int.
func parseNumber(field, raw, line string) (int, error) {
	tok := strings.TrimSpace(raw)
	n, err := strconv.ParseUint(tok, 10, strconv.IntSize-1)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, &Error{
			Kind:  KindNumericParseFailure,
			Field: field,
			Token: tok,
			Line:  line,
			Err:   err,
		}
	}
	return int(n), nil
}
