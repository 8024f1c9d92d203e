package cargo

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies the failures a run can end with. Every failure is final:
// nothing is retried and no partial Hold is returned.
type Kind int

const (
	// KindUnknown is the zero Kind and never produced by this package.
	KindUnknown Kind = iota

	// KindMalformedCrateField is an unbalanced or otherwise unreadable
	// bracket field in the diagram, e.g. "[A  " or "[]".
	KindMalformedCrateField

	// KindMissingKeyword means one of "move", "from" or "to" is absent or
	// out of order in a command line.
	KindMissingKeyword

	// KindNumericParseFailure means the count, source or destination of a
	// command is not an unsigned decimal integer.
	KindNumericParseFailure

	// KindStackIndexOutOfRange means a command names a stack outside 1..N.
	KindStackIndexOutOfRange

	// KindInsufficientCrates is only produced under StrictPolicy, when a
	// command asks for more crates than the source stack holds.
	KindInsufficientCrates

	// KindIOFailure wraps the error returned while reading the input file.
	KindIOFailure
)

// String returns a short human-readable description of the kind.
func (k Kind) String() string {
	switch k {
	case KindMalformedCrateField:
		return "malformed crate field"
	case KindMissingKeyword:
		return "missing keyword"
	case KindNumericParseFailure:
		return "invalid number"
	case KindStackIndexOutOfRange:
		return "stack index out of range"
	case KindInsufficientCrates:
		return "insufficient crates"
	case KindIOFailure:
		return "read failure"
	default:
		return "unknown error"
	}
}

// Sentinel values for errors.Is. They match any *Error of the same Kind.
var (
	ErrMalformedCrateField  = &Error{Kind: KindMalformedCrateField}
	ErrMissingKeyword       = &Error{Kind: KindMissingKeyword}
	ErrNumericParseFailure  = &Error{Kind: KindNumericParseFailure}
	ErrStackIndexOutOfRange = &Error{Kind: KindStackIndexOutOfRange}
	ErrInsufficientCrates   = &Error{Kind: KindInsufficientCrates}
	ErrIOFailure            = &Error{Kind: KindIOFailure}
)

// Error is the single error type surfaced by parsing, building and
// simulating. Optional fields are left empty when they do not apply.
type Error struct {
	// Kind is the failure category.
	Kind Kind

	// LineNo is the 1-based input line the failure refers to, or 0.
	LineNo int

	// Field names the part of a command that failed ("count", "source",
	// "destination") or is empty.
	Field string

	// Token is the offending text: a raw diagram field, a missing keyword,
	// an unparsable number or a bad stack index.
	Token string

	// Line is the original input line, when known.
	Line string

	// Detail carries extra context such as the valid index range.
	Detail string

	// Err is the underlying cause, if any.
	Err error
}

// Error formats the failure as "line N: <kind> <field> "<token>" (<detail>) in "<line>": <cause>",
// omitting the parts that are empty.
func (e *Error) Error() string {
	var b strings.Builder
	if e.LineNo > 0 {
		fmt.Fprintf(&b, "line %d: ", e.LineNo)
	}
	b.WriteString(e.Kind.String())
	if e.Field != "" {
		b.WriteString(" ")
		b.WriteString(e.Field)
	}
	if e.Token != "" {
		fmt.Fprintf(&b, " %q", e.Token)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, " (%s)", e.Detail)
	}
	if e.Line != "" {
		fmt.Fprintf(&b, " in %q", e.Line)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying cause so errors.Is(err, fs.ErrNotExist)
// keeps working for read failures.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Kind == KindUnknown {
		return false
	}
	return e.Kind == t.Kind
}

// annotate stamps the input position onto err when it is an *Error that
// does not carry one yet. Other errors are returned unchanged.
func annotate(err error, lineNo int, line string) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	if e.LineNo == 0 {
		e.LineNo = lineNo
	}
	if e.Line == "" {
		e.Line = line
	}
	return err
}
