// Package verses parses the verse argument of a lookup: a single verse
// number ("7") or an ascending range ("1-15").
package verses

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ErrInvalidVerseFormat is wrapped by every error Parse returns.
var ErrInvalidVerseFormat = errors.New("invalid verse format")

// FormatError carries the offending input so it can be echoed back to the
// user.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %q", ErrInvalidVerseFormat, e.Input)
	}
	return fmt.Sprintf("%s: %q: %s", ErrInvalidVerseFormat, e.Input, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return ErrInvalidVerseFormat
}

// Selection is a validated verse selection. From and To keep the digits as
// typed, leading zeros included.
type Selection struct {
	From    string
	To      string
	Display string
}

// IsRange reports whether the selection spans more than one verse.
func (s Selection) IsRange() bool {
	return s.From != s.To
}

func (s Selection) String() string {
	return s.Display
}

type verseGrammar struct {
	From string  `parser:"@Number"`
	To   *string `parser:"( \"-\" @Number )?"`
}

// Only ASCII digits and a dash are valid; anything else fails in the lexer.
var verseLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Dash", Pattern: `-`},
})

var verseParser = participle.MustBuild[verseGrammar](
	participle.Lexer(verseLexer),
)

// Parse validates raw and returns the Selection it describes. A bare number
// selects one verse. A dashed range must be strictly ascending, so "5-5"
// fails even though "5" succeeds.
func Parse(raw string) (Selection, error) {
	if raw == "" {
		return Selection{}, &FormatError{Input: raw, Reason: "empty"}
	}
	parsed, err := verseParser.ParseString("", raw)
	if err != nil {
		return Selection{}, &FormatError{Input: raw, Reason: err.Error()}
	}
	if parsed.To == nil {
		return Selection{From: parsed.From, To: parsed.From, Display: parsed.From}, nil
	}
	to := *parsed.To
	if !less(parsed.From, to) {
		return Selection{}, &FormatError{Input: raw, Reason: "range must be ascending"}
	}
	return Selection{
		From:    parsed.From,
		To:      to,
		Display: parsed.From + "-" + to,
	}, nil
}

// less compares two digit strings numerically without converting them, so
// arbitrarily long input can't overflow.
func less(a, b string) bool {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
