// Package chunker splits long formatted text into pieces that fit in a chat
// message, cutting only in front of a marker such as the "[n]" verse number
// prefix of the scripture API's text output.
package chunker

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultLimit is the message size limit of the primary chat protocol.
const DefaultLimit = 2000

// VerseMarker prefixes every verse number in the scripture API's text.
const VerseMarker = "["

// Split windows, measured back from the limit. For a 2000 character limit the
// preferred window is [1800, 1999) and the fallback is [1000, 1999). A single
// verse is well under 450 characters, so the fallback always holds a marker
// in well-formed text.
const (
	preferredReach = 200
	fallbackReach  = 1000
)

// ErrNoSplitPoint means a chunk that needed splitting had no marker in the
// fallback window; the upstream text is malformed.
var ErrNoSplitPoint = errors.New("no split point found")

// Splitter splits text at occurrences of Marker so that every chunk is
// shorter than Limit characters (runes).
type Splitter struct {
	Marker string
	Limit  int
}

// Split splits text at verse markers into chunks shorter than limit.
func Split(text string, limit int) ([]string, error) {
	return Splitter{Marker: VerseMarker, Limit: limit}.Split(text)
}

// Split returns text in order as one or more chunks. Concatenating the
// chunks reproduces text exactly. Text shorter than the limit comes back as
// a single chunk.
func (s Splitter) Split(text string) ([]string, error) {
	limit := s.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if s.Marker == "" {
		return nil, fmt.Errorf("chunker: empty marker")
	}
	if limit <= fallbackReach+1 {
		return nil, fmt.Errorf("chunker: limit %d too small", limit)
	}
	if utf8.RuneCountInString(text) < limit {
		return []string{text}, nil
	}

	rest := []rune(text)
	var chunks []string
	for len(rest) >= limit {
		at := s.lastMarker(rest, limit-preferredReach, limit-1)
		if at < 0 {
			at = s.lastMarker(rest, limit-fallbackReach, limit-1)
		}
		if at < 0 {
			return chunks, fmt.Errorf("%w: no %q between characters %d and %d", ErrNoSplitPoint, s.Marker, limit-fallbackReach, limit-1)
		}
		chunks = append(chunks, string(rest[:at]))
		rest = rest[at:]
	}
	return append(chunks, string(rest)), nil
}

// lastMarker returns the rune index of the right-most marker starting in
// [start, end) of text, or -1. The marker may extend past end.
func (s Splitter) lastMarker(text []rune, start, end int) int {
	marker := []rune(s.Marker)
	for i := end - 1; i >= start; i-- {
		if i+len(marker) > len(text) {
			continue
		}
		if string(text[i:i+len(marker)]) == s.Marker {
			return i
		}
	}
	return -1
}

// Fence wraps each chunk of a split code block so every message renders as
// fixed-width text on its own: the first chunk is closed, middle chunks are
// opened and closed, the last chunk is opened. The text before the split is
// expected to open the fence and the text after to close it.
func Fence(chunks []string) []string {
	const fence = "```"
	out := make([]string, len(chunks))
	last := len(chunks) - 1
	for i, c := range chunks {
		switch {
		case len(chunks) == 1:
			out[i] = c
		case i == 0:
			out[i] = strings.TrimRight(c, " \t\r\n") + fence
		case i == last:
			out[i] = fence + c
		default:
			out[i] = fence + strings.TrimRight(c, " \t\r\n") + fence
		}
	}
	return out
}

// Lines splits plain chat text into chunks of fewer than limit runes,
// cutting after the last newline that fits, or hard at the limit when a
// line is too long. The newline at a cut is dropped.
func Lines(text string, limit int) []string {
	if limit <= 1 {
		limit = DefaultLimit
	}
	s := Splitter{Marker: "\n"}
	rest := []rune(text)
	var chunks []string
	for len(rest) >= limit {
		at := s.lastMarker(rest, 1, limit-1)
		if at < 0 {
			chunks = append(chunks, string(rest[:limit-1]))
			rest = rest[limit-1:]
			continue
		}
		chunks = append(chunks, string(rest[:at]))
		rest = rest[at+1:]
	}
	return append(chunks, string(rest))
}
