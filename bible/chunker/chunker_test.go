package chunker

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

// synthetic builds n runes of filler with a marker every step runes,
// starting at index 0.
func synthetic(n, step int, filler rune) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i%step == 0 {
			sb.WriteString(VerseMarker)
		} else {
			sb.WriteRune(filler)
		}
	}
	return sb.String()
}

func checkChunks(t *testing.T, text string, chunks []string, limit int) {
	t.Helper()
	if got := strings.Join(chunks, ""); got != text {
		t.Fatalf("chunks don't reassemble the input (got %d runes, want %d)", utf8.RuneCountInString(got), utf8.RuneCountInString(text))
	}
	for i, c := range chunks {
		if n := utf8.RuneCountInString(c); n >= limit {
			t.Errorf("chunk %d has %d runes, limit %d", i, n, limit)
		}
		if i > 0 && !strings.HasPrefix(c, VerseMarker) {
			t.Errorf("chunk %d doesn't start at a marker: %q", i, c[:10])
		}
	}
}

func TestSplitShortText(t *testing.T) {
	for _, text := range []string{"", "[1] Na początku", synthetic(1999, 100, 'a')} {
		chunks, err := Split(text, DefaultLimit)
		if err != nil {
			t.Fatalf("Split() error = %v", err)
		}
		if len(chunks) != 1 || chunks[0] != text {
			t.Errorf("Split(%d runes) = %d chunks, want the text unchanged", utf8.RuneCountInString(text), len(chunks))
		}
	}
}

func TestSplitSynthetic(t *testing.T) {
	text := synthetic(2500, 100, 'a')
	chunks, err := Split(text, DefaultLimit)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("Split() = %d chunks, want at least 2", len(chunks))
	}
	checkChunks(t, text, chunks, DefaultLimit)
	// right-most marker in [1800, 1999) is at 1900
	if n := utf8.RuneCountInString(chunks[0]); n != 1900 {
		t.Errorf("first chunk has %d runes, want 1900", n)
	}
}

func TestSplitExactlyLimit(t *testing.T) {
	text := synthetic(2000, 100, 'a')
	chunks, err := Split(text, DefaultLimit)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("Split(2000 runes) = %d chunks, want 2", len(chunks))
	}
	checkChunks(t, text, chunks, DefaultLimit)
}

func TestSplitLongText(t *testing.T) {
	text := synthetic(25000, 137, 'x')
	chunks, err := Split(text, DefaultLimit)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) < 13 {
		t.Errorf("Split(25000 runes) = %d chunks, want at least 13", len(chunks))
	}
	checkChunks(t, text, chunks, DefaultLimit)
}

func TestSplitFallbackWindow(t *testing.T) {
	// markers only every 700 runes: none in [1800, 1999), one at 1400
	text := synthetic(3000, 700, 'b')
	chunks, err := Split(text, DefaultLimit)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	checkChunks(t, text, chunks, DefaultLimit)
	if n := utf8.RuneCountInString(chunks[0]); n != 1400 {
		t.Errorf("first chunk has %d runes, want 1400", n)
	}
}

func TestSplitNoMarker(t *testing.T) {
	text := strings.Repeat("a", 2500)
	_, err := Split(text, DefaultLimit)
	if !errors.Is(err, ErrNoSplitPoint) {
		t.Fatalf("Split() error = %v, want ErrNoSplitPoint", err)
	}
	// a marker before the fallback window doesn't help
	text = "[1]" + strings.Repeat("a", 2500)
	if _, err := Split(text, DefaultLimit); !errors.Is(err, ErrNoSplitPoint) {
		t.Fatalf("Split() error = %v, want ErrNoSplitPoint", err)
	}
}

func TestSplitCountsRunes(t *testing.T) {
	// 'ż' is two bytes; 1500 runes is 3000 bytes but still one message
	text := synthetic(1500, 100, 'ż')
	chunks, err := Split(text, DefaultLimit)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("Split() = %d chunks, want 1", len(chunks))
	}
	text = synthetic(4200, 90, 'ą')
	chunks, err = Split(text, DefaultLimit)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	checkChunks(t, text, chunks, DefaultLimit)
}

func TestSplitterCustomMarker(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString("`Jan 3:16:`\n ")
		sb.WriteString(strings.Repeat("słowo ", 15))
	}
	text := sb.String()
	s := Splitter{Marker: "\n\n", Limit: DefaultLimit}
	chunks, err := s.Split(text)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if strings.Join(chunks, "") != text {
		t.Fatal("chunks don't reassemble the input")
	}
	for i, c := range chunks {
		if utf8.RuneCountInString(c) >= DefaultLimit {
			t.Errorf("chunk %d too long", i)
		}
		if i > 0 && !strings.HasPrefix(c, "\n\n") {
			t.Errorf("chunk %d doesn't start at a separator", i)
		}
	}
}

func TestSplitterRejectsBadSettings(t *testing.T) {
	if _, err := (Splitter{Marker: "", Limit: 2000}).Split("x"); err == nil {
		t.Error("empty marker accepted")
	}
	if _, err := (Splitter{Marker: "[", Limit: 500}).Split("x"); err == nil {
		t.Error("limit below the fallback window accepted")
	}
}

func TestFence(t *testing.T) {
	got := Fence([]string{"head ```[1] a  \n", "[2] b \n", "[3] c```"})
	want := []string{"head ```[1] a```", "```[2] b```", "```[3] c```"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Fence()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	single := Fence([]string{"only"})
	if single[0] != "only" {
		t.Errorf("Fence(single) = %q", single[0])
	}
}

func TestLines(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"short", "one\ntwo", 10, []string{"one\ntwo"}},
		{"newline cut", "aaaa\nbbbb\ncccc", 11, []string{"aaaa\nbbbb", "cccc"}},
		{"hard cut", "abcdefghij", 5, []string{"abcd", "efgh", "ij"}},
		{"runes", "żółćżółć\nę", 6, []string{"żółćż", "ółć\nę"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lines(tt.text, tt.limit)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lines(%q, %d) = %q, want %q", tt.text, tt.limit, got, tt.want)
			}
		})
	}
}
