package verses

import (
	"errors"
	"strconv"
	"testing"
)

func TestParseSingle(t *testing.T) {
	for _, in := range []string{"0", "1", "5", "07", "176", "99999999999999999999999"} {
		sel, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", in, err)
		}
		if sel.From != in || sel.To != in || sel.Display != in {
			t.Errorf("Parse(%q) = %+v, want from=to=display=%q", in, sel, in)
		}
		if sel.IsRange() {
			t.Errorf("Parse(%q).IsRange() = true", in)
		}
	}
}

func TestParseRanges(t *testing.T) {
	for a := 1; a < 30; a++ {
		for b := a + 1; b <= 30; b++ {
			in := strconv.Itoa(a) + "-" + strconv.Itoa(b)
			sel, err := Parse(in)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", in, err)
			}
			if sel.From != strconv.Itoa(a) || sel.To != strconv.Itoa(b) || sel.Display != in {
				t.Errorf("Parse(%q) = %+v", in, sel)
			}
		}
	}
}

func TestParseKeepsLeadingZeros(t *testing.T) {
	sel, err := Parse("03-10")
	if err != nil {
		t.Fatalf("Parse(03-10) error = %v", err)
	}
	if sel.From != "03" || sel.To != "10" || sel.Display != "03-10" {
		t.Errorf("Parse(03-10) = %+v", sel)
	}
	// numeric, not lexical, comparison
	if _, err := Parse("9-10"); err != nil {
		t.Errorf("Parse(9-10) error = %v", err)
	}
	if _, err := Parse("010-9"); err == nil {
		t.Error("Parse(010-9) succeeded, want error")
	}
}

// A bare number is accepted while the same number written as a range is
// not; the range form requires strict ordering.
func TestParseEqualRangeRejected(t *testing.T) {
	if _, err := Parse("5-5"); !errors.Is(err, ErrInvalidVerseFormat) {
		t.Errorf("Parse(5-5) error = %v, want ErrInvalidVerseFormat", err)
	}
	sel, err := Parse("5")
	if err != nil {
		t.Fatalf("Parse(5) error = %v", err)
	}
	if sel.From != "5" || sel.To != "5" {
		t.Errorf("Parse(5) = %+v", sel)
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "a-b", "3-1", "1-2-3", "-", "5-", "-5", " 5", "5 ", "1,2", "x", "1--2", "１"} {
		_, err := Parse(in)
		if !errors.Is(err, ErrInvalidVerseFormat) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidVerseFormat", in, err)
			continue
		}
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Errorf("Parse(%q) error is %T, want *FormatError", in, err)
			continue
		}
		if fe.Input != in {
			t.Errorf("FormatError.Input = %q, want %q", fe.Input, in)
		}
	}
}

func TestLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"1", "2", true},
		{"2", "1", false},
		{"2", "2", false},
		{"9", "10", true},
		{"0009", "10", true},
		{"10", "009", false},
		{"0", "00", false},
		{"123456789012345678901", "123456789012345678902", true},
	}
	for _, tt := range tests {
		if got := less(tt.a, tt.b); got != tt.want {
			t.Errorf("less(%q, %q) = %t, want %t", tt.a, tt.b, got, tt.want)
		}
	}
}
