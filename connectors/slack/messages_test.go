package slack

import (
	"strings"
	"testing"

	"github.com/michalplat/panibiblia/robot"
)

func TestSlackifyMessage(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		msg    string
		f      robot.MessageFormat
		want   []string
	}{
		{"raw", "", "<@U1234567> hi & bye", robot.Raw, []string{"<@U1234567> hi & bye"}},
		{"fixed", "", "a < b", robot.Fixed, []string{"```a &lt; b```"}},
		{"variable", "", "*bold*", robot.Variable, []string{escapePad + "*bold" + escapePad + "*"}},
		{"prefix", "<@U1234567>: ", "hi", robot.Raw, []string{"<@U1234567>: hi"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slackifyMessage(tt.prefix, tt.msg, tt.f, 3)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("slackifyMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSlackifyMessageSplits(t *testing.T) {
	line := strings.Repeat("x", 999) + "\n"
	msg := strings.Repeat(line, 12)
	got := slackifyMessage("", msg, robot.Raw, 2)
	if len(got) != 3 || got[2] != "(message too long, truncated)" {
		t.Fatalf("slackifyMessage() returned %d messages", len(got))
	}
	for _, m := range got[:2] {
		if len(m) >= maxSize {
			t.Errorf("message of %d bytes exceeds %d", len(m), maxSize)
		}
	}
	if all := slackifyMessage("", msg, robot.Raw, 0); len(all) != 4 {
		t.Errorf("unlimited split returned %d messages, want 4", len(all))
	}
}

func TestFormatHelp(t *testing.T) {
	s := &slackConnector{}
	if got := s.FormatHelp("/ksiegi - lista ksiąg"); got != "*/ksiegi* - lista ksiąg" {
		t.Errorf("FormatHelp() = %q", got)
	}
}
