package terminal

import (
	"io"
	"strings"
	"testing"

	"github.com/michalplat/panibiblia/robot"
)

// nullHandler supplies ExtractID; nothing else is needed here.
type nullHandler struct{}

func (nullHandler) IncomingMessage(*robot.ConnectorMessage)    {}
func (nullHandler) GetProtocolConfig(interface{}) error        { return nil }
func (nullHandler) SetBotID(string)                            {}
func (nullHandler) SetTerminalWriter(io.Writer)                {}
func (nullHandler) SetBotMention(string)                       {}
func (nullHandler) GetLogLevel() robot.LogLevel                { return robot.Info }
func (nullHandler) GetLogToFile() bool                         { return false }
func (nullHandler) GetConfigPath() string                      { return "." }
func (nullHandler) Log(robot.LogLevel, string, ...interface{}) {}
func (nullHandler) ExtractID(u string) (string, bool) {
	if strings.HasPrefix(u, "<") && strings.HasSuffix(u, ">") {
		return u[1 : len(u)-1], true
	}
	return u, false
}

func testConnector(t *testing.T) *termConnector {
	t.Helper()
	tc, err := newTermConnector(config{
		StartChannel: "general",
		StartUser:    "alice",
		Users: []termUser{
			{Name: "alice", InternalID: "u0001"},
			{Name: "bob", InternalID: "u0002"},
		},
		Channels: []string{"general", "random"},
	})
	if err != nil {
		t.Fatalf("newTermConnector() error = %v", err)
	}
	tc.Handler = nullHandler{}
	return tc
}

func TestNewTermConnectorValidates(t *testing.T) {
	users := []termUser{{Name: "alice", InternalID: "u0001"}}
	if _, err := newTermConnector(config{StartUser: "carol", Users: users}); err == nil {
		t.Error("unknown start user accepted")
	}
	if _, err := newTermConnector(config{StartUser: "alice", StartChannel: "nope", Users: users}); err == nil {
		t.Error("unknown start channel accepted")
	}
	tc, err := newTermConnector(config{StartUser: "alice", Users: users})
	if err != nil || tc.eof != "/quit" {
		t.Errorf("newTermConnector() = %v, %v", tc, err)
	}
}

func TestGetUserInfo(t *testing.T) {
	tc := testConnector(t)
	for _, u := range []string{"bob", "<u0002>"} {
		user, ok := tc.getUserInfo(u)
		if !ok || user.Name != "bob" {
			t.Errorf("getUserInfo(%q) = %v, %t", u, user, ok)
		}
	}
	if _, ok := tc.getUserInfo("<u9999>"); ok {
		t.Error("getUserInfo found a missing ID")
	}
	if ch := tc.getChannel("<#random>"); ch != "random" {
		t.Errorf("getChannel(<#random>) = %q", ch)
	}
}

func TestCommand(t *testing.T) {
	tc := testConnector(t)
	tests := []struct {
		input, want   string
		channel, user string
	}{
		{"|crandom", "Changed current channel to: random\n", "random", "alice"},
		{"|cnope", "Invalid channel\n", "random", "alice"},
		{"|c", "Changed current channel to: direct message\n", "", "alice"},
		{"|ubob", "Changed current user to: bob\n", "", "bob"},
		{"|ucarol", "Invalid user\n", "", "bob"},
		{"|u", "Invalid 0-length user\n", "", "bob"},
		{"|x", "Invalid terminal connector command\n", "", "bob"},
	}
	for _, tt := range tests {
		if got := tc.command(tt.input); got != tt.want {
			t.Errorf("command(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if tc.currentChannel != tt.channel || tc.currentUser != tt.user {
			t.Errorf("after %q: channel %q user %q", tt.input, tc.currentChannel, tc.currentUser)
		}
	}
	if p := tc.prompt(); p != "c:(direct)/u:bob -> " {
		t.Errorf("prompt() = %q", p)
	}
	if list := tc.command("|c?"); !strings.Contains(list, "'random'; type: '|crandom'") {
		t.Errorf("channel list = %q", list)
	}
}

func TestRender(t *testing.T) {
	if got := render("general", "```\nfixed\n```", robot.Fixed, 10); got != "general: ```\nfixed\n```\n" {
		t.Errorf("render(Fixed) = %q", got)
	}
	got := render("general", "a fairly long line of text", robot.Raw, 12)
	for _, line := range strings.Split(strings.TrimSuffix(got, "\n"), "\n") {
		if len(strings.TrimRight(line, " ")) > 12 {
			t.Errorf("render(Raw) line %q is wider than 12", line)
		}
	}
}
