package discord

import (
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/michalplat/panibiblia/robot"
)

// recorder is a robot.Handler that keeps what the connector hands it.
type recorder struct {
	incoming chan *robot.ConnectorMessage
	sync.Mutex
	botID, mention string
}

func newRecorder() *recorder {
	return &recorder{incoming: make(chan *robot.ConnectorMessage, 4)}
}

func (r *recorder) IncomingMessage(m *robot.ConnectorMessage) { r.incoming <- m }
func (r *recorder) GetProtocolConfig(interface{}) error       { return nil }
func (r *recorder) SetBotID(id string) {
	r.Lock()
	r.botID = id
	r.Unlock()
}
func (r *recorder) SetTerminalWriter(io.Writer) {}
func (r *recorder) SetBotMention(m string) {
	r.Lock()
	r.mention = m
	r.Unlock()
}
func (r *recorder) GetLogLevel() robot.LogLevel                { return robot.Info }
func (r *recorder) GetLogToFile() bool                         { return false }
func (r *recorder) GetConfigPath() string                      { return "." }
func (r *recorder) Log(robot.LogLevel, string, ...interface{}) {}
func (r *recorder) ExtractID(u string) (string, bool) {
	if strings.HasPrefix(u, "<") && strings.HasSuffix(u, ">") {
		return u[1 : len(u)-1], true
	}
	return u, false
}

type sent struct {
	channel, content string
	mentions         *discordgo.MessageAllowedMentions
}

// fakeSession stands in for *discordgo.Session.
type fakeSession struct {
	sync.Mutex
	sent     []sent
	dms      []string
	typing   []string
	openErrs int
	opened   bool
	closed   bool
}

func (f *fakeSession) Open() error {
	f.Lock()
	defer f.Unlock()
	if f.openErrs > 0 {
		f.openErrs--
		return errors.New("gateway unavailable")
	}
	f.opened = true
	return nil
}

func (f *fakeSession) Close() error {
	f.Lock()
	f.closed = true
	f.Unlock()
	return nil
}

func (f *fakeSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.Lock()
	defer f.Unlock()
	if channelID == "gone" {
		return nil, errors.New("HTTP 404 Not Found")
	}
	f.sent = append(f.sent, sent{channelID, data.Content, data.AllowedMentions})
	return &discordgo.Message{ChannelID: channelID, Content: data.Content}, nil
}

func (f *fakeSession) UserChannelCreate(recipientID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.Lock()
	defer f.Unlock()
	f.dms = append(f.dms, recipientID)
	return &discordgo.Channel{ID: "dm" + recipientID, Type: discordgo.ChannelTypeDM}, nil
}

func (f *fakeSession) ChannelTyping(channelID string, _ ...discordgo.RequestOption) error {
	f.Lock()
	f.typing = append(f.typing, channelID)
	f.Unlock()
	return nil
}

func message(id, channel, guild string, author *discordgo.User, content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        id,
		ChannelID: channel,
		GuildID:   guild,
		Author:    author,
		Content:   content,
	}}
}

func TestEvents(t *testing.T) {
	rec := newRecorder()
	dc := newConnector(config{}, &fakeSession{}, rec)

	dc.onReady(nil, &discordgo.Ready{User: &discordgo.User{ID: "42", Username: "Biblia"}})
	rec.Lock()
	if rec.botID != "42" || rec.mention != "42" {
		t.Errorf("bot id %q, mention %q", rec.botID, rec.mention)
	}
	rec.Unlock()

	dc.onGuildCreate(nil, &discordgo.GuildCreate{Guild: &discordgo.Guild{
		ID:   "g1",
		Name: "parafia",
		Channels: []*discordgo.Channel{
			{ID: "c1", Name: "general", GuildID: "g1"},
			{ID: "c2", Name: "random", GuildID: "g1"},
		},
	}})
	dc.onChannelCreate(nil, &discordgo.ChannelCreate{Channel: &discordgo.Channel{ID: "c3", Name: "modlitwy", GuildID: "g1"}})
	dc.onChannelCreate(nil, &discordgo.ChannelCreate{Channel: &discordgo.Channel{ID: "d5", Type: discordgo.ChannelTypeDM}})
	if id, ok := dc.channelID("#modlitwy"); !ok || id != "c3" {
		t.Errorf("channelID(#modlitwy) = %q, %t", id, ok)
	}

	ania := &discordgo.User{ID: "7", Username: "ania"}
	dc.onMessageCreate(nil, message("m1", "c1", "g1", ania, "<@42> ksiegi"))
	dc.onMessageCreate(nil, message("m2", "d1", "", ania, "wersy J 3 16"))
	dc.onMessageCreate(nil, message("m3", "c1", "g1", &discordgo.User{ID: "9", Username: "inny", Bot: true}, "hej"))
	dc.onMessageCreate(nil, message("m4", "c2", "g1", &discordgo.User{ID: "42", Username: "Biblia", Bot: true}, "Tak?"))

	tests := []struct {
		id, channelName, text string
		direct, self          bool
	}{
		{"m1", "general", "<@42> ksiegi", false, false},
		{"m2", "", "wersy J 3 16", true, false},
		{"m4", "random", "Tak?", false, true},
	}
	for _, tt := range tests {
		select {
		case m := <-rec.incoming:
			if m.MessageID != tt.id || m.ChannelName != tt.channelName || m.MessageText != tt.text ||
				m.DirectMessage != tt.direct || m.SelfMessage != tt.self || m.Protocol != "discord" {
				t.Errorf("incoming = %+v, want %+v", m, tt)
			}
		case <-time.After(time.Second):
			t.Fatalf("message %s never arrived", tt.id)
		}
	}
	select {
	case m := <-rec.incoming:
		t.Errorf("unexpected message %+v", m)
	default:
	}
	if dm, err := dc.openDM("7"); err != nil || dm != "d1" {
		t.Errorf("openDM(7) = %q, %v; want the channel the DM came from", dm, err)
	}
}

func TestSendMessages(t *testing.T) {
	fake := &fakeSession{}
	dc := newConnector(config{}, fake, newRecorder())
	dc.channelIDs["general"] = "c1"
	dc.userIDs["ania"] = "7"

	if ret := dc.SendProtocolChannelMessage("<c1>", "Tak?", robot.Raw, nil); ret != robot.Ok {
		t.Fatalf("SendProtocolChannelMessage() = %s", ret)
	}
	if ret := dc.SendProtocolUserChannelMessage("<7>", "ania", "general", "kod", robot.Fixed, nil); ret != robot.Ok {
		t.Fatalf("SendProtocolUserChannelMessage() = %s", ret)
	}
	if ret := dc.SendProtocolUserMessage("ania", "cześć", robot.Raw, nil); ret != robot.Ok {
		t.Fatalf("SendProtocolUserMessage() = %s", ret)
	}
	if ret := dc.SendProtocolUserMessage("ania", "znowu", robot.Raw, nil); ret != robot.Ok {
		t.Fatalf("second SendProtocolUserMessage() = %s", ret)
	}
	if ret := dc.SendProtocolChannelMessage("nieznany", "x", robot.Raw, nil); ret != robot.ChannelNotFound {
		t.Errorf("unknown channel = %s", ret)
	}
	if ret := dc.SendProtocolUserMessage("ktos", "x", robot.Raw, nil); ret != robot.UserNotFound {
		t.Errorf("unknown user = %s", ret)
	}
	if ret := dc.SendProtocolChannelMessage("<gone>", "x", robot.Raw, nil); ret != robot.FailedMessageSend {
		t.Errorf("failed send = %s", ret)
	}
	dc.MessageHeard("ania", "<c1>")

	want := []sent{
		{channel: "c1", content: "Tak?"},
		{channel: "c1", content: "<@7>"},
		{channel: "c1", content: "```kod```"},
		{channel: "dm7", content: "cześć"},
		{channel: "dm7", content: "znowu"},
	}
	fake.Lock()
	defer fake.Unlock()
	if len(fake.sent) != len(want) {
		t.Fatalf("sent %d messages, want %d: %+v", len(fake.sent), len(want), fake.sent)
	}
	for i := range want {
		got := fake.sent[i]
		if got.channel != want[i].channel || got.content != want[i].content {
			t.Errorf("message %d = %+v, want %+v", i, got, want[i])
		}
		if p := got.mentions; p == nil || len(p.Parse) != 1 || p.Parse[0] != discordgo.AllowedMentionTypeUsers {
			t.Errorf("message %d allowed mentions = %+v", i, p)
		}
	}
	if len(fake.dms) != 1 {
		t.Errorf("opened %d DM channels, want 1 cached", len(fake.dms))
	}
	if len(fake.typing) != 1 || fake.typing[0] != "c1" {
		t.Errorf("typing = %v", fake.typing)
	}
}

func TestRun(t *testing.T) {
	fake := &fakeSession{openErrs: 1}
	dc := newConnector(config{}, fake, newRecorder())
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		dc.Run(stop)
		close(done)
	}()
	deadline := time.After(5 * time.Second)
	for {
		fake.Lock()
		opened := fake.opened
		fake.Unlock()
		if opened {
			break
		}
		select {
		case <-deadline:
			t.Fatal("session never opened after a failed attempt")
		case <-time.After(20 * time.Millisecond):
		}
	}
	close(stop)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run didn't return after stop")
	}
	fake.Lock()
	defer fake.Unlock()
	if !fake.closed {
		t.Error("session wasn't closed on stop")
	}
}

func TestDiscordifyMessage(t *testing.T) {
	if got := discordifyMessage("", "*a*_b_", robot.Variable, 5); len(got) != 1 || got[0] != `\*a\*\_b\_` {
		t.Errorf("Variable = %q", got)
	}
	long := strings.Repeat(strings.Repeat("ż", 99)+"\n", 50)
	got := discordifyMessage("", long, robot.Raw, 2)
	if len(got) != 3 || got[2] != "(wiadomość za długa, obcięta)" {
		t.Fatalf("split into %d messages", len(got))
	}
	for _, m := range got {
		if n := len([]rune(m)); n >= maxSize {
			t.Errorf("message has %d characters", n)
		}
	}
}
