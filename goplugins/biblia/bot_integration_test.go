package biblia

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/michalplat/panibiblia/bot"
	testc "github.com/michalplat/panibiblia/connectors/test"
)

const (
	aliceID = "u0001"
	bobID   = "u0002"
	general = "general"
	null    = ""
)

const robotYaml = `
Protocol: test
AdminUsers: [ "alice" ]
Alias: "/"
BotInfo:
  UserName: biblia
  FullName: Pani Biblia
DefaultChannels: [ "general", "random" ]
LogLevel: debug
ProtocolConfig:
  BotName: biblia
  Users:
  - Name: alice
    InternalID: u0001
  - Name: bob
    InternalID: u0002
  Channels: [ "general", "random" ]
`

func setup(t *testing.T, baseURL string) (<-chan struct{}, *testc.TestConnector) {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"conf/robot.yaml":          robotYaml,
		"conf/plugins/biblia.yaml": "Config:\n  APIToken: token\n  BaseURL: " + baseURL + "\n  AdminContact: ks. Admin\n",
	}
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	testc.ExportTest.Lock()
	testc.ExportTest.Test = t
	testc.ExportTest.Unlock()
	done, conn := bot.StartTest(dir, filepath.Join(dir, "robot.log"), t)
	return done, conn.(*testc.TestConnector)
}

func expect(t *testing.T, conn *testc.TestConnector, user, channel, prefix string) *testc.TestMessage {
	t.Helper()
	reply, err := conn.GetBotMessage()
	if err != nil {
		t.Fatalf("waiting for %q: %v", prefix, err)
	}
	if reply.User != user || reply.Channel != channel || !strings.HasPrefix(reply.Message, prefix) {
		t.Errorf("reply = u:%q c:%q m:%q, want u:%q c:%q prefix %q", reply.User, reply.Channel, reply.Message, user, channel, prefix)
	}
	return reply
}

func TestBotCommands(t *testing.T) {
	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	defer srv.Close()
	done, conn := setup(t, srv.URL)

	conn.SendBotMessage(&testc.TestMessage{User: aliceID, Channel: general, Message: "/wersy J 3 16-17"})
	expect(t, conn, null, general, "**`Ewangelia Jana 3, 16-17, Uwspółcześniona Biblia Gdańska:`**")

	conn.SendBotMessage(&testc.TestMessage{User: aliceID, Channel: general, Message: "/wersy 1 Kor 13 4-8"})
	expect(t, conn, null, general, "**`1 List do Koryntian 13, 4-8, Uwspółcześniona Biblia Gdańska:`**")

	conn.SendBotMessage(&testc.TestMessage{User: bobID, Channel: general, Message: "biblia, wersy Rdz 999 1"})
	expect(t, conn, null, general, "Nie ma rozdziału o numerze `999`")

	conn.SendBotMessage(&testc.TestMessage{User: bobID, Channel: general, Message: "/Księgi"})
	for i := 0; i < 3; i++ {
		expect(t, conn, null, general, "```\n")
	}

	conn.SendBotMessage(&testc.TestMessage{User: bobID, Channel: null, Message: "skróty Rdz"})
	expect(t, conn, "bob", null, "Gen, Księga Rodzaju")

	conn.SendBotMessage(&testc.TestMessage{User: aliceID, Channel: general, Message: "/biblia pomoc"})
	expect(t, conn, null, general, "> Pani Biblia")

	if api.requested("GEN.999") {
		t.Error("a verse request was made for chapter 999")
	}

	conn.SendBotMessage(&testc.TestMessage{User: aliceID, Channel: general, Message: "/quit"})
	expect(t, conn, "alice", general, "Ok, I'm shutting down")
	<-done
}
