package test

import (
	"log"
	"sync"
	"testing"

	"github.com/michalplat/panibiblia/bot"
	"github.com/michalplat/panibiblia/robot"
)

// ExportTest lets integration tests safely supply the *testing.T
var ExportTest = struct {
	Test *testing.T
	sync.Mutex
}{}

type testUser struct {
	Name       string `yaml:"Name"`       // username / handle
	InternalID string `yaml:"InternalID"` // connector internal identifier
	FullName   string `yaml:"FullName"`
}

type config struct {
	BotName  string     `yaml:"BotName"` // the short name used for addressing the robot
	Users    []testUser `yaml:"Users"`
	Channels []string   `yaml:"Channels"`
}

func init() {
	bot.RegisterConnector("test", Initialize)
}

// Initialize sets up the connector and returns a connector object
func Initialize(h robot.Handler, l *log.Logger) robot.Connector {
	var c config

	if err := h.GetProtocolConfig(&c); err != nil {
		h.Log(robot.Fatal, "Unable to retrieve protocol configuration: %v", err)
	}

	ExportTest.Lock()
	t := ExportTest.Test
	ExportTest.Unlock()

	tc := &TestConnector{
		botName:   c.BotName,
		botID:     "deadbeef",
		users:     c.Users,
		userIDMap: make(map[string]int),
		userMap:   make(map[string]int),
		channels:  c.Channels,
		listener:  make(chan *TestMessage),
		speaking:  make(chan *TestMessage),
		test:      t,
		Handler:   h,
	}
	for i, u := range c.Users {
		tc.userIDMap[u.InternalID] = i
		tc.userMap[u.Name] = i
	}

	tc.SetBotID(tc.botID)
	tc.Log(robot.Info, "Set bot ID to %s", tc.botID)

	return tc
}
