package terminal

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/lnxjedi/readline"

	"github.com/michalplat/panibiblia/bot"
	"github.com/michalplat/panibiblia/robot"
)

func init() {
	bot.RegisterConnector("terminal", Initialize)
}

type termUser struct {
	Name       string `yaml:"Name"`       // username / handle
	InternalID string `yaml:"InternalID"` // connector internal identifier
	FullName   string `yaml:"FullName"`
}

type config struct {
	StartChannel string     `yaml:"StartChannel"` // the initial channel
	StartUser    string     `yaml:"StartUser"`    // the initial user name
	EOF          string     `yaml:"EOF"`          // command to send on EOF (ctrl-D), default "/quit"
	Users        []termUser `yaml:"Users"`
	Channels     []string   `yaml:"Channels"`
}

var lock sync.Mutex // package var lock
var started bool    // set when connector is started

// Initialize sets up the connector and returns a connector object
func Initialize(handler robot.Handler, l *log.Logger) robot.Connector {
	lock.Lock()
	if started {
		lock.Unlock()
		return nil
	}
	started = true
	lock.Unlock()

	var c config
	if err := handler.GetProtocolConfig(&c); err != nil {
		handler.Log(robot.Fatal, "Unable to retrieve protocol configuration: %v", err)
	}
	tc, err := newTermConnector(c)
	if err != nil {
		handler.Log(robot.Fatal, "Terminal connector: %v", err)
	}

	var histfile string
	if home, err := os.UserHomeDir(); err == nil {
		histfile = filepath.Join(home, ".panibiblia_history")
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            tc.prompt(),
		HistoryFile:       histfile,
		HistorySearchFold: true,
		EOFPrompt:         "exit",
	})
	if err != nil {
		handler.Log(robot.Fatal, "Starting readline: %v", err)
	}
	tc.reader = rl
	tc.width = readline.GetScreenWidth()
	tc.Handler = handler
	tc.SetTerminalWriter(tc.reader)
	return tc
}

// newTermConnector validates the configuration and builds the user indexes.
func newTermConnector(c config) (*termConnector, error) {
	tc := &termConnector{
		currentChannel: c.StartChannel,
		currentUser:    c.StartUser,
		eof:            "/quit",
		channels:       c.Channels,
		users:          c.Users,
		userMap:        make(map[string]int),
		userIDMap:      make(map[string]int),
		heard:          make(chan string),
	}
	if len(c.EOF) > 0 {
		tc.eof = c.EOF
	}
	for i, u := range c.Users {
		tc.userMap[u.Name] = i
		tc.userIDMap[u.InternalID] = i
	}
	if _, ok := tc.userMap[c.StartUser]; !ok {
		return nil, fmt.Errorf("start user \"%s\" not listed in Users array", c.StartUser)
	}
	if len(c.StartChannel) > 0 && !tc.hasChannel(c.StartChannel) {
		return nil, fmt.Errorf("start channel \"%s\" not listed in Channels array", c.StartChannel)
	}
	return tc, nil
}
