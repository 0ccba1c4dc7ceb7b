// Package terminal implements a terminal console connector for trying out
// the robot and its plugins locally.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/lnxjedi/readline"

	"github.com/michalplat/panibiblia/robot"
)

const helpLine = "Terminal connector: Type '|c?' to list channels, '|u?' to list users\n"

// termConnector holds all the relevant data about a connection
type termConnector struct {
	currentChannel string             // The current channel for the user, empty for a DM
	currentUser    string             // The current user name
	eof            string             // command to send on ctrl-d (EOF)
	running        bool               // set on call to Run
	width          int                // width of terminal
	users          []termUser         // configured users
	userMap        map[string]int     // user name to index
	userIDMap      map[string]int     // user ID to index
	channels       []string           // the channels the robot is in
	heard          chan string        // when the user speaks
	reader         *readline.Instance // readline for speaking
	robot.Handler                     // bot API for connectors
	sync.RWMutex                      // shared mutex for locking connector data structures
}

func (tc *termConnector) prompt() string {
	channel := tc.currentChannel
	if len(channel) == 0 {
		channel = "(direct)"
	}
	return fmt.Sprintf("c:%s/u:%s -> ", channel, tc.currentUser)
}

func (tc *termConnector) write(s string) {
	tc.reader.Write([]byte(s))
}

func (tc *termConnector) Run(stop <-chan struct{}) {
	tc.Lock()
	if tc.running {
		tc.Unlock()
		return
	}
	tc.running = true
	tc.Unlock()

	quit := make(chan struct{})
	// listen loop
	go func() {
		for {
			line, err := tc.reader.Readline()
			var said string
			switch {
			case err == io.EOF || err == readline.ErrInterrupt:
				said = tc.eof
			case err != nil:
				continue
			default:
				said = strings.TrimSpace(line)
				if len(said) == 0 {
					tc.write(helpLine)
					continue
				}
			}
			select {
			case tc.heard <- said:
			case <-quit:
				return
			}
		}
	}()

	tc.write("Terminal connector running; Type '|c?' to list channels, '|u?' to list users\n")

loop:
	for {
		select {
		case <-stop:
			tc.Log(robot.Info, "Received stop in connector")
			close(quit)
			break loop
		case input := <-tc.heard:
			if input[0] == '|' {
				tc.Lock()
				tc.write(tc.command(input))
				tc.reader.SetPrompt(tc.prompt())
				tc.Unlock()
				continue
			}
			tc.RLock()
			var channelID string
			direct := false
			if len(tc.currentChannel) > 0 {
				channelID = "#" + tc.currentChannel
			} else {
				direct = true
			}
			ui := tc.users[tc.userMap[tc.currentUser]]
			botMsg := &robot.ConnectorMessage{
				Protocol:      "terminal",
				UserName:      ui.Name,
				UserID:        ui.InternalID,
				ChannelName:   tc.currentChannel,
				ChannelID:     channelID,
				MessageText:   input,
				DirectMessage: direct,
			}
			tc.RUnlock()
			tc.IncomingMessage(botMsg)
		}
	}
	tc.write("Terminal connector finished\n")
	tc.reader.Close()
}

// command handles the '|c' and '|u' connector commands and returns the
// text to show; the caller holds the lock.
func (tc *termConnector) command(input string) string {
	if len(input) < 2 {
		return helpLine
	}
	arg := strings.TrimSpace(input[2:])
	switch input[1] {
	case 'C', 'c':
		if arg == "?" {
			lines := []string{"Available channels:", "(direct message); type: '|c'"}
			for _, channel := range tc.channels {
				lines = append(lines, fmt.Sprintf("'%s'; type: '|c%s'", channel, channel))
			}
			return strings.Join(lines, "\n") + "\n"
		}
		if arg == "" {
			tc.currentChannel = ""
			return "Changed current channel to: direct message\n"
		}
		if !tc.hasChannel(arg) {
			return "Invalid channel\n"
		}
		tc.currentChannel = arg
		return fmt.Sprintf("Changed current channel to: %s\n", arg)
	case 'U', 'u':
		if arg == "?" {
			lines := []string{"Available users:"}
			for _, user := range tc.users {
				lines = append(lines, fmt.Sprintf("'%s'; type: '|u%s'", user.Name, user.Name))
			}
			return strings.Join(lines, "\n") + "\n"
		}
		if arg == "" {
			return "Invalid 0-length user\n"
		}
		if _, ok := tc.userMap[arg]; !ok {
			return "Invalid user\n"
		}
		tc.currentUser = arg
		return fmt.Sprintf("Changed current user to: %s\n", arg)
	default:
		return "Invalid terminal connector command\n"
	}
}

func (tc *termConnector) hasChannel(c string) bool {
	for _, channel := range tc.channels {
		if channel == c {
			return true
		}
	}
	return false
}
