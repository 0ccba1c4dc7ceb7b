// Package test implements a test connector for automated black box testing
// of the robot and its plugins.
package test

import (
	"sync"
	"testing"
	"time"

	"github.com/michalplat/panibiblia/robot"
)

// TestMessage is for sending messages to the robot, and receiving its
// replies. An empty Channel means a direct message.
type TestMessage struct {
	User, Channel, Message string
}

// BotMessage is what the robot sends through the connector
type BotMessage struct {
	User, Channel, Message string
	Format                 robot.MessageFormat
}

// TestConnector holds all the relevant data about a connection
type TestConnector struct {
	botName       string            // human-readable name of bot
	botID         string            // internal bot ID
	users         []testUser        // configured users
	userIDMap     map[string]int    // user ID to index in users
	userMap       map[string]int    // user name to index in users
	channels      []string          // the channels the robot is in
	listener      chan *TestMessage // input channel for test functions to send messages from a user
	speaking      chan *TestMessage // output channel for test functions to get messages from the bot
	test          *testing.T        // for the connector to log
	robot.Handler                   // bot API for connectors
	sync.RWMutex                    // shared mutex for locking connector data structures
}

// Run starts the main loop for the test connector
func (tc *TestConnector) Run(stop <-chan struct{}) {
loop:
	for {
		select {
		case <-stop:
			tc.Log(robot.Debug, "Received stop in connector")
			tc.test.Log("Received stop in connector")
			break loop
		case msg := <-tc.listener:
			var userName, channelID string
			tc.RLock()
			if i, exists := tc.userIDMap[msg.User]; exists {
				userName = tc.users[i].Name
			}
			tc.RUnlock()
			direct := false
			if len(msg.Channel) > 0 {
				channelID = "#" + msg.Channel
			} else {
				direct = true
			}
			tc.IncomingMessage(&robot.ConnectorMessage{
				Protocol:      "Test",
				UserName:      userName,
				UserID:        msg.User,
				ChannelName:   msg.Channel,
				ChannelID:     channelID,
				DirectMessage: direct,
				MessageText:   msg.Message,
				MessageObject: msg,
				Client:        tc,
			})
		}
	}
}

func (tc *TestConnector) hasChannel(c string) bool {
	tc.RLock()
	defer tc.RUnlock()
	for _, channel := range tc.channels {
		if channel == c {
			return true
		}
	}
	return false
}

// Public 'bot methods all call sendMessage to send a message to a user/channel
func (tc *TestConnector) sendMessage(msg *BotMessage) robot.RetVal {
	if msg.Channel == "" && msg.User == "" {
		tc.test.Errorf("Invalid empty user and channel")
		return robot.ChannelNotFound
	}
	if msg.Channel != "" && !tc.hasChannel(msg.Channel) {
		tc.test.Errorf("Channel not found: %s", msg.Channel)
		return robot.ChannelNotFound
	}
	if msg.User != "" {
		tc.RLock()
		_, found := tc.userMap[msg.User]
		tc.RUnlock()
		if !found {
			tc.test.Errorf("User not found: %s", msg.User)
			return robot.UserNotFound
		}
	}
	spoken := &TestMessage{
		User:    msg.User,
		Channel: msg.Channel,
		Message: msg.Message,
	}
	select {
	case tc.speaking <- spoken:
	case <-time.After(2 * time.Second):
		return robot.TimeoutExpired
	}
	return robot.Ok
}
