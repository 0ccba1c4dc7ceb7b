package test

import (
	"errors"
	"time"
)

/* testMethods.go - methods specific to the test connector */

// SendBotMessage for tests to send messages to the 'bot
func (tc *TestConnector) SendBotMessage(msg *TestMessage) {
	if msg.Channel != "" && !tc.hasChannel(msg.Channel) {
		tc.test.Errorf("Invalid channel: %s", msg.Channel)
	}
	tc.RLock()
	_, known := tc.userIDMap[msg.User]
	tc.RUnlock()
	if msg.User == "" {
		tc.test.Errorf("Invalid 0-length user")
	} else if !known {
		tc.test.Errorf("Invalid user: %s", msg.User)
	}
	select {
	case tc.listener <- msg:
		tc.test.Logf("Message sent to robot: %v", msg)
	case <-time.After(200 * time.Millisecond):
		tc.test.Errorf("Timed out sending; user: \"%s\", channel: \"%s\", message: \"%s\"", msg.User, msg.Channel, msg.Message)
	}
}

// GetBotMessage for tests to get replies
func (tc *TestConnector) GetBotMessage() (*TestMessage, error) {
	select {
	case incoming := <-tc.speaking:
		message := []rune(incoming.Message)
		if len(message) > 16 {
			message = append(message[0:16], []rune(" ...")...)
		}
		tc.test.Logf("Reply received from robot: u:%s, c:%s, m:%s", incoming.User, incoming.Channel, string(message))
		return incoming, nil
	case <-time.After(4 * time.Second):
		return nil, errors.New("timeout waiting for reply from robot")
	}
}
