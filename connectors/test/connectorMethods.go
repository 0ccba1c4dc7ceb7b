package test

import (
	"strings"

	"github.com/michalplat/panibiblia/robot"
)

func (tc *TestConnector) getUserInfo(u string) (*testUser, bool) {
	var i int
	var exists bool
	tc.RLock()
	defer tc.RUnlock()
	if id, ok := tc.ExtractID(u); ok {
		i, exists = tc.userIDMap[id]
	} else {
		i, exists = tc.userMap[u]
	}
	if exists {
		return &tc.users[i], true
	}
	return nil, false
}

func (tc *TestConnector) getChannel(c string) string {
	if ch, ok := tc.ExtractID(c); ok {
		return strings.TrimPrefix(ch, "#")
	}
	return c
}

// MessageHeard indicates to the user a message was heard;
// for test/terminal it's a noop.
func (tc *TestConnector) MessageHeard(u, c string) {
}

// SendProtocolChannelMessage sends a message to a channel
func (tc *TestConnector) SendProtocolChannelMessage(ch, mesg string, f robot.MessageFormat, _ *robot.ConnectorMessage) robot.RetVal {
	return tc.sendMessage(&BotMessage{
		Channel: tc.getChannel(ch),
		Message: mesg,
		Format:  f,
	})
}

// SendProtocolUserChannelMessage sends a message to a user in a channel
func (tc *TestConnector) SendProtocolUserChannelMessage(uid, uname, ch, mesg string, f robot.MessageFormat, _ *robot.ConnectorMessage) robot.RetVal {
	if user, exists := tc.getUserInfo(uid); exists {
		uname = user.Name
	}
	return tc.sendMessage(&BotMessage{
		User:    uname,
		Channel: tc.getChannel(ch),
		Message: mesg,
		Format:  f,
	})
}

// SendProtocolUserMessage sends a direct message to a user
func (tc *TestConnector) SendProtocolUserMessage(u string, mesg string, f robot.MessageFormat, _ *robot.ConnectorMessage) robot.RetVal {
	user, exists := tc.getUserInfo(u)
	if !exists {
		return robot.UserNotFound
	}
	return tc.sendMessage(&BotMessage{
		User:    user.Name,
		Message: mesg,
		Format:  f,
	})
}

// JoinChannel is a noop for the test connector
func (tc *TestConnector) JoinChannel(c string) robot.RetVal {
	return robot.Ok
}

// FormatHelp returns a helpline unchanged.
func (tc *TestConnector) FormatHelp(input string) string {
	return input
}
