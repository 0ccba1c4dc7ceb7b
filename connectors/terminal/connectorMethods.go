package terminal

import (
	"fmt"
	"strings"

	"github.com/michalplat/panibiblia/robot"
)

func (tc *termConnector) MessageHeard(u, c string) {}

func (tc *termConnector) getUserInfo(u string) (*termUser, bool) {
	tc.RLock()
	defer tc.RUnlock()
	var i int
	var exists bool
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

func (tc *termConnector) getChannel(c string) string {
	if ch, ok := tc.ExtractID(c); ok {
		return strings.TrimPrefix(ch, "#")
	}
	return c
}

// FormatHelp returns the help line unchanged.
func (tc *termConnector) FormatHelp(input string) string {
	return input
}

// SendProtocolChannelMessage sends a message to a channel
func (tc *termConnector) SendProtocolChannelMessage(ch, msg string, f robot.MessageFormat, _ *robot.ConnectorMessage) robot.RetVal {
	return tc.sendMessage(tc.getChannel(ch), msg, f)
}

// SendProtocolUserChannelMessage sends a message to a user in a channel
func (tc *termConnector) SendProtocolUserChannelMessage(uid, uname, ch, msg string, f robot.MessageFormat, _ *robot.ConnectorMessage) robot.RetVal {
	if user, ok := tc.getUserInfo(uid); ok {
		uname = user.Name
	}
	return tc.sendMessage(tc.getChannel(ch), "@"+uname+" "+msg, f)
}

// SendProtocolUserMessage sends a direct message to a user
func (tc *termConnector) SendProtocolUserMessage(u string, msg string, f robot.MessageFormat, _ *robot.ConnectorMessage) robot.RetVal {
	user, exists := tc.getUserInfo(u)
	if !exists {
		return robot.UserNotFound
	}
	return tc.sendMessage(fmt.Sprintf("(dm:%s)", user.Name), msg, f)
}

// JoinChannel is a noop for the terminal
func (tc *termConnector) JoinChannel(c string) robot.RetVal {
	return robot.Ok
}
