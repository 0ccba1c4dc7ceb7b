package slack

import (
	"strings"

	"github.com/slack-go/slack"

	"github.com/michalplat/panibiblia/robot"
)

// MessageHeard is a noop; socket mode apps can't send typing notifications.
func (s *slackConnector) MessageHeard(u, c string) {}

// FormatHelp bolds the command part of a help line.
func (s *slackConnector) FormatHelp(input string) string {
	arr := strings.SplitN(input, " - ", 2)
	if len(arr) != 2 {
		return "*" + input + "*"
	}
	return "*" + arr[0] + "* - " + arr[1]
}

func (s *slackConnector) sendMessages(chanID string, msgs []string) robot.RetVal {
	for _, msg := range msgs {
		if _, _, err := s.api.PostMessage(chanID, slack.MsgOptionText(msg, false)); err != nil {
			s.Log(robot.Error, "Sending Slack message to %s: %v", chanID, err)
			return robot.FailedMessageSend
		}
	}
	return robot.Ok
}

// SendProtocolChannelMessage sends a message to a channel
func (s *slackConnector) SendProtocolChannelMessage(ch, msg string, f robot.MessageFormat, _ *robot.ConnectorMessage) robot.RetVal {
	chanID, ok := s.channelID(ch)
	if !ok {
		s.Log(robot.Error, "Slack channel ID not found for: %s", ch)
		return robot.ChannelNotFound
	}
	return s.sendMessages(chanID, slackifyMessage("", msg, f, s.maxMessageSplit))
}

// SendProtocolUserChannelMessage sends a message to a user in a channel
func (s *slackConnector) SendProtocolUserChannelMessage(uid, uname, ch, msg string, f robot.MessageFormat, _ *robot.ConnectorMessage) robot.RetVal {
	chanID, ok := s.channelID(ch)
	if !ok {
		s.Log(robot.Error, "Slack channel ID not found for: %s", ch)
		return robot.ChannelNotFound
	}
	prefix := ""
	if userID, ok := s.userID(uid); ok {
		prefix = "<@" + userID + ">: "
	} else if len(uname) > 0 {
		prefix = uname + ": "
	}
	return s.sendMessages(chanID, slackifyMessage(prefix, msg, f, s.maxMessageSplit))
}

// SendProtocolUserMessage sends a direct message to a user
func (s *slackConnector) SendProtocolUserMessage(u, msg string, f robot.MessageFormat, _ *robot.ConnectorMessage) robot.RetVal {
	userID, ok := s.userID(u)
	if !ok {
		return robot.UserNotFound
	}
	imID, ok := s.imChannel(userID)
	if !ok {
		return robot.FailedMessageSend
	}
	return s.sendMessages(imID, slackifyMessage("", msg, f, s.maxMessageSplit))
}

// JoinChannel joins a channel given it's human-readable name, e.g. "general"
func (s *slackConnector) JoinChannel(c string) robot.RetVal {
	chanID, ok := s.channelID(c)
	if !ok {
		return robot.ChannelNotFound
	}
	if _, _, _, err := s.api.JoinConversation(chanID); err != nil {
		s.Log(robot.Error, "Joining Slack channel %s: %v", c, err)
		return robot.FailedChannelJoin
	}
	return robot.Ok
}
