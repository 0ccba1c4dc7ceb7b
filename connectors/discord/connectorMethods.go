package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/michalplat/panibiblia/bible/chunker"
	"github.com/michalplat/panibiblia/robot"
)

// maxSize is the Discord message content limit, in characters.
const maxSize = chunker.DefaultLimit

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "~", `\~`, "|", `\|`, ">", `\>`,
)

// discordifyMessage applies the message format and splits the result into
// messages under the Discord limit.
func discordifyMessage(prefix, msg string, f robot.MessageFormat, maxSplit int) []string {
	limit := maxSize
	switch f {
	case robot.Variable:
		msg = markdownEscaper.Replace(msg)
	case robot.Fixed:
		limit -= 6
	}
	chunks := chunker.Lines(prefix+msg, limit)
	truncated := false
	if maxSplit > 0 && len(chunks) > maxSplit {
		chunks = chunks[:maxSplit]
		truncated = true
	}
	msgs := make([]string, 0, len(chunks)+1)
	for _, c := range chunks {
		if f == robot.Fixed {
			c = "```" + c + "```"
		}
		msgs = append(msgs, c)
	}
	if truncated {
		msgs = append(msgs, "(wiadomość za długa, obcięta)")
	}
	return msgs
}

func (dc *discordConnector) channelID(ch string) (string, bool) {
	if id, ok := dc.ExtractID(ch); ok {
		return id, true
	}
	dc.RLock()
	defer dc.RUnlock()
	id, ok := dc.channelIDs[strings.TrimPrefix(ch, "#")]
	return id, ok
}

func (dc *discordConnector) userID(u string) (string, bool) {
	if id, ok := dc.ExtractID(u); ok {
		return id, true
	}
	dc.RLock()
	defer dc.RUnlock()
	id, ok := dc.userIDs[strings.TrimPrefix(u, "@")]
	return id, ok
}

// mentionUsers lets replies ping users but never roles or @everyone.
var mentionUsers = &discordgo.MessageAllowedMentions{
	Parse: []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeUsers},
}

func (dc *discordConnector) sendMessages(channelID string, msgs []string) robot.RetVal {
	for _, m := range msgs {
		_, err := dc.api.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
			Content:         m,
			AllowedMentions: mentionUsers,
		})
		if err != nil {
			dc.Log(robot.Error, "Sending Discord message to %s: %v", channelID, err)
			return robot.FailedMessageSend
		}
	}
	return robot.Ok
}

// MessageHeard shows the typing indicator in the channel.
func (dc *discordConnector) MessageHeard(u, c string) {
	id, ok := dc.channelID(c)
	if !ok {
		if uid, ok := dc.userID(u); ok {
			dc.RLock()
			id, ok = dc.dmChannels[uid]
			dc.RUnlock()
		}
		if !ok {
			return
		}
	}
	if err := dc.api.ChannelTyping(id); err != nil {
		dc.Log(robot.Debug, "Triggering typing in %s: %v", id, err)
	}
}

// FormatHelp bolds the command part of a help line.
func (dc *discordConnector) FormatHelp(input string) string {
	arr := strings.SplitN(input, " - ", 2)
	if len(arr) != 2 {
		return "**" + input + "**"
	}
	return "**" + arr[0] + "** - " + arr[1]
}

// SendProtocolChannelMessage sends a message to a channel
func (dc *discordConnector) SendProtocolChannelMessage(ch, msg string, f robot.MessageFormat, _ *robot.ConnectorMessage) robot.RetVal {
	id, ok := dc.channelID(ch)
	if !ok {
		dc.Log(robot.Error, "Discord channel not found: %s", ch)
		return robot.ChannelNotFound
	}
	return dc.sendMessages(id, discordifyMessage("", msg, f, dc.maxMessageSplit))
}

// SendProtocolUserChannelMessage sends a message to a user in a channel,
// mentioning them.
func (dc *discordConnector) SendProtocolUserChannelMessage(uid, uname, ch, msg string, f robot.MessageFormat, _ *robot.ConnectorMessage) robot.RetVal {
	id, ok := dc.channelID(ch)
	if !ok {
		dc.Log(robot.Error, "Discord channel not found: %s", ch)
		return robot.ChannelNotFound
	}
	prefix := ""
	if userID, ok := dc.userID(uid); ok {
		prefix = "<@" + userID + "> "
	} else if len(uname) > 0 {
		prefix = "@" + uname + " "
	}
	if f == robot.Fixed && len(prefix) > 0 {
		// a mention can't go inside the code block
		if ret := dc.sendMessages(id, []string{strings.TrimSpace(prefix)}); ret != robot.Ok {
			return ret
		}
		prefix = ""
	}
	return dc.sendMessages(id, discordifyMessage(prefix, msg, f, dc.maxMessageSplit))
}

// SendProtocolUserMessage sends a direct message to a user
func (dc *discordConnector) SendProtocolUserMessage(u, msg string, f robot.MessageFormat, _ *robot.ConnectorMessage) robot.RetVal {
	userID, ok := dc.userID(u)
	if !ok {
		return robot.UserNotFound
	}
	dm, err := dc.openDM(userID)
	if err != nil {
		dc.Log(robot.Error, "Opening Discord DM with %s: %v", userID, err)
		return robot.FailedMessageSend
	}
	return dc.sendMessages(dm, discordifyMessage("", msg, f, dc.maxMessageSplit))
}

// JoinChannel is a noop; bots see every channel their roles allow.
func (dc *discordConnector) JoinChannel(c string) robot.RetVal {
	if _, ok := dc.channelID(c); !ok {
		dc.Log(robot.Debug, "Discord channel %s not known yet", c)
	}
	return robot.Ok
}
