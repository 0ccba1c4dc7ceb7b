package slack

import (
	"regexp"
	"strings"

	"github.com/slack-go/slack"

	"github.com/michalplat/panibiblia/bible/chunker"
	"github.com/michalplat/panibiblia/robot"
)

// Soft hyphen. *shrug*
const escapePad = "\u00AD"

// Leave room under Slack's limit; very large messages can drop the socket.
const maxSize = slack.MaxMessageTextLength - 500

func optQuote(msg string, f robot.MessageFormat) string {
	if f == robot.Fixed {
		return "```" + msg + "```"
	}
	return msg
}

// slackifyMessage handles escaping, takes care of formatting, and segments
// the message if needed.
func slackifyMessage(prefix, msg string, f robot.MessageFormat, maxSplit int) []string {
	if f != robot.Raw {
		msg = strings.ReplaceAll(msg, "&", "&amp;")
		msg = strings.ReplaceAll(msg, "<", "&lt;")
		msg = strings.ReplaceAll(msg, ">", "&gt;")
	}
	if f == robot.Variable {
		// 'escape' special chars that aren't covered by disabling markdown.
		for _, padChar := range []string{"`", "*", "_", ":"} {
			msg = strings.ReplaceAll(msg, padChar, escapePad+padChar)
		}
	}
	msg = prefix + msg

	limit := maxSize
	if f == robot.Fixed {
		limit -= 6
	}
	chunks := chunker.Lines(msg, limit)
	truncated := false
	if maxSplit > 0 && len(chunks) > maxSplit {
		chunks = chunks[:maxSplit]
		truncated = true
	}
	msgs := make([]string, 0, len(chunks)+1)
	for _, c := range chunks {
		msgs = append(msgs, optQuote(c, f))
	}
	if truncated {
		msgs = append(msgs, "(message too long, truncated)")
	}
	return msgs
}

var reAddedLinks = regexp.MustCompile(`<https?://[\w-./]+\|([\w-./]+)>`) // match a slack-inserted link
var reLinks = regexp.MustCompile(`<(https?://[.\w-:/?=~]+)>`)            // match a link where slack added <>
var reUser = regexp.MustCompile(`<@([UW][A-Z0-9]{7,21})>`)               // match a @user mention
var reMailToLink = regexp.MustCompile(`<mailto:[^|]+\|([\w-./@]+)>`)     // match mailto links

func (s *slackConnector) processText(text string) string {
	// Remove auto-links - chatbots don't want those
	text = reAddedLinks.ReplaceAllString(text, "$1")
	text = reLinks.ReplaceAllString(text, "$1")
	text = reMailToLink.ReplaceAllString(text, "$1")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&amp;", "&")

	return reUser.ReplaceAllStringFunc(text, func(mention string) string {
		id := reUser.FindStringSubmatch(mention)[1]
		if id == s.botUserID {
			return "@" + s.botName
		}
		if name, ok := s.userName(id); ok {
			return "@" + name
		}
		s.Log(robot.Warn, "Couldn't find username for mentioned %s", id)
		return mention
	})
}
