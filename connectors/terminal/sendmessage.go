package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/michalplat/panibiblia/robot"
)

// render formats a message for the terminal, wrapping Raw and Variable
// messages to the screen width.
func render(ch, msg string, f robot.MessageFormat, width int) string {
	output := fmt.Sprintf("%s: %s", ch, msg)
	if f != robot.Fixed && width > 0 {
		output = lipgloss.NewStyle().Width(width).Render(output)
	}
	return output + "\n"
}

func (tc *termConnector) sendMessage(ch, msg string, f robot.MessageFormat) robot.RetVal {
	tc.RLock()
	found := strings.HasPrefix(ch, "(dm:") || tc.hasChannel(ch)
	width := tc.width
	tc.RUnlock()
	if !found {
		tc.Log(robot.Error, "Channel not found: %s", ch)
		return robot.ChannelNotFound
	}
	tc.write(render(ch, msg, f, width))
	return robot.Ok
}
