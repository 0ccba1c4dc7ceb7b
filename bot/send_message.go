package bot

import (
	"fmt"

	"github.com/michalplat/panibiblia/robot"
)

/* send_message.go - all the message sending methods for a Robot. Each uses
the Robot's local copy of the robot.Message, which may have been modified by
e.g. r.Direct(), r.Fixed(), etc.
*/

// prepareMessage validates and formats the message.
// It returns the formatted message and a boolean indicating whether the message was empty.
func (r Robot) prepareMessage(fn, msg string, v ...interface{}) (string, bool) {
	if len(msg) == 0 {
		r.Log(robot.Warn, "%s: Ignoring zero-length message", fn)
		return "", true
	}
	if len(v) > 0 {
		msg = fmt.Sprintf(msg, v...)
	}
	return msg, false
}

// messageHeard sends a typing notification
func (r Robot) messageHeard() {
	conn := getConnector()
	if conn == nil {
		return
	}
	user := r.ProtocolUser
	if len(user) == 0 {
		user = r.User
	}
	channel := r.ProtocolChannel
	if len(channel) == 0 {
		channel = r.Channel
	}
	conn.MessageHeard(user, channel)
}

func (r Robot) send(fn string, f func(robot.Connector) robot.RetVal) robot.RetVal {
	conn := getConnector()
	if conn == nil {
		r.Log(robot.Error, "%s: no connector", fn)
		return robot.FailedMessageSend
	}
	ret := f(conn)
	if ret != robot.Ok {
		r.Log(robot.Warn, "%s failed: %s", fn, ret)
	}
	return ret
}

// see robot/robot.go
func (r Robot) SendChannelMessage(ch, msg string, v ...interface{}) robot.RetVal {
	msg, empty := r.prepareMessage("SendChannelMessage", msg, v...)
	if empty {
		return robot.Ok
	}
	return r.send("SendChannelMessage", func(c robot.Connector) robot.RetVal {
		return c.SendProtocolChannelMessage(ch, msg, r.Format, r.Incoming)
	})
}

// SendUserChannelMessage lets a plugin easily send a message directed to
// a specific user in a specific channel without fiddling with the robot
// object.
func (r Robot) SendUserChannelMessage(u, ch, msg string, v ...interface{}) robot.RetVal {
	msg, empty := r.prepareMessage("SendUserChannelMessage", msg, v...)
	if empty {
		return robot.Ok
	}
	return r.send("SendUserChannelMessage", func(c robot.Connector) robot.RetVal {
		return c.SendProtocolUserChannelMessage(u, u, ch, msg, r.Format, r.Incoming)
	})
}

// see robot/robot.go
func (r Robot) SendUserMessage(u, msg string, v ...interface{}) robot.RetVal {
	msg, empty := r.prepareMessage("SendUserMessage", msg, v...)
	if empty {
		return robot.Ok
	}
	return r.send("SendUserMessage", func(c robot.Connector) robot.RetVal {
		return c.SendProtocolUserMessage(u, msg, r.Format, r.Incoming)
	})
}

// see robot/robot.go
func (r Robot) Reply(msg string, v ...interface{}) robot.RetVal {
	msg, empty := r.prepareMessage("Reply", msg, v...)
	if empty {
		return robot.Ok
	}
	user := r.User
	if len(r.ProtocolUser) > 0 {
		user = bracket(r.ProtocolUser)
	}
	// Support for Direct()
	if r.Channel == "" && r.ProtocolChannel == "" {
		return r.send("Reply", func(c robot.Connector) robot.RetVal {
			return c.SendProtocolUserMessage(user, msg, r.Format, r.Incoming)
		})
	}
	return r.send("Reply", func(c robot.Connector) robot.RetVal {
		return c.SendProtocolUserChannelMessage(user, r.User, r.channel(), msg, r.Format, r.Incoming)
	})
}

// see robot/robot.go
func (r Robot) Say(msg string, v ...interface{}) robot.RetVal {
	msg, empty := r.prepareMessage("Say", msg, v...)
	if empty {
		return robot.Ok
	}
	if r.Channel == "" && r.ProtocolChannel == "" {
		user := r.User
		if len(r.ProtocolUser) > 0 {
			user = bracket(r.ProtocolUser)
		}
		return r.send("Say", func(c robot.Connector) robot.RetVal {
			return c.SendProtocolUserMessage(user, msg, r.Format, r.Incoming)
		})
	}
	return r.send("Say", func(c robot.Connector) robot.RetVal {
		return c.SendProtocolChannelMessage(r.channel(), msg, r.Format, r.Incoming)
	})
}

// channel prefers the protocol ID, which connectors never need to look up.
func (r Robot) channel() string {
	if len(r.ProtocolChannel) > 0 {
		return bracket(r.ProtocolChannel)
	}
	return r.Channel
}
