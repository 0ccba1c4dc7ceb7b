package robot

import "context"

// Robot defines the methods exposed by the bot.Robot struct, for use by
// plugins and jobs. See bot/robot.go for complete definitions.
type Robot interface {
	CheckAdmin() bool
	GetBotAttribute(a string) *AttrRet
	GetTaskConfig(dptr interface{}) RetVal
	GetMessage() *Message
	// Context is canceled when the robot starts shutting down; remote calls
	// made by a command should use it.
	Context() context.Context
	// InvocationID identifies one plugin or job run in the log.
	InvocationID() string
	Fixed() Robot
	MessageFormat(f MessageFormat) Robot
	Direct() Robot
	Log(l LogLevel, m string, v ...interface{}) bool
	SendChannelMessage(ch, msg string, v ...interface{}) RetVal
	SendUserChannelMessage(u, ch, msg string, v ...interface{}) RetVal
	SendUserMessage(u, msg string, v ...interface{}) RetVal
	Reply(msg string, v ...interface{}) RetVal
	Say(msg string, v ...interface{}) RetVal
	Pause(s float64)
}
