// Package robot defines the interfaces and constants shared by the engine,
// connectors and Go plugins.
package robot

import "strings"

// RetVal is an integer type for returning error conditions from bot methods, or 0 for Ok
type RetVal int

// LogLevel for determining when to output a log entry
type LogLevel int

// Definitions of log levels in order from most to least verbose
const (
	Trace LogLevel = iota
	Debug
	Info
	Audit // For plugins to emit auditable events
	Warn
	Error
	Fatal
)

var logLevelNames = [...]string{"Trace", "Debug", "Info", "Audit", "Warn", "Error", "Fatal"}

func (l LogLevel) String() string {
	if l < Trace || l > Fatal {
		return "LogLevel(?)"
	}
	return logLevelNames[l]
}

// TaskRetVal is an integer type for return values from plugins and jobs
type TaskRetVal int

const (
	// Normal exit, the command ran to completion
	Normal TaskRetVal = iota
	// Fail indicates the command couldn't do what was asked
	Fail
	// MechanismFail indicates a technical issue that should be logged, e.g.
	// the remote API was unreachable
	MechanismFail
	// ConfigurationError indicates the plugin is misconfigured
	ConfigurationError
	// RobotStopping - the robot is shutting down and can't start any new commands
	RobotStopping
	// NotFound - generic return value when the asked for item couldn't be returned
	NotFound
	// Success is for callers that need a positive acknowledgement
	Success = 7
)

var taskRetValNames = map[TaskRetVal]string{
	Normal:             "Normal",
	Fail:               "Fail",
	MechanismFail:      "MechanismFail",
	ConfigurationError: "ConfigurationError",
	RobotStopping:      "RobotStopping",
	NotFound:           "NotFound",
	Success:            "Success",
}

func (r TaskRetVal) String() string {
	if s, ok := taskRetValNames[r]; ok {
		return s
	}
	return "TaskRetVal(?)"
}

const (
	// Ok indicates a successful result
	Ok RetVal = iota // success

	/* Connector issues */

	// UserNotFound - failed lookup
	UserNotFound
	// ChannelNotFound - failed lookup
	ChannelNotFound
	// AttributeNotFound - failed looking up user/robot attributes like name
	AttributeNotFound
	// FailedMessageSend - the bot was not able to send a message
	FailedMessageSend
	// FailedChannelJoin - the robot couldn't join a channel
	FailedChannelJoin
	// TimeoutExpired - a send or reply didn't complete in time
	TimeoutExpired

	/* GetTaskConfig */

	// InvalidDblPtr - GetTaskConfig wasn't called with a double-pointer to a config struct
	InvalidDblPtr
	// InvalidCfgStruct - The struct type in GetTaskConfig doesn't match the struct registered for the plugin
	InvalidCfgStruct
	// NoConfigFound - The plugin/job doesn't have any config data
	NoConfigFound
)

var retValNames = [...]string{
	"Ok",
	"UserNotFound",
	"ChannelNotFound",
	"AttributeNotFound",
	"FailedMessageSend",
	"FailedChannelJoin",
	"TimeoutExpired",
	"InvalidDblPtr",
	"InvalidCfgStruct",
	"NoConfigFound",
}

func (r RetVal) String() string {
	if r < Ok || int(r) >= len(retValNames) {
		return "RetVal(?)"
	}
	return retValNames[r]
}

// Protocol - connector protocols
type Protocol int

const (
	// Discord gateway connector
	Discord Protocol = iota
	// Slack connector
	Slack
	// Terminal connector
	Terminal
	// Test connector for automated test suites
	Test
	// Null connector for unconfigured robots
	Null
)

var protocolNames = [...]string{"Discord", "Slack", "Terminal", "Test", "Null"}

func (p Protocol) String() string {
	if p < Discord || p > Null {
		return "Protocol(?)"
	}
	return protocolNames[p]
}

// ProtocolFromString maps a connector name like "discord" to its Protocol,
// returning Null for unknown names.
func ProtocolFromString(s string) Protocol {
	for i, n := range protocolNames {
		if strings.EqualFold(n, s) {
			return Protocol(i)
		}
	}
	return Null
}

// MessageFormat indicates how the connector should display the content of
// the message. One of Variable, Fixed or Raw
type MessageFormat int

// Outgoing message format, Variable or Fixed
const (
	Raw MessageFormat = iota // protocol native, zero value -> default if not specified
	Fixed
	Variable
)

func (f MessageFormat) String() string {
	switch f {
	case Raw:
		return "Raw"
	case Fixed:
		return "Fixed"
	case Variable:
		return "Variable"
	}
	return "MessageFormat(?)"
}
