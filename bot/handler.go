package bot

import (
	"errors"
	"io"
	"strings"

	"github.com/michalplat/panibiblia/robot"
)

// handler implements robot.Handler, the callback API for connectors.
type handler struct{}

var handle = handler{}

// IncomingMessage is called by the connector for all messages the bot
// can hear.
func (h handler) IncomingMessage(inc *robot.ConnectorMessage) {
	if inc.SelfMessage {
		return
	}
	currentCfg.RLock()
	cfg := currentCfg.configuration
	currentCfg.RUnlock()

	user := inc.UserName
	if len(user) == 0 {
		user = bracket(inc.UserID)
	}
	for _, ignored := range cfg.ignoreUsers {
		if strings.EqualFold(user, ignored) {
			Log(robot.Debug, "Ignoring message from user: %s", user)
			return
		}
	}

	msg := &robot.Message{
		User:         user,
		ProtocolUser: inc.UserID,
		Protocol:     robot.ProtocolFromString(inc.Protocol),
		Incoming:     inc,
		Format:       cfg.defaultMessageFormat,
	}
	// replies to a direct message go back through SendProtocolUserMessage
	if !inc.DirectMessage {
		msg.ProtocolChannel = inc.ChannelID
		msg.Channel = inc.ChannelName
		if len(msg.Channel) == 0 {
			msg.Channel = bracket(inc.ChannelID)
		}
	}

	text := strings.TrimSpace(inc.MessageText)
	command, isCommand := parseCommand(text)
	if inc.DirectMessage || inc.BotMessage {
		isCommand = true
	}
	if !isCommand {
		Log(robot.Trace, "Ignoring ambient message from %s in %s", user, msg.Channel)
		return
	}
	if len(msg.Channel) == 0 {
		Log(robot.Debug, "Received a direct message from %s: %s", user, command)
	} else {
		Log(robot.Debug, "Received command from %s in %s: %s", user, msg.Channel, command)
	}
	handleMessage(cfg, msg, command)
}

// GetProtocolConfig unmarshals the ProtocolConfig section of robot.yaml
func (h handler) GetProtocolConfig(v interface{}) error {
	currentCfg.RLock()
	node := currentCfg.protocolConfig
	currentCfg.RUnlock()
	if node.Kind == 0 {
		return errors.New("no ProtocolConfig in robot.yaml")
	}
	return node.Decode(v)
}

// SetBotID lets the connector set the robot's internal ID
func (h handler) SetBotID(id string) {
	currentCfg.Lock()
	currentCfg.botinfo.UserID = id
	currentCfg.Unlock()
}

// SetBotMention sets the bot's @(mention) ID and rebuilds the regexes
func (h handler) SetBotMention(mention string) {
	currentCfg.Lock()
	currentCfg.botinfo.protoMention = mention
	currentCfg.Unlock()
	updateRegexes()
}

// SetTerminalWriter lets the terminal connector redirect logging
func (h handler) SetTerminalWriter(w io.Writer) {
	botLogger.Lock()
	terminalWriter = w
	if !botLogger.logToFile && botLogger.l != nil {
		botLogger.l.SetOutput(w)
	}
	botLogger.Unlock()
}

// GetLogLevel returns the current log level
func (h handler) GetLogLevel() robot.LogLevel {
	return getLogLevel()
}

// GetLogToFile reports whether the log goes to a file
func (h handler) GetLogToFile() bool {
	botLogger.Lock()
	defer botLogger.Unlock()
	return botLogger.logToFile
}

// GetConfigPath returns the config directory
func (h handler) GetConfigPath() string {
	currentCfg.RLock()
	defer currentCfg.RUnlock()
	return currentCfg.configPath
}

// Log logs a message for the connector
func (h handler) Log(l robot.LogLevel, m string, v ...interface{}) {
	Log(l, m, v...)
}

// ExtractID returns the ID from a bracketed value, e.g. "<1234>"
func (h handler) ExtractID(u string) (string, bool) {
	return extractID(u)
}
