package discord

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/michalplat/panibiblia/bot"
	"github.com/michalplat/panibiblia/robot"
)

func init() {
	bot.RegisterConnector("discord", Initialize)
}

type config struct {
	Token           string `yaml:"Token"`           // bot token from the developer portal
	MaxMessageSplit int    `yaml:"MaxMessageSplit"` // the maximum # of 2000 character messages to split a large message into
	Debug           bool   `yaml:"Debug"`           // log discordgo's gateway traffic
}

// intents the robot needs: guild channel names, guild and direct messages
// with their content.
const intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsDirectMessages |
	discordgo.IntentsMessageContent

// Initialize sets up the connector and returns a connector object; the
// gateway connection is opened in Run.
func Initialize(handler robot.Handler, l *log.Logger) robot.Connector {
	var c config
	if err := handler.GetProtocolConfig(&c); err != nil {
		handler.Log(robot.Fatal, "Unable to retrieve protocol configuration: %v", err)
	}
	if len(c.Token) == 0 {
		handler.Log(robot.Fatal, "Discord connector requires a Token")
	}
	session, err := discordgo.New("Bot " + c.Token)
	if err != nil {
		handler.Log(robot.Fatal, "Creating Discord session: %v", err)
	}
	session.Identify.Intents = intents
	if c.Debug {
		session.LogLevel = discordgo.LogDebug
	} else {
		session.LogLevel = discordgo.LogWarning
	}
	discordgo.Logger = func(msgL, caller int, format string, a ...interface{}) {
		level := robot.Debug
		switch msgL {
		case discordgo.LogError:
			level = robot.Error
		case discordgo.LogWarning:
			level = robot.Warn
		}
		handler.Log(level, "discordgo: %s", fmt.Sprintf(format, a...))
	}

	dc := newConnector(c, session, handler)
	session.AddHandler(dc.onReady)
	session.AddHandler(dc.onGuildCreate)
	session.AddHandler(dc.onChannelCreate)
	session.AddHandler(dc.onMessageCreate)
	return dc
}

func newConnector(c config, api discordAPI, handler robot.Handler) *discordConnector {
	if c.MaxMessageSplit == 0 {
		c.MaxMessageSplit = 5
	}
	return &discordConnector{
		api:             api,
		maxMessageSplit: c.MaxMessageSplit,
		channelIDs:      make(map[string]string),
		channelNames:    make(map[string]string),
		userIDs:         make(map[string]string),
		dmChannels:      make(map[string]string),
		Handler:         handler,
	}
}
