package slack

import (
	"log"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"

	"github.com/michalplat/panibiblia/bot"
	"github.com/michalplat/panibiblia/robot"
)

func init() {
	bot.RegisterConnector("slack", Initialize)
}

type config struct {
	SlackToken      string `yaml:"SlackToken"`      // xoxb- bot token
	AppToken        string `yaml:"AppToken"`        // xapp- app-level token for socket mode
	MaxMessageSplit int    `yaml:"MaxMessageSplit"` // the maximum # of ~4000 byte messages to split a large message into
	Debug           bool   `yaml:"Debug"`           // log raw socket mode traffic
}

// Initialize starts the connection, gets the robot's identity and returns
// a connector object.
func Initialize(handler robot.Handler, l *log.Logger) robot.Connector {
	var c config
	if err := handler.GetProtocolConfig(&c); err != nil {
		handler.Log(robot.Fatal, "Unable to retrieve protocol configuration: %v", err)
	}
	if len(c.SlackToken) == 0 || len(c.AppToken) == 0 {
		handler.Log(robot.Fatal, "Slack connector requires both SlackToken and AppToken")
	}
	if c.MaxMessageSplit == 0 {
		c.MaxMessageSplit = 3
	}

	api := slack.New(c.SlackToken,
		slack.OptionAppLevelToken(c.AppToken),
		slack.OptionDebug(c.Debug),
		slack.OptionLog(l),
	)
	client := socketmode.New(api,
		socketmode.OptionDebug(c.Debug),
		socketmode.OptionLog(l),
	)

	auth, err := api.AuthTest()
	if err != nil {
		handler.Log(robot.Fatal, "Slack authentication failed: %v", err)
	}

	sc := &slackConnector{
		api:             api,
		client:          client,
		maxMessageSplit: c.MaxMessageSplit,
		botUserID:       auth.UserID,
		botName:         auth.User,
		userInfo:        make(map[string]string),
		userIDs:         make(map[string]string),
		channelIDs:      make(map[string]string),
		imChannels:      make(map[string]string),
		Handler:         handler,
	}
	handler.SetBotID(auth.UserID)
	handler.SetBotMention(auth.User)
	sc.Log(robot.Info, "Slack connector authenticated as %s (%s) on team %s", auth.User, auth.UserID, auth.Team)
	sc.updateChannels()
	return sc
}
