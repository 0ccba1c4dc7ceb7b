// Package discord connects the robot to Discord with discordgo; the session
// handles the gateway, reconnects and REST rate limits.
package discord

import (
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/michalplat/panibiblia/robot"
)

// discordAPI is the part of *discordgo.Session the connector uses.
type discordAPI interface {
	Open() error
	Close() error
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelTyping(channelID string, options ...discordgo.RequestOption) error
}

const maxBackoff = 2 * time.Minute

// discordConnector holds all the relevant data about a connection
type discordConnector struct {
	api             discordAPI
	maxMessageSplit int
	botID           string            // the robot's user snowflake, from Ready
	channelIDs      map[string]string // channel name to ID
	channelNames    map[string]string // channel ID to name
	userIDs         map[string]string // user name to ID, for users the robot has heard
	dmChannels      map[string]string // user ID to DM channel ID
	robot.Handler                     // bot API for connectors
	sync.RWMutex                      // shared mutex for locking connector data structures
}

// Run opens the session, retrying with backoff until it succeeds, and
// closes it when stop closes. discordgo reconnects on its own afterwards.
func (dc *discordConnector) Run(stop <-chan struct{}) {
	backoff := time.Second
	for {
		err := dc.api.Open()
		if err == nil {
			break
		}
		dc.Log(robot.Warn, "Opening Discord session (%v), retrying in %s", err, backoff)
		select {
		case <-stop:
			return
		case <-time.After(backoff):
		}
		if backoff < maxBackoff {
			backoff *= 2
		}
	}
	<-stop
	dc.Log(robot.Debug, "Received stop in connector")
	if err := dc.api.Close(); err != nil {
		dc.Log(robot.Warn, "Closing Discord session: %v", err)
	}
}

func (dc *discordConnector) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	dc.Lock()
	dc.botID = r.User.ID
	dc.Unlock()
	dc.SetBotID(r.User.ID)
	dc.SetBotMention(r.User.ID)
	dc.Log(robot.Info, "Connected to Discord as %s (%s)", r.User.Username, r.User.ID)
}

func (dc *discordConnector) onGuildCreate(_ *discordgo.Session, g *discordgo.GuildCreate) {
	dc.Lock()
	for _, ch := range g.Channels {
		dc.channelIDs[ch.Name] = ch.ID
		dc.channelNames[ch.ID] = ch.Name
	}
	dc.Unlock()
	dc.Log(robot.Debug, "Mapped %d channels in guild %s", len(g.Channels), g.Name)
}

func (dc *discordConnector) onChannelCreate(_ *discordgo.Session, c *discordgo.ChannelCreate) {
	if len(c.GuildID) == 0 {
		return
	}
	dc.Lock()
	dc.channelIDs[c.Name] = c.ID
	dc.channelNames[c.ID] = c.Name
	dc.Unlock()
}

// onMessageCreate turns a new message into a ConnectorMessage for the robot.
func (dc *discordConnector) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil {
		return
	}
	direct := len(m.GuildID) == 0
	dc.Lock()
	botID := dc.botID
	dc.userIDs[m.Author.Username] = m.Author.ID
	if direct {
		dc.dmChannels[m.Author.ID] = m.ChannelID
	}
	channelName := dc.channelNames[m.ChannelID]
	dc.Unlock()

	botMsg := &robot.ConnectorMessage{
		Protocol:      "discord",
		UserName:      m.Author.Username,
		UserID:        m.Author.ID,
		ChannelID:     m.ChannelID,
		MessageID:     m.ID,
		SelfMessage:   m.Author.ID == botID,
		DirectMessage: direct,
		MessageText:   m.Content,
		MessageObject: m.Message,
		Client:        dc.api,
	}
	if !direct {
		botMsg.ChannelName = channelName
	}
	if m.Author.Bot && !botMsg.SelfMessage {
		dc.Log(robot.Debug, "Ignoring message from bot %s", m.Author.Username)
		return
	}
	dc.IncomingMessage(botMsg)
}

// openDM returns the DM channel for a user, creating it on first use.
func (dc *discordConnector) openDM(userID string) (string, error) {
	dc.RLock()
	id, ok := dc.dmChannels[userID]
	dc.RUnlock()
	if ok {
		return id, nil
	}
	ch, err := dc.api.UserChannelCreate(userID)
	if err != nil {
		return "", err
	}
	dc.Lock()
	dc.dmChannels[userID] = ch.ID
	dc.Unlock()
	return ch.ID, nil
}
