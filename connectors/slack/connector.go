// Package slack connects the robot to Slack over socket mode.
package slack

import (
	"context"
	"sync"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"github.com/michalplat/panibiblia/robot"
)

type slackConnector struct {
	api             *slack.Client
	client          *socketmode.Client
	maxMessageSplit int               // The maximum # of messages to split a large message into
	botUserID       string            // the robot's Slack user ID
	botName         string            // the robot's Slack user name
	userInfo        map[string]string // user ID to user name
	userIDs         map[string]string // user name to user ID
	channelIDs      map[string]string // channel name to channel ID
	imChannels      map[string]string // user ID to IM channel ID
	robot.Handler                     // bot API for connectors
	sync.RWMutex                      // shared mutex for locking connector data structures
}

// Run starts the socket mode client and dispatches events until stop closes.
func (s *slackConnector) Run(stop <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := s.client.RunContext(ctx); err != nil && ctx.Err() == nil {
			s.Log(robot.Fatal, "Slack socket mode connection failed: %v", err)
		}
	}()

loop:
	for {
		select {
		case <-stop:
			s.Log(robot.Debug, "Received stop in connector")
			break loop
		case evt, ok := <-s.client.Events:
			if !ok {
				break loop
			}
			s.handleEvent(evt)
		}
	}
}

func (s *slackConnector) handleEvent(evt socketmode.Event) {
	switch evt.Type {
	case socketmode.EventTypeConnecting:
		s.Log(robot.Info, "Connecting to Slack with socket mode")
	case socketmode.EventTypeConnectionError:
		s.Log(robot.Warn, "Slack connection failed, retrying")
	case socketmode.EventTypeConnected:
		s.Log(robot.Info, "Connected to Slack with socket mode")
	case socketmode.EventTypeInvalidAuth:
		s.Log(robot.Fatal, "Slack rejected the app token")
	case socketmode.EventTypeEventsAPI:
		eventsAPIEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
		if !ok {
			s.Log(robot.Debug, "Ignored %+v", evt)
			return
		}
		if evt.Request != nil {
			s.client.Ack(*evt.Request)
		}
		if eventsAPIEvent.Type != slackevents.CallbackEvent {
			return
		}
		switch ev := eventsAPIEvent.InnerEvent.Data.(type) {
		case *slackevents.MessageEvent:
			s.processMessage(ev)
		case *slackevents.AppMentionEvent:
			// mentions also arrive as channel messages
			s.Log(robot.Trace, "Ignoring app_mention event in %s", ev.Channel)
		case *slackevents.MemberJoinedChannelEvent:
			s.updateChannels()
		}
	default:
		s.Log(robot.Trace, "Ignoring socket mode event type: %s", evt.Type)
	}
}

// processMessage examines incoming messages, removes extra slack cruft, and
// routes them to the robot.
func (s *slackConnector) processMessage(msg *slackevents.MessageEvent) {
	s.Log(robot.Trace, "Message received: %+v", msg)
	switch msg.SubType {
	case "", "file_share", "thread_broadcast":
	default:
		s.Log(robot.Debug, "Ignoring message with subtype '%s'", msg.SubType)
		return
	}
	userID := msg.User
	if len(userID) == 0 {
		userID = msg.BotID
	}
	if len(userID) == 0 {
		s.Log(robot.Debug, "Zero-length userID, ignoring message")
		return
	}
	direct := msg.ChannelType == "im"
	botMsg := &robot.ConnectorMessage{
		Protocol:      "slack",
		UserID:        userID,
		ChannelID:     msg.Channel,
		MessageID:     msg.TimeStamp,
		DirectMessage: direct,
		SelfMessage:   userID == s.botUserID,
		MessageText:   s.processText(msg.Text),
		MessageObject: msg,
		Client:        s.api,
	}
	if userName, ok := s.userName(userID); ok {
		botMsg.UserName = userName
	}
	if !direct {
		botMsg.ChannelName = s.channelName(msg.Channel)
	}
	s.IncomingMessage(botMsg)
}
