package slack

/* util has the lookup caches for user and channel names. */

import (
	"github.com/slack-go/slack"

	"github.com/michalplat/panibiblia/robot"
)

// updateChannels refreshes the channel name map.
func (s *slackConnector) updateChannels() {
	channelIDs := make(map[string]string)
	params := &slack.GetConversationsParameters{
		ExcludeArchived: true,
		Limit:           200,
		Types:           []string{"public_channel", "private_channel"},
	}
	for {
		channels, cursor, err := s.api.GetConversations(params)
		if err != nil {
			s.Log(robot.Error, "Listing Slack channels: %v", err)
			return
		}
		for _, ch := range channels {
			channelIDs[ch.Name] = ch.ID
		}
		if len(cursor) == 0 {
			break
		}
		params.Cursor = cursor
	}
	s.Lock()
	s.channelIDs = channelIDs
	s.Unlock()
	s.Log(robot.Debug, "Mapped %d Slack channels", len(channelIDs))
}

func (s *slackConnector) channelID(name string) (string, bool) {
	if id, ok := s.ExtractID(name); ok {
		return id, true
	}
	s.RLock()
	id, ok := s.channelIDs[name]
	s.RUnlock()
	if ok {
		return id, true
	}
	s.updateChannels()
	s.RLock()
	id, ok = s.channelIDs[name]
	s.RUnlock()
	return id, ok
}

func (s *slackConnector) channelName(id string) string {
	s.RLock()
	defer s.RUnlock()
	for name, cid := range s.channelIDs {
		if cid == id {
			return name
		}
	}
	return ""
}

// userName looks up and caches the user name for a user ID.
func (s *slackConnector) userName(id string) (string, bool) {
	s.RLock()
	name, ok := s.userInfo[id]
	s.RUnlock()
	if ok {
		return name, true
	}
	user, err := s.api.GetUserInfo(id)
	if err != nil {
		s.Log(robot.Debug, "Looking up Slack user %s: %v", id, err)
		return "", false
	}
	s.Lock()
	s.userInfo[id] = user.Name
	s.userIDs[user.Name] = id
	s.Unlock()
	return user.Name, true
}

// userID returns the ID for "<id>" or a user name the connector has seen.
func (s *slackConnector) userID(u string) (string, bool) {
	if id, ok := s.ExtractID(u); ok {
		return id, true
	}
	s.RLock()
	id, ok := s.userIDs[u]
	s.RUnlock()
	return id, ok
}

// imChannel opens, or returns the cached, direct message channel for a user.
func (s *slackConnector) imChannel(userID string) (string, bool) {
	s.RLock()
	id, ok := s.imChannels[userID]
	s.RUnlock()
	if ok {
		return id, true
	}
	ch, _, _, err := s.api.OpenConversation(&slack.OpenConversationParameters{Users: []string{userID}})
	if err != nil {
		s.Log(robot.Error, "Opening direct message with %s: %v", userID, err)
		return "", false
	}
	s.Lock()
	s.imChannels[userID] = ch.ID
	s.Unlock()
	return ch.ID, true
}
