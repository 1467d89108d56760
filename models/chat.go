package models

import "fmt"

// Chat connects exactly two users, created when a swipe turns into a
// match. AdspaceIDs holds the listings that motivated the conversation.
type Chat struct {
	ChatID       string   `dynamodbav:"chatId" json:"chatId"`
	Participants []string `dynamodbav:"participants" json:"participants"`
	AdspaceIDs   []string `dynamodbav:"adspaceIds,omitempty" json:"adspaceIds,omitempty"`
	CreatedAt    string   `dynamodbav:"createdAt" json:"createdAt"`
}

// HasParticipant reports whether userID is one of the chat's two sides.
func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the counterparty of userID. A chat must have
// exactly two participants; anything else is a data error.
func (c *Chat) OtherParticipant(userID string) (string, error) {
	if len(c.Participants) != 2 {
		return "", fmt.Errorf("chat %s has %d participants, expected 2", c.ChatID, len(c.Participants))
	}
	if c.Participants[0] == userID {
		return c.Participants[1], nil
	}
	if c.Participants[1] == userID {
		return c.Participants[0], nil
	}
	return "", fmt.Errorf("user %s is not a participant of chat %s", userID, c.ChatID)
}

// ChatsTable is the DynamoDB table name for chats
const ChatsTable = "Chats"
