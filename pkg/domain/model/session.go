package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/saurabh-lab/project-dashboard/pkg/domain/types"
)

// SessionID identifies a chat session
type SessionID string

// NewSessionID generates a new time-ordered session ID
func NewSessionID() SessionID {
	return SessionID(uuid.Must(uuid.NewV7()).String())
}

// String returns the string representation of the session ID
func (s SessionID) String() string {
	return string(s)
}

// ChatMessage is one entry in a session's conversation history.
// Tool is set only for tool-role entries and names the dispatched tool.
type ChatMessage struct {
	Role      types.MessageRole `json:"role"`
	Tool      string            `json:"tool,omitempty"`
	Text      string            `json:"text"`
	CreatedAt time.Time         `json:"created_at"`
}

// ChatSession holds the conversation state of one operator session
type ChatSession struct {
	ID        SessionID     `json:"id"`
	Title     string        `json:"title"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewChatSession creates an empty chat session with a fresh ID
func NewChatSession(title string) *ChatSession {
	now := time.Now().UTC()
	return &ChatSession{
		ID:        NewSessionID(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Append adds a message to the session history and bumps UpdatedAt
func (s *ChatSession) Append(role types.MessageRole, tool, text string) {
	now := time.Now().UTC()
	s.Messages = append(s.Messages, ChatMessage{
		Role:      role,
		Tool:      tool,
		Text:      text,
		CreatedAt: now,
	})
	s.UpdatedAt = now
}

// LastMessage returns the most recent message, or nil for an empty session
func (s *ChatSession) LastMessage() *ChatMessage {
	if len(s.Messages) == 0 {
		return nil
	}
	return &s.Messages[len(s.Messages)-1]
}
