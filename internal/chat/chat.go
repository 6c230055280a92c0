// Package chat is the session-local discussion panel. Messages live in
// process memory only; they are never sent to the server and vanish when
// the process exits.
package chat

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message is one discussion entry scoped to a project
type Message struct {
	ID        string
	ProjectID string
	Author    string
	Body      string
	SentAt    time.Time
}

// Board holds per-project message lists for this session
type Board struct {
	mu       sync.Mutex
	messages map[string][]Message
}

// NewBoard creates an empty discussion board
func NewBoard() *Board {
	return &Board{messages: make(map[string][]Message)}
}

// Post appends a message to a project's discussion. Blank bodies are
// dropped and reported with ok=false.
func (b *Board) Post(projectID, author, body string) (Message, bool) {
	body = strings.TrimSpace(body)
	if body == "" || projectID == "" {
		return Message{}, false
	}

	msg := Message{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Author:    author,
		Body:      body,
		SentAt:    time.Now(),
	}

	b.mu.Lock()
	b.messages[projectID] = append(b.messages[projectID], msg)
	b.mu.Unlock()
	return msg, true
}

// Messages returns the project's messages in send order
func (b *Board) Messages(projectID string) []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Message(nil), b.messages[projectID]...)
}

// Clear drops a project's discussion
func (b *Board) Clear(projectID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.messages, projectID)
}
