package storage

import (
	"sync"
	"time"
)

// MissionMessage points at the chat message that carries a mission keyboard.
type MissionMessage struct {
	ChatID    int64
	MessageID int
	SentAt    time.Time
}

// MessageStorage remembers the last mission message sent to each user so its
// keyboard can be removed when a new mission starts.
type MessageStorage struct {
	mu       sync.RWMutex
	messages map[int64]MissionMessage
}

func NewMessageStorage() *MessageStorage {
	return &MessageStorage{
		messages: make(map[int64]MissionMessage),
	}
}

func (s *MessageStorage) Get(userID int64) (MissionMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, ok := s.messages[userID]
	return msg, ok
}

func (s *MessageStorage) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.messages, userID)
}

// UpsertAndGetPrev stores the new message and returns the one it replaced.
func (s *MessageStorage) UpsertAndGetPrev(userID int64, chatID int64, messageID int) (prev MissionMessage, hadPrev bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev = s.messages[userID]

	s.messages[userID] = MissionMessage{
		ChatID:    chatID,
		MessageID: messageID,
		SentAt:    time.Now(),
	}

	return prev, hadPrev
}

// Reset forgets all messages.
func (s *MessageStorage) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = make(map[int64]MissionMessage)
}
