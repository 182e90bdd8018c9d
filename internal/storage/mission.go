package storage

import (
	"sync"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
)

// MissionStorage keeps the active mission of each Telegram user in memory.
type MissionStorage struct {
	mu       sync.RWMutex
	missions map[int64]*entities.Mission
}

// NewMissionStorage creates a new MissionStorage.
func NewMissionStorage() *MissionStorage {
	return &MissionStorage{
		missions: make(map[int64]*entities.Mission),
	}
}

// Store replaces the active mission for the user.
func (s *MissionStorage) Store(telegramID int64, mission *entities.Mission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.missions[telegramID] = mission
}

// Get retrieves the active mission for the user.
func (s *MissionStorage) Get(telegramID int64) (*entities.Mission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.missions[telegramID]
	return m, ok
}

// Delete removes the active mission for the user.
func (s *MissionStorage) Delete(telegramID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.missions, telegramID)
}

// Reset drops all missions and returns how many were removed.
func (s *MissionStorage) Reset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.missions)
	s.missions = make(map[int64]*entities.Mission)
	return n
}
