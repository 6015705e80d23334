package session

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrCodeTaken    = errors.New("room code already in use")
)

// codeAlphabet is the character set for room codes: uppercase alphanumerics,
// easy for a human to read out and type.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// minCodeLength keeps the code space large enough that collisions stay rare.
const minCodeLength = 6

// Manager is the authoritative registry of active rooms, keyed by their
// case-insensitive code. Rooms are only reachable through it.
type Manager struct {
	rooms      map[string]*Room
	codeLength int
	mu         sync.RWMutex
}

// NewManager creates a room registry. A codeLength below the minimum is
// raised to it.
func NewManager(codeLength int) *Manager {
	if codeLength < minCodeLength {
		codeLength = minCodeLength
	}
	return &Manager{
		rooms:      make(map[string]*Room),
		codeLength: codeLength,
	}
}

// Create registers a new room owned by identity. The creator is seated as X
// with the turn set to X on an empty board. Code generation retries on
// collision until a free code is found; a collision is expected behavior,
// not an error.
func (m *Manager) Create(identity string, vsAI bool) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()

	var code string
	for {
		code = m.generateCode()
		if _, taken := m.rooms[code]; !taken {
			break
		}
	}

	room := newRoom(code, identity, vsAI)
	m.rooms[code] = room
	return room
}

// Add registers an externally built room under its code. It fails with
// ErrCodeTaken when the code is already active.
func (m *Manager) Add(room *Room) error {
	key := normalizeCode(room.Code)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.rooms[key]; taken {
		return ErrCodeTaken
	}
	m.rooms[key] = room
	return nil
}

// Get retrieves a room by code (case-insensitive).
func (m *Manager) Get(code string) (*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	room, ok := m.rooms[normalizeCode(code)]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// Remove deletes a room from the registry.
func (m *Manager) Remove(code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := normalizeCode(code)
	if _, ok := m.rooms[key]; !ok {
		return ErrRoomNotFound
	}
	delete(m.rooms, key)
	return nil
}

// List returns all active rooms.
func (m *Manager) List() []*Room {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Room, 0, len(m.rooms))
	for _, room := range m.rooms {
		result = append(result, room)
	}
	return result
}

// Count returns the number of active rooms.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// RoomsWithPlayer returns every room where identity holds a seat.
func (m *Manager) RoomsWithPlayer(identity string) []*Room {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*Room
	for _, room := range m.rooms {
		room.Lock()
		seated := room.PlayerByIdentity(identity) != nil
		room.Unlock()
		if seated {
			result = append(result, room)
		}
	}
	return result
}

// CleanupIdleRooms evicts rooms that have had no connected players, no
// spectators, and no activity for longer than maxAge. It returns the number
// of rooms removed.
func (m *Manager) CleanupIdleRooms(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for code, room := range m.rooms {
		room.Lock()
		evict := room.Evictable(cutoff)
		room.Unlock()
		if evict {
			delete(m.rooms, code)
			removed++
		}
	}
	return removed
}

// generateCode draws a random room code from the alphabet.
func (m *Manager) generateCode() string {
	buf := make([]byte, m.codeLength)
	rand.Read(buf)
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
