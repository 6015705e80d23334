package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Settings holds the tunable server behavior.
type Settings struct {
	// AIMoveDelayMS is the pause before the computer opponent replies,
	// purely for display pacing. The room stays locked for the duration.
	AIMoveDelayMS int `json:"ai_move_delay_ms"`

	// RoomIdleTTLMinutes is how long a room with nobody attached survives
	// before the cleanup sweep evicts it.
	RoomIdleTTLMinutes int `json:"room_idle_ttl_minutes"`

	// RoomCodeLength is the length of generated room codes.
	RoomCodeLength int `json:"room_code_length"`

	// MaxRecentMatches caps the recent-matches page size.
	MaxRecentMatches int `json:"max_recent_matches"`

	// CleanupIntervalMinutes is how often the idle-room sweep runs.
	CleanupIntervalMinutes int `json:"cleanup_interval_minutes"`
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() *Settings {
	return &Settings{
		AIMoveDelayMS:          500,
		RoomIdleTTLMinutes:     30,
		RoomCodeLength:         6,
		MaxRecentMatches:       50,
		CleanupIntervalMinutes: 5,
	}
}

// Load reads settings from a JSON file, filling unset fields with defaults.
// An empty path or a missing file yields the defaults.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Validate checks that every setting is usable.
func (s *Settings) Validate() error {
	if s.AIMoveDelayMS < 0 {
		return fmt.Errorf("ai_move_delay_ms cannot be negative")
	}
	if s.RoomIdleTTLMinutes <= 0 {
		return fmt.Errorf("room_idle_ttl_minutes must be positive")
	}
	if s.RoomCodeLength < 6 {
		return fmt.Errorf("room_code_length must be at least 6")
	}
	if s.MaxRecentMatches <= 0 {
		return fmt.Errorf("max_recent_matches must be positive")
	}
	if s.CleanupIntervalMinutes <= 0 {
		return fmt.Errorf("cleanup_interval_minutes must be positive")
	}
	return nil
}

// AIMoveDelay returns the AI reply pause as a duration.
func (s *Settings) AIMoveDelay() time.Duration {
	return time.Duration(s.AIMoveDelayMS) * time.Millisecond
}

// RoomIdleTTL returns the idle-room eviction threshold as a duration.
func (s *Settings) RoomIdleTTL() time.Duration {
	return time.Duration(s.RoomIdleTTLMinutes) * time.Minute
}

// CleanupInterval returns the sweep period as a duration.
func (s *Settings) CleanupInterval() time.Duration {
	return time.Duration(s.CleanupIntervalMinutes) * time.Minute
}
