package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if s.AIMoveDelay() != 500*time.Millisecond {
		t.Errorf("expected 500ms AI delay, got %v", s.AIMoveDelay())
	}
	if s.RoomIdleTTL() != 30*time.Minute {
		t.Errorf("expected 30m idle TTL, got %v", s.RoomIdleTTL())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file should yield defaults, got error: %v", err)
	}
	if s.RoomCodeLength != 6 {
		t.Errorf("expected default code length 6, got %d", s.RoomCodeLength)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("empty path should yield defaults, got error: %v", err)
	}
	if s.MaxRecentMatches != 50 {
		t.Errorf("expected default max recent 50, got %d", s.MaxRecentMatches)
	}
}

func TestLoad_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"ai_move_delay_ms": 0, "room_code_length": 8}`), 0644); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.AIMoveDelayMS != 0 {
		t.Errorf("expected AI delay override 0, got %d", s.AIMoveDelayMS)
	}
	if s.RoomCodeLength != 8 {
		t.Errorf("expected code length override 8, got %d", s.RoomCodeLength)
	}
	// Untouched fields keep their defaults.
	if s.RoomIdleTTLMinutes != 30 {
		t.Errorf("expected default idle TTL 30, got %d", s.RoomIdleTTLMinutes)
	}
}

func TestLoad_InvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad json", `{not json`},
		{"short code", `{"room_code_length": 3}`},
		{"negative delay", `{"ai_move_delay_ms": -1}`},
		{"zero ttl", `{"room_idle_ttl_minutes": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.json")
			if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
				t.Fatalf("failed to write settings: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}
