package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestArchive(t *testing.T) *FileArchive {
	t.Helper()
	fa, err := NewFileArchive(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create archive: %v", err)
	}
	return fa
}

func TestFileArchive_RecordAndRecent(t *testing.T) {
	fa := newTestArchive(t)

	for i := 0; i < 5; i++ {
		rec := &MatchRecord{
			RoomCode: fmt.Sprintf("ROOM%02d", i),
			PlayerX:  "alice",
			PlayerO:  "bob",
			Winner:   WinnerX,
			PlayedAt: time.Now(),
		}
		if err := fa.Record(rec); err != nil {
			t.Fatalf("record %d failed: %v", i, err)
		}
	}

	recent, err := fa.Recent(3)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recent))
	}
	// Newest first.
	if recent[0].RoomCode != "ROOM04" || recent[2].RoomCode != "ROOM02" {
		t.Errorf("expected newest-first ordering, got %s..%s",
			recent[0].RoomCode, recent[2].RoomCode)
	}
}

func TestFileArchive_RecentEmpty(t *testing.T) {
	fa := newTestArchive(t)

	recent, err := fa.Recent(10)
	if err != nil {
		t.Fatalf("recent on empty archive failed: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("expected no records, got %d", len(recent))
	}
}

func TestFileArchive_RecentZeroLimit(t *testing.T) {
	fa := newTestArchive(t)
	if err := fa.Record(&MatchRecord{RoomCode: "ABCDEF", PlayerX: "a", PlayerO: AIOpponent, Winner: WinnerDraw, PlayedAt: time.Now()}); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	recent, err := fa.Recent(0)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("expected no records for zero limit, got %d", len(recent))
	}
}

func TestFileArchive_NilRecord(t *testing.T) {
	fa := newTestArchive(t)
	if err := fa.Record(nil); err == nil {
		t.Error("expected error for nil record")
	}
}

func TestFileArchive_SkipsCorruptLines(t *testing.T) {
	dir := t.TempDir()
	fa, err := NewFileArchive(dir)
	if err != nil {
		t.Fatalf("failed to create archive: %v", err)
	}

	if err := fa.Record(&MatchRecord{RoomCode: "GOOD01", PlayerX: "a", PlayerO: "b", Winner: WinnerO, PlayedAt: time.Now()}); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, "matches.jsonl"), os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatalf("failed to open file: %v", err)
	}
	f.WriteString("not json\n")
	f.Close()

	if err := fa.Record(&MatchRecord{RoomCode: "GOOD02", PlayerX: "a", PlayerO: "b", Winner: WinnerX, PlayedAt: time.Now()}); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	recent, err := fa.Recent(10)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 valid records, got %d", len(recent))
	}
	if recent[0].RoomCode != "GOOD02" {
		t.Errorf("expected GOOD02 first, got %s", recent[0].RoomCode)
	}
}
