package archive

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileArchive implements Archive using an append-only JSON-lines file.
type FileArchive struct {
	path string
	mu   sync.Mutex
}

// NewFileArchive creates a file-backed archive under dataDir.
func NewFileArchive(dataDir string) (*FileArchive, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileArchive{
		path: filepath.Join(dataDir, "matches.jsonl"),
	}, nil
}

// Record appends one match as a JSON line.
func (fa *FileArchive) Record(record *MatchRecord) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal match record: %w", err)
	}

	fa.mu.Lock()
	defer fa.mu.Unlock()

	f, err := os.OpenFile(fa.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open archive file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write match record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first. A missing archive file
// yields an empty result, not an error.
func (fa *FileArchive) Recent(limit int) ([]*MatchRecord, error) {
	if limit <= 0 {
		return nil, nil
	}

	fa.mu.Lock()
	defer fa.mu.Unlock()

	f, err := os.Open(fa.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open archive file: %w", err)
	}
	defer f.Close()

	var all []*MatchRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec MatchRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			// Skip corrupt lines rather than failing the whole read.
			continue
		}
		all = append(all, &rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read archive file: %w", err)
	}

	// Newest first.
	result := make([]*MatchRecord, 0, limit)
	for i := len(all) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, all[i])
	}
	return result, nil
}
