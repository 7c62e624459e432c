// Package file appends decision records to a local JSONL log: one JSON
// object per line, fsync on every append so a crash after the gate returns
// never loses a logged decision.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"remedia/internal/audit"
)

// logPerm keeps the audit log readable and writable by the owner only.
const logPerm = 0o600

// Store writes records to a single append-only file. A mutex serializes
// writers so concurrent decisions never interleave bytes mid-record.
type Store struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// Open opens (or creates) the log at path in append mode and tightens its
// permissions to owner-only, including for pre-existing files.
func Open(path string) (*Store, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logPerm)
	if err != nil {
		return nil, fmt.Errorf("open audit log %s: %w", path, err)
	}
	if err := f.Chmod(logPerm); err != nil {
		f.Close()
		return nil, fmt.Errorf("restrict audit log %s: %w", path, err)
	}
	return &Store{file: f, path: path}, nil
}

func (s *Store) Append(_ context.Context, rec audit.Record) error {
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.file.Write(line); err != nil {
		return fmt.Errorf("write audit log %s: %w", s.path, err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("sync audit log %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
