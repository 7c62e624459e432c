// Package memory holds decision records in process memory. It backs unit
// tests and local development; nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"remedia/internal/audit"
)

type Store struct {
	mu      sync.RWMutex
	records []audit.Record
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Append(_ context.Context, rec audit.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// List returns a copy of all records in append order.
func (s *Store) List() []audit.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Record{}, s.records...)
}

// ListByThreat returns all records for one threat ID in append order.
func (s *Store) ListByThreat(threatID string) []audit.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Record
	for _, rec := range s.records {
		if rec.ThreatID == threatID {
			out = append(out, rec)
		}
	}
	return out
}

// Len reports how many records have been appended.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}
