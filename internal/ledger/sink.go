package ledger

import (
	"bufio"
	"fmt"
	"os"
	"sync"
)

// Sink receives ledger entries in append order. Append errors are fatal to
// the run; no sink retries.
type Sink interface {
	Append(Entry) error
	Close() error
}

// FileSink writes the append-only text ledger. Opening truncates any
// existing file: each strategy run owns a fresh ledger.
type FileSink struct {
	mu sync.Mutex
	f  *os.File
	w  *bufio.Writer
}

// NewFileSink creates (or truncates) the ledger file at path.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("ledger open %s: %w", path, err)
	}
	return &FileSink{f: f, w: bufio.NewWriter(f)}, nil
}

// Append writes one record line. Errors are storage failures and must abort
// the run.
func (s *FileSink) Append(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.WriteString(e.Record() + "\n"); err != nil {
		return fmt.Errorf("ledger append: %w", err)
	}
	return nil
}

// Close flushes and closes the file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.w.Flush(); err != nil {
		s.f.Close()
		return fmt.Errorf("ledger flush: %w", err)
	}
	return s.f.Close()
}

// MemorySink stores entries in memory for quick inspection in tests and for
// end-of-run summaries.
type MemorySink struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Append(e Entry) error {
	s.mu.Lock()
	s.entries = append(s.entries, e)
	s.mu.Unlock()
	return nil
}

func (s *MemorySink) Close() error { return nil }

// Snapshot returns a copy of the recorded entries.
func (s *MemorySink) Snapshot() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Reset clears all stored entries.
func (s *MemorySink) Reset() {
	s.mu.Lock()
	s.entries = s.entries[:0]
	s.mu.Unlock()
}

// Tee fans every entry out to several sinks in order. The first error wins.
type Tee struct {
	sinks []Sink
}

// NewTee combines sinks into one.
func NewTee(sinks ...Sink) *Tee {
	return &Tee{sinks: sinks}
}

func (t *Tee) Append(e Entry) error {
	for _, s := range t.sinks {
		if err := s.Append(e); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink, returning the first error.
func (t *Tee) Close() error {
	var first error
	for _, s := range t.sinks {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
