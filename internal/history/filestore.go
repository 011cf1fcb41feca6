package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/easycalchub/calchub/model"
)

// fileEntry is the on-disk shape. Owner is serialized explicitly because
// the wire form of HistoryEntry hides it.
type fileEntry struct {
	Owner string             `json:"owner"`
	Entry model.HistoryEntry `json:"entry"`
}

// FileStore is a JSON-file Store. The in-memory state is authoritative: a
// corrupt or missing file starts empty, and a failed write keeps serving
// from memory with a warning rather than failing the request.
type FileStore struct {
	path string
	log  *zap.Logger

	mu      sync.Mutex
	entries map[string][]model.HistoryEntry
}

// NewFileStore opens a file-backed store at path. A read failure is logged
// and treated as an empty history.
func NewFileStore(path string, log *zap.Logger) *FileStore {
	s := &FileStore{
		path:    path,
		log:     log,
		entries: make(map[string][]model.HistoryEntry),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("history file unreadable, starting empty",
				zap.String("path", path), zap.Error(err))
		}
		return s
	}
	var flat []fileEntry
	if err := json.Unmarshal(data, &flat); err != nil {
		log.Warn("history file corrupt, starting empty",
			zap.String("path", path), zap.Error(err))
		return s
	}
	for _, fe := range flat {
		fe.Entry.Owner = fe.Owner
		s.entries[fe.Owner] = append(s.entries[fe.Owner], fe.Entry)
	}
	return s
}

// Load returns a copy of the owner's entries.
func (s *FileStore) Load(_ context.Context, owner string) ([]model.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src := s.entries[owner]
	out := make([]model.HistoryEntry, len(src))
	copy(out, src)
	return out, nil
}

// Save replaces the owner's entries and flushes the whole file. Write
// failures keep the in-memory state and warn.
func (s *FileStore) Save(_ context.Context, owner string, entries []model.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(entries) == 0 {
		delete(s.entries, owner)
	} else {
		cp := make([]model.HistoryEntry, len(entries))
		copy(cp, entries)
		s.entries[owner] = cp
	}

	if err := s.flushLocked(); err != nil {
		s.log.Warn("history file write failed, memory state retained",
			zap.String("path", s.path), zap.Error(err))
	}
	return nil
}

// Ping verifies the directory is writable without touching the data file.
func (s *FileStore) Ping(_ context.Context) error {
	f, err := os.CreateTemp(filepath.Dir(s.path), ".history-ping-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

func (s *FileStore) flushLocked() error {
	var flat []fileEntry
	for owner, list := range s.entries {
		for _, e := range list {
			flat = append(flat, fileEntry{Owner: owner, Entry: e})
		}
	}
	data, err := json.MarshalIndent(flat, "", "  ")
	if err != nil {
		return err
	}

	// Write to a sibling temp file then rename so a crash mid-write never
	// truncates the live file.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".history-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	return os.Rename(name, s.path)
}
