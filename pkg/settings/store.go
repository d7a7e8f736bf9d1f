package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultPath is where the credential file lives unless configured otherwise.
const DefaultPath = "../config/settings.json"

// ErrNotFound is returned when no credential record has been stored yet.
var ErrNotFound = errors.New("settings not found")

// IsNotFound reports whether err means the credential record is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Store persists a single credential record.
type Store interface {
	// Load returns the stored record, ErrNotFound when none exists, or a
	// *MalformedError when the stored data cannot be decoded.
	Load() (Record, error)
	// Save replaces the stored record.
	Save(rec Record) error
	// Delete removes the stored record. Deleting an absent record succeeds.
	Delete() error
	// Location describes where the record lives, for status lines.
	Location() string
}

// FileStore keeps the record in a JSON file.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore for path, or DefaultPath when path is empty.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPath
	}
	return &FileStore{Path: path}
}

func (s *FileStore) Location() string {
	return s.Path
}

func (s *FileStore) Load() (Record, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("reading settings: %w", err)
	}
	return Decode(data)
}

func (s *FileStore) Save(rec Record) error {
	data, err := Encode(rec)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if dir := filepath.Dir(s.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating settings directory: %w", err)
		}
	}
	if err := os.WriteFile(s.Path, data, 0o600); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

func (s *FileStore) Delete() error {
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing settings: %w", err)
	}
	return nil
}

// MemoryStore keeps the encoded record in memory. It behaves like FileStore
// without touching disk.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Location() string {
	return "memory"
}

func (s *MemoryStore) Load() (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return Record{}, ErrNotFound
	}
	return Decode(s.data)
}

func (s *MemoryStore) Save(rec Record) error {
	data, err := Encode(rec)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete() error {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
	return nil
}

// Raw returns the encoded record, or nil when nothing is stored.
func (s *MemoryStore) Raw() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}

// SetRaw replaces the stored bytes verbatim.
func (s *MemoryStore) SetRaw(data []byte) {
	s.mu.Lock()
	s.data = append([]byte(nil), data...)
	s.mu.Unlock()
}

// LoadFile strictly loads the record at path for consumers that need a
// configured backend. A missing file is an error carrying setup guidance.
func LoadFile(path string) (Record, error) {
	store := NewFileStore(path)
	rec, err := store.Load()
	if IsNotFound(err) {
		return Record{}, fmt.Errorf("configuration not found: %s; run `gate-agent setup` to configure your AI backend first: %w", store.Path, err)
	}
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}
