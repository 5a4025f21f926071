// Package dedupe fingerprints section content and tracks new/updated/reuse
// status per fund across quarters in a persistent index.
package dedupe

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// IndexFileName is the index file kept under the state directory.
const IndexFileName = "chunk_index.json"

// SectionEntry is the stored record for one section key of one quarter.
type SectionEntry struct {
	Hash    string `json:"hash"`
	Section string `json:"section"`
}

// Index maps fund id -> quarter label -> section key -> entry.
type Index map[string]map[string]map[string]SectionEntry

// Hash returns the hex SHA-256 digest of the UTF-8 text.
func Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Store owns the persisted index file. Not safe for concurrent use: a
// load/evaluate/save cycle against the same path must be serialized by the
// caller.
type Store struct {
	path string
}

// NewStore creates a Store bound to the given index file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the index file location.
func (s *Store) Path() string { return s.path }

// Load reads the whole index. A missing file is an empty index; a file
// that cannot be parsed is a fatal error, never silently discarded.
func (s *Store) Load() (Index, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Index{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index %s: %w", s.path, err)
	}

	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("parse index %s: %w", s.path, err)
	}
	if index == nil {
		index = Index{}
	}
	return index, nil
}

// Save rewrites the whole index file. The write goes through a temp file
// and rename so a crash never leaves a truncated index behind. Indented
// UTF-8 with non-ASCII preserved, matching how the file is read by hand.
func (s *Store) Save(index Index) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), IndexFileName+".*")
	if err != nil {
		return fmt.Errorf("create temp index: %w", err)
	}
	tmpPath := tmp.Name()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(index); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("encode index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp index: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace index: %w", err)
	}
	return nil
}
