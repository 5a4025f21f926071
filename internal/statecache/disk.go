package statecache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DiskCache persists entries as JSON files under a directory, so
// incremental state survives between runs. A zero default TTL stores
// entries without an expiry; file fingerprints stay valid until the file
// itself changes, so that is the mode the pipeline uses.
type DiskCache struct {
	dir string
	ttl time.Duration
}

// NewDiskCache creates a disk cache rooted at dir.
func NewDiskCache(dir string, ttl time.Duration) *DiskCache {
	return &DiskCache{dir: dir, ttl: ttl}
}

// diskEntry is the stored file format. A zero Expires means the entry
// does not expire.
type diskEntry struct {
	Value   []byte    `json:"value"`
	Expires time.Time `json:"expires,omitempty"`
}

func (e diskEntry) expired() bool {
	return !e.Expires.IsZero() && time.Now().After(e.Expires)
}

// Get retrieves a value, dropping the entry when it has expired.
func (c *DiskCache) Get(key string) ([]byte, bool) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		// Unreadable entries are treated as absent and cleaned up.
		_ = os.Remove(path)
		return nil, false
	}
	if entry.expired() {
		_ = os.Remove(path)
		return nil, false
	}

	return entry.Value, true
}

// Set stores a value. A zero ttl means the cache's default; when that
// default is also zero the entry never expires.
func (c *DiskCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}

	entry := diskEntry{Value: value}
	if ttl != 0 {
		entry.Expires = time.Now().Add(ttl)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	if err := os.WriteFile(c.path(key), data, 0644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}

	return nil
}

// Delete removes a value.
func (c *DiskCache) Delete(key string) error {
	return os.Remove(c.path(key))
}

// Clear removes all cached files.
func (c *DiskCache) Clear() error {
	return os.RemoveAll(c.dir)
}

// path generates the file path for a cache key.
func (c *DiskCache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".json")
}
