// Package statecache remembers which source files a quarter has already
// processed, backing the pipeline's incremental mode.
package statecache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"
)

// Cache is the storage interface shared by the memory, disk, and layered
// implementations.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Fingerprint derives a cache key from a file's identity and change-relevant
// attributes: a file is "the same" when path, size, and mtime all match.
func Fingerprint(path string, info os.FileInfo) string {
	payload := fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano())
	sum := sha256.Sum256([]byte(payload))
	return "fundclean:v1:" + hex.EncodeToString(sum[:])
}
