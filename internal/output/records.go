// Package output writes the pipeline's emitted artifacts: per-document
// chunk/summary record files and the cumulative holdings registries.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fundclean/fundclean/internal/model"
)

// WriteChunkRecords writes one run's records as an indented JSON array,
// UTF-8 with non-ASCII left unescaped.
func WriteChunkRecords(path string, records []model.ChunkRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create chunks dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chunk file: %w", err)
	}
	defer f.Close()

	if records == nil {
		records = []model.ChunkRecord{}
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode chunk records: %w", err)
	}
	return nil
}
