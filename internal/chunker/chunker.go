// Package chunker splits section text into overlapping fixed-size windows
// and renders per-section change summaries.
package chunker

import (
	"fmt"
	"strings"

	"github.com/fundclean/fundclean/internal/model"
)

// Default window parameters used by the pipeline.
const (
	DefaultChunkSize = 600
	DefaultOverlap   = 80
)

// Chunk slides a window of chunkSize characters over the trimmed text with
// stride chunkSize-overlap. Offsets are character positions in the trimmed
// text. Chunks that trim to empty are dropped without breaking the scan;
// the ordinal index advances only on emitted chunks.
func Chunk(sectionName, text string, chunkSize, overlap int) ([]model.TextChunk, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("overlap must be >= 0 and < chunk size, got %d", overlap)
	}

	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil, nil
	}

	var chunks []model.TextChunk
	step := chunkSize - overlap
	index := 0

	for start := 0; start < len(runes); start += step {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunkText := strings.TrimSpace(string(runes[start:end]))
		if chunkText == "" {
			continue
		}
		chunks = append(chunks, model.TextChunk{
			Section:     sectionName,
			Index:       index,
			Text:        chunkText,
			StartOffset: start,
			EndOffset:   end,
		})
		index++
	}

	return chunks, nil
}

// ChangeSummary renders the human-readable change line for a section
// status. Unchanged sections produce no summary.
func ChangeSummary(sectionName, status, previousHash, currentHash string) string {
	switch status {
	case model.StatusNew:
		return fmt.Sprintf("Section %s is new in this quarter.", sectionName)
	case model.StatusUpdated:
		return fmt.Sprintf("Section %s changed (prev_hash=%s, new_hash=%s).", sectionName, previousHash, currentHash)
	default:
		return ""
	}
}
