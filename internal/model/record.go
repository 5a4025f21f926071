package model

// Change status values reported per section occurrence.
const (
	StatusNew     = "new"
	StatusUpdated = "updated"
	StatusReuse   = "reuse"
)

// SectionHashResult is the change-detection verdict for one section
// occurrence of one run.
type SectionHashResult struct {
	Key          string `json:"key"`  // "name:index"
	Name         string `json:"name"` // section taxonomy tag
	CurrentHash  string `json:"current_hash"`
	Status       string `json:"status"`                  // new | updated | reuse
	PreviousHash string `json:"previous_hash,omitempty"` // empty when status is new
}

// TextChunk is one bounded window over a section's trimmed text. Offsets
// count characters (runes) in the trimmed text, not bytes.
type TextChunk struct {
	Section     string `json:"section"`
	Index       int    `json:"index"`
	Text        string `json:"text"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
}

// Record type values in the emitted chunk file.
const (
	RecordTypeSummary = "summary"
	RecordTypeChunk   = "chunk"
)

// ChunkRecord is one emitted entry of a run's output file: either a change
// summary for a section or one text chunk of it. Nullable fields are
// pointers so the file keeps explicit nulls for downstream consumers.
type ChunkRecord struct {
	FundCode          string   `json:"fund_code"`
	FundName          string   `json:"fund_name"`
	Section           string   `json:"section"`
	PageRange         *string  `json:"page_range"`
	Quarter           string   `json:"quarter"`
	DataDate          *string  `json:"data_date"`
	FileTimestamp     string   `json:"file_timestamp"`
	Language          string   `json:"language"`
	SourceType        string   `json:"source_type"`
	Version           string   `json:"version"`
	PreviousChunkHash *string  `json:"previous_chunk_hash"`
	SectionHash       *string  `json:"section_hash"`
	Type              string   `json:"type"` // summary | chunk
	ChunkIndex        *int     `json:"chunk_index"`
	ChunkHash         string   `json:"chunk_hash"`
	ChangeType        string   `json:"change_type"`
	Text              string   `json:"text"`
	StartOffset       *int     `json:"start_offset"`
	EndOffset         *int     `json:"end_offset"`
	StructuredRefs    []string `json:"structured_refs"`
}
