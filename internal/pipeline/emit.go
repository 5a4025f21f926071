package pipeline

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/fundclean/fundclean/internal/chunker"
	"github.com/fundclean/fundclean/internal/dedupe"
	"github.com/fundclean/fundclean/internal/model"
	"github.com/fundclean/fundclean/internal/output"
)

// emitChunks builds the run's record list (one summary per changed/new
// section, one record per chunk, all carrying the metadata envelope) and
// writes it as a single timestamped JSON file.
func (p *Pipeline) emitChunks(
	sectionList []model.Section,
	results []model.SectionHashResult,
	quarter, chunksDir string,
	fundMeta model.FundMetadata,
	fileTimestamp string,
) error {
	statusByKey := make(map[string]model.SectionHashResult, len(results))
	for _, r := range results {
		statusByKey[r.Key] = r
	}

	language := inferLanguage(sectionList)
	var records []model.ChunkRecord

	for idx, section := range sectionList {
		result, hasResult := statusByKey[section.Key(idx)]

		changeType := "unknown"
		var previousHash, sectionHash *string
		if hasResult {
			changeType = result.Status
			sectionHash = strPtr(result.CurrentHash)
			if result.PreviousHash != "" {
				previousHash = strPtr(result.PreviousHash)
			}
		}

		base := model.ChunkRecord{
			FundCode:          fundMeta.Code,
			FundName:          fundMeta.Name,
			Section:           section.Name,
			PageRange:         pageRange(section.Pages),
			Quarter:           quarter,
			FileTimestamp:     fileTimestamp,
			Language:          language,
			SourceType:        "pdf",
			Version:           Version,
			PreviousChunkHash: previousHash,
			SectionHash:       sectionHash,
			ChangeType:        changeType,
			StructuredRefs:    []string{},
		}

		if hasResult {
			summary := chunker.ChangeSummary(section.Name, result.Status, result.PreviousHash, result.CurrentHash)
			if summary != "" {
				record := base
				record.Type = model.RecordTypeSummary
				record.Text = summary
				record.ChunkHash = dedupe.Hash(summary)
				records = append(records, record)
			}
		}

		chunks, err := chunker.Chunk(section.Name, section.Text(), p.cfg.ChunkSize, p.cfg.ChunkOverlap)
		if err != nil {
			return fmt.Errorf("chunk section %s: %w", section.Name, err)
		}
		for _, chunk := range chunks {
			record := base
			record.Type = model.RecordTypeChunk
			record.ChunkIndex = intPtr(chunk.Index)
			record.ChunkHash = dedupe.Hash(chunk.Text)
			record.Text = chunk.Text
			record.StartOffset = intPtr(chunk.StartOffset)
			record.EndOffset = intPtr(chunk.EndOffset)
			records = append(records, record)
		}
	}

	now := time.Now()
	filename := fmt.Sprintf("%s_%s_%s_%s%06d.json",
		fundMeta.Name, fundMeta.Code, quarter,
		now.Format("20060102T150405"), now.Nanosecond()/1000)
	path := filepath.Join(chunksDir, filename)

	if err := output.WriteChunkRecords(path, records); err != nil {
		return err
	}
	p.log.Info("wrote chunk entries",
		zap.Int("count", len(records)),
		zap.String("file", filepath.Base(path)))
	return nil
}

// inferLanguage guesses the dominant language of the document from the
// surviving sections: mostly ASCII means mixed content, otherwise Chinese.
func inferLanguage(sectionList []model.Section) string {
	var totalChars, asciiChars int
	for _, section := range sectionList {
		for _, r := range section.Text() {
			totalChars++
			if r < 128 {
				asciiChars++
			}
		}
	}
	if totalChars == 0 {
		return "unknown"
	}
	if float64(asciiChars)/float64(totalChars) > 0.3 {
		return "mix"
	}
	return "zh"
}

// pageRange renders a section's page set as "n" or "a-b".
func pageRange(pages []int) *string {
	if len(pages) == 0 {
		return nil
	}
	minPage, maxPage := pages[0], pages[0]
	for _, p := range pages[1:] {
		if p < minPage {
			minPage = p
		}
		if p > maxPage {
			maxPage = p
		}
	}
	var s string
	if minPage == maxPage {
		s = strconv.Itoa(minPage)
	} else {
		s = strconv.Itoa(minPage) + "-" + strconv.Itoa(maxPage)
	}
	return &s
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
