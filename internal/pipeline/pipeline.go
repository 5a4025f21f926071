// Package pipeline orchestrates a cleaning run: page filtering, section
// segmentation, change detection, chunk emission, and the holdings
// registries.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fundclean/fundclean/internal/config"
	"github.com/fundclean/fundclean/internal/dedupe"
	"github.com/fundclean/fundclean/internal/holdings"
	"github.com/fundclean/fundclean/internal/langfilter"
	"github.com/fundclean/fundclean/internal/model"
	"github.com/fundclean/fundclean/internal/output"
	"github.com/fundclean/fundclean/internal/pdfio"
	"github.com/fundclean/fundclean/internal/sections"
	"github.com/fundclean/fundclean/internal/statecache"
	"github.com/fundclean/fundclean/internal/upload"
)

// Version tags every emitted record with the producing release.
const Version = "0.1.0"

// Pipeline bundles the run's stage components.
type Pipeline struct {
	cfg       config.Config
	filter    *langfilter.Filter
	segmenter *sections.Segmenter
	extractor *holdings.Extractor
	uploader  upload.Uploader
	log       *zap.Logger
}

// New creates a Pipeline from resolved configuration.
func New(cfg config.Config, log *zap.Logger) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		filter:    langfilter.NewFilter(),
		segmenter: sections.NewSegmenter(nil),
		extractor: holdings.NewExtractor(),
		uploader:  upload.NewDriveUploader(),
		log:       log,
	}
}

// CleanOptions are the per-run parameters of the clean command.
type CleanOptions struct {
	Quarter     string // canonical YYYYQn label
	FundCode    string // optional override for the derived fund code
	InputDir    string // optional base-dir override for raw PDFs
	ChunksDir   string // optional base-dir override for chunk output
	Incremental bool
	Upload      bool
}

// RunCleaning processes every PDF of the quarter's input directory. A
// missing input directory is logged and yields zero documents; a document
// that fails mid-way is logged and skipped, never aborting the run.
func (p *Pipeline) RunCleaning(ctx context.Context, opts CleanOptions) error {
	inputDir, err := p.cfg.ResolveInputDir(opts.Quarter, opts.InputDir)
	if err != nil {
		return err
	}
	chunksDir, err := p.cfg.ResolveChunksDir(opts.Quarter, opts.ChunksDir)
	if err != nil {
		return err
	}
	cleanPDFDir, err := p.cfg.ResolveCleanPDFDir(opts.Quarter, "")
	if err != nil {
		return err
	}

	p.log.Info("starting cleaning run",
		zap.String("quarter", opts.Quarter),
		zap.String("fund", orAll(opts.FundCode)),
		zap.Bool("incremental", opts.Incremental))
	p.log.Debug("resolved directories",
		zap.String("input", inputDir),
		zap.String("chunks", chunksDir),
		zap.String("clean_pdf", cleanPDFDir))

	for _, dir := range []string{chunksDir, cleanPDFDir, p.cfg.StateDir, p.cfg.LogDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	if _, err := os.Stat(inputDir); os.IsNotExist(err) {
		p.log.Warn("input directory does not exist; nothing to process",
			zap.String("input", inputDir))
		return nil
	}

	pdfs, err := listPDFs(inputDir)
	if err != nil {
		return err
	}

	store := dedupe.NewStore(filepath.Join(p.cfg.StateDir, dedupe.IndexFileName))
	var runCache statecache.Cache
	if opts.Incremental {
		runCache = statecache.NewLayeredCache(
			time.Hour, filepath.Join(p.cfg.StateDir, "incremental"), 0)
	}

	var equityNames []string
	var fixedIncomeNames []string

	for _, inputPDF := range pdfs {
		if err := ctx.Err(); err != nil {
			return err
		}
		entries, err := p.processDocument(inputPDF, cleanPDFDir, chunksDir, opts, store, runCache)
		if err != nil {
			p.log.Error("document failed; skipping",
				zap.String("file", filepath.Base(inputPDF)),
				zap.Error(err))
			continue
		}
		for _, entry := range entries {
			if entry.InstrumentType == model.InstrumentFixedIncome {
				fixedIncomeNames = append(fixedIncomeNames, entry.Name)
			} else {
				equityNames = append(equityNames, entry.Name)
			}
		}
	}

	if len(equityNames) > 0 {
		if err := output.AppendCompanies(equityNames, opts.Quarter, p.cfg.StructuredDir); err != nil {
			return fmt.Errorf("append companies registry: %w", err)
		}
		p.log.Info("recorded equity top-holding companies",
			zap.Int("unique", uniqueCount(equityNames)),
			zap.String("quarter", opts.Quarter))
	}
	if len(fixedIncomeNames) > 0 {
		if err := output.AppendFixedIncome(fixedIncomeNames, opts.Quarter, p.cfg.StructuredDir); err != nil {
			return fmt.Errorf("append fixed-income registry: %w", err)
		}
		p.log.Info("recorded fixed-income holdings",
			zap.Int("unique", uniqueCount(fixedIncomeNames)),
			zap.String("quarter", opts.Quarter))
	}

	if opts.Upload {
		p.log.Info("upload flag set; triggering upload after cleaning")
		return p.RunUpload(ctx, UploadOptions{Quarter: opts.Quarter, ChunksDir: opts.ChunksDir})
	}
	return nil
}

// processDocument runs the per-file stages and returns the holdings rows
// found in the document's top-holdings sections.
func (p *Pipeline) processDocument(
	inputPDF, cleanPDFDir, chunksDir string,
	opts CleanOptions,
	store *dedupe.Store,
	runCache statecache.Cache,
) ([]model.TopHoldingEntry, error) {
	name := filepath.Base(inputPDF)

	info, err := os.Stat(inputPDF)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}

	var fingerprint string
	if runCache != nil {
		fingerprint = statecache.Fingerprint(inputPDF, info)
		if prev, found := runCache.Get(fingerprint); found && string(prev) == opts.Quarter {
			p.log.Info("unchanged since last run; skipping", zap.String("file", name))
			return nil, nil
		}
	}

	pages, err := pdfio.ReadPages(inputPDF)
	if err != nil {
		return nil, err
	}

	outputPath := filepath.Join(cleanPDFDir, langfilter.FilteredName(name))
	filterResult, err := p.filter.Apply(inputPDF, pages, outputPath)
	if err != nil {
		// The filtered document is a convenience copy; classification
		// stands even when it cannot be written.
		p.log.Warn("could not write filtered document", zap.Error(err))
	}
	if filterResult.KeptCount() == 0 {
		p.log.Warn("all pages classified as English; no filtered document written",
			zap.String("file", name))
	}
	p.log.Info("filtered pages",
		zap.String("file", name),
		zap.Int("kept", filterResult.KeptCount()),
		zap.Int("total", filterResult.TotalPages),
		zap.Int("removed", filterResult.RemovedCount()))

	kept := keepPages(pages, filterResult.KeptPages)
	sectionList := p.segmenter.Segment(kept)
	p.log.Info("parsed sections",
		zap.String("file", name),
		zap.Int("count", len(sectionList)),
		zap.Strings("names", sectionNames(sectionList)))

	fundMeta := deriveFundMetadata(inputPDF, opts.FundCode)
	results, err := store.Evaluate(fundMeta.Code, opts.Quarter, sectionList)
	if err != nil {
		return nil, fmt.Errorf("evaluate sections: %w", err)
	}
	p.log.Info("section change detection",
		zap.String("fund", fundMeta.Code),
		zap.Any("statuses", statusCounts(results)))

	if err := p.emitChunks(sectionList, results, opts.Quarter, chunksDir, fundMeta, fileTimestamp(info)); err != nil {
		return nil, err
	}

	var entries []model.TopHoldingEntry
	for _, section := range sectionList {
		if section.Name == "top_holdings" {
			entries = append(entries, p.extractor.Extract(section)...)
		}
	}

	if runCache != nil {
		if err := runCache.Set(fingerprint, []byte(opts.Quarter), 0); err != nil {
			p.log.Warn("could not record incremental state", zap.Error(err))
		}
	}
	return entries, nil
}

// UploadOptions are the parameters of the upload command.
type UploadOptions struct {
	Quarter       string
	ChunksDir     string
	DriveFolderID string
}

// RunUpload resolves the chunk directory and destination, then defers to
// the (not yet implemented) uploader.
func (p *Pipeline) RunUpload(ctx context.Context, opts UploadOptions) error {
	chunksDir, err := p.cfg.ResolveChunksDir(opts.Quarter, opts.ChunksDir)
	if err != nil {
		return err
	}
	target := opts.DriveFolderID
	if target == "" {
		target = p.cfg.DriveFolderID
	}

	p.log.Info("preparing to upload chunks",
		zap.String("quarter", opts.Quarter),
		zap.String("dir", chunksDir))
	if target == "" {
		p.log.Warn("no Drive folder ID configured; skipping upload")
		return nil
	}
	if _, err := os.Stat(chunksDir); os.IsNotExist(err) {
		p.log.Warn("chunk directory does not exist; nothing to upload",
			zap.String("dir", chunksDir))
		return nil
	}

	if err := p.uploader.Upload(ctx, chunksDir, target); err != nil {
		if err == upload.ErrNotImplemented {
			p.log.Warn("upload logic not yet implemented",
				zap.String("dir", chunksDir),
				zap.String("target", target))
			return nil
		}
		return fmt.Errorf("upload chunks: %w", err)
	}
	return nil
}

func listPDFs(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil, fmt.Errorf("list PDFs in %s: %w", dir, err)
	}
	sort.Strings(matches)
	return matches, nil
}

func keepPages(pages []model.Page, keptNumbers []int) []model.Page {
	keptSet := make(map[int]bool, len(keptNumbers))
	for _, n := range keptNumbers {
		keptSet[n] = true
	}
	var kept []model.Page
	for _, page := range pages {
		if keptSet[page.Number] {
			kept = append(kept, page)
		}
	}
	return kept
}

func sectionNames(list []model.Section) []string {
	names := make([]string, len(list))
	for i, s := range list {
		names[i] = s.Name
	}
	return names
}

func statusCounts(results []model.SectionHashResult) map[string]int {
	counts := map[string]int{
		model.StatusNew:     0,
		model.StatusUpdated: 0,
		model.StatusReuse:   0,
	}
	for _, r := range results {
		counts[r.Status]++
	}
	return counts
}

func uniqueCount(names []string) int {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return len(set)
}

func orAll(fundCode string) string {
	if fundCode == "" {
		return "<all>"
	}
	return fundCode
}

func fileTimestamp(info os.FileInfo) string {
	return info.ModTime().UTC().Format(time.RFC3339)
}

var fundCodeRE = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// deriveFundMetadata splits a "Fund Name_CODE.pdf" stem into name and
// code. A stem without a code suffix uses the whole stem for both.
func deriveFundMetadata(pdfPath, overrideCode string) model.FundMetadata {
	stem := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	name, code := splitNameCode(stem)

	if overrideCode != "" {
		code = overrideCode
	}
	code = strings.TrimSpace(code)
	if code == "" {
		code = stem
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = stem
	}
	return model.FundMetadata{Code: code, Name: name}
}

func splitNameCode(stem string) (string, string) {
	idx := strings.LastIndex(stem, "_")
	if idx > 0 && idx < len(stem)-1 {
		name, code := stem[:idx], stem[idx+1:]
		if fundCodeRE.MatchString(code) {
			return name, code
		}
	}
	return stem, stem
}
