package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fundclean/fundclean/internal/config"
	"github.com/fundclean/fundclean/internal/pipeline"
)

var (
	cleanQuarter     string
	cleanFundCode    string
	cleanInputDir    string
	cleanChunksDir   string
	cleanIncremental bool
	cleanUpload      bool
)

// cleanCmd represents the clean command
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean a quarter's fund PDFs into sectioned, chunked JSON",
	Long: `Clean processes every PDF under the quarter's raw directory:
- Removes English-dominant pages and writes a filtered text copy
- Splits the remaining text into named sections
- Compares each section's hash against earlier runs
- Emits chunked JSON records with change annotations
- Appends newly seen top holdings to the cumulative registries

Example:
  fundclean clean --quarter 2025Q2
  fundclean clean --quarter 2025-q3 --fund-code HSB01 --upload`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().StringVarP(&cleanQuarter, "quarter", "q", "", "quarter label, e.g. 2025Q2 (required)")
	cleanCmd.Flags().StringVar(&cleanFundCode, "fund-code", "", "override the fund code derived from filenames")
	cleanCmd.Flags().StringVar(&cleanInputDir, "input-dir", "", "override the raw PDF base directory")
	cleanCmd.Flags().StringVar(&cleanChunksDir, "chunks-dir", "", "override the chunk output base directory")
	cleanCmd.Flags().BoolVar(&cleanIncremental, "incremental", true, "skip files unchanged since the last run")
	cleanCmd.Flags().BoolVar(&cleanUpload, "upload", false, "upload chunk output after cleaning")
	_ = cleanCmd.MarkFlagRequired("quarter")
}

func runClean(cmd *cobra.Command, args []string) error {
	quarter, err := config.NormalizeQuarter(cleanQuarter)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg, "clean")
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(cfg, log)
	return p.RunCleaning(ctx, pipeline.CleanOptions{
		Quarter:     quarter,
		FundCode:    cleanFundCode,
		InputDir:    cleanInputDir,
		ChunksDir:   cleanChunksDir,
		Incremental: cleanIncremental,
		Upload:      cleanUpload,
	})
}
