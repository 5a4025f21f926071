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
	uploadQuarter   string
	uploadChunksDir string
	uploadFolderID  string
)

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a quarter's chunk output to the configured Drive folder",
	Long: `Upload pushes the quarter's chunk JSON files to a Google Drive
folder. The Drive integration is not wired up yet; the command resolves
paths and reports what it would send.

Example:
  fundclean upload --quarter 2025Q2
  fundclean upload --quarter 2025Q2 --drive-folder-id 1AbCdEfG`,
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringVarP(&uploadQuarter, "quarter", "q", "", "quarter label, e.g. 2025Q2 (required)")
	uploadCmd.Flags().StringVar(&uploadChunksDir, "chunks-dir", "", "override the chunk output base directory")
	uploadCmd.Flags().StringVar(&uploadFolderID, "drive-folder-id", "", "destination Drive folder ID (overrides config)")
	_ = uploadCmd.MarkFlagRequired("quarter")
}

func runUpload(cmd *cobra.Command, args []string) error {
	quarter, err := config.NormalizeQuarter(uploadQuarter)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg, "upload")
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(cfg, log)
	return p.RunUpload(ctx, pipeline.UploadOptions{
		Quarter:       quarter,
		ChunksDir:     uploadChunksDir,
		DriveFolderID: uploadFolderID,
	})
}
