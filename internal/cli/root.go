package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fundclean/fundclean/internal/config"
	"github.com/fundclean/fundclean/internal/logging"
	"github.com/fundclean/fundclean/internal/pipeline"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fundclean",
	Short: "Fundclean - bilingual fund disclosure cleaning pipeline",
	Long: `Fundclean prepares quarterly fund disclosure PDFs for retrieval systems.

For each quarter it removes English-dominant pages, splits the Chinese
text into named sections, detects which sections changed since earlier
runs, emits chunked JSON records, and keeps cumulative registries of
top-holding companies and fixed-income instruments.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fundclean v%s\n", pipeline.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./fundclean.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the effective configuration for a command run. The
// --config flag wins over the FUNDCLEAN_CONFIG environment variable.
func loadConfig() (config.Config, error) {
	path := cfgFile
	if path == "" {
		path = os.Getenv("FUNDCLEAN_CONFIG")
	}
	return config.Load(path)
}

// newLogger builds the run logger, writing to stderr and a dated file
// under the configured log directory.
func newLogger(cfg config.Config, command string) (*zap.Logger, error) {
	logFile := filepath.Join(cfg.LogDir,
		fmt.Sprintf("%s_%s.log", command, time.Now().Format("20060102")))
	return logging.New(verbose, logFile)
}
