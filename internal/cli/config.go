package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fundclean/fundclean/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage fundclean configuration",
	Long: `Manage fundclean configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (FUNDCLEAN_*)
3. Config file (./fundclean.toml or config/fundclean.toml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Print(string(yamlData))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long:  `Create fundclean.toml in the working directory with the built-in defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := "fundclean.toml"
		if cfgFile != "" {
			configPath = cfgFile
		}

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s\nUse 'fundclean config show' to view it, or delete it first to recreate", configPath)
		}

		defaults := config.Default()
		content := fmt.Sprintf(`# fundclean configuration
# Values can be overridden with FUNDCLEAN_* environment variables,
# e.g. FUNDCLEAN_RAW_DIR=/data/raw/pdf.

raw_dir = %q
clean_pdf_dir = %q
clean_chunks_dir = %q
structured_dir = %q
state_dir = %q
log_dir = %q
drive_folder_id = %q
chunk_size = %d
chunk_overlap = %d
`,
			defaults.RawDir, defaults.CleanPDFDir, defaults.CleanChunksDir,
			defaults.StructuredDir, defaults.StateDir, defaults.LogDir,
			defaults.DriveFolderID, defaults.ChunkSize, defaults.ChunkOverlap)

		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}

		fmt.Printf("Created default configuration: %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
