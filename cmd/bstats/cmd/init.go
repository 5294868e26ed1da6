package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/battlestats/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize bstats configuration",
	Long: `Write a config.yaml with the default settings to your config directory.

You can then edit it to change:
  - api.base_url / api.profile_url   (Torn API and profile links)
  - lookup.delay / concurrency / timeout   (YATA lookups)
  - export.dir / date_layout   (where exports go and how they are named)`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	path := filepath.Join(configDir, config.FileName)

	// Check if config already exists
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	if err := config.EnsureDir(configDir); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}

	fmt.Printf("Initialized bstats configuration in %s\n\n", configDir)
	fmt.Println("Next steps:")
	fmt.Println("  1. Store your Torn API key with 'bstats apikey set <key>'")
	fmt.Println("  2. Run 'bstats parse report.txt' to check a pasted report")
	fmt.Println("  3. Run 'bstats' to open the interactive UI")

	return nil
}
