package cmd

import (
	"fmt"
	"log"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/battlestats/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var uiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"i", "interactive"},
	Short:   "Launch interactive TUI",
	Long: `Launch the interactive terminal UI.

Paste stat blocks and press ctrl+s to parse them, then export from the
table view with c (CSV) or y (YATA). Press tab to reach the menu and ? for
all keys.`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	s, closeSession, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession()

	// stderr is hidden behind the alt screen
	if viper.GetBool("verbose") {
		f, err := tea.LogToFile(filepath.Join(getConfigDir(), "debug.log"), "bstats")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer f.Close()
		s.Logger = log.Default()
	}

	apiKey, err := resolveAPIKey(s, "")
	if err != nil {
		s.Logger.Printf("reading stored API key: %v", err)
	}

	p := tea.NewProgram(
		tui.NewApp(s, getConfigDir(), apiKey),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
