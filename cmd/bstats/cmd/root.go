// Package cmd contains all CLI commands for bstats.
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/f3rmion/battlestats/internal/clipboard"
	"github.com/f3rmion/battlestats/internal/config"
	"github.com/f3rmion/battlestats/internal/keystore"
	"github.com/f3rmion/battlestats/internal/session"
	"github.com/f3rmion/battlestats/internal/stats"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bstats",
	Short: "Parse Torn battle stats and export them as CSV",
	Long: `bstats reads pasted Torn battle stat blocks such as

  Alice [111] Strength: 1,000 Speed: N/A Dexterity: 500 Defense: 500 Total: 2,500

fills in a single missing stat from the total, sorts players by total, and
exports the table as a plain CSV or as a YATA import file enriched with
level and faction from the Torn API.

Running 'bstats' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/bstats)")
	rootCmd.PersistentFlags().Bool("verbose", false, "log skipped entries and dropped lookups")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", dir)
	}

	viper.SetEnvPrefix("BSTATS")
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

func newLogger() *log.Logger {
	if viper.GetBool("verbose") {
		return log.New(os.Stderr, "bstats: ", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}

// openSession loads the config and opens the key store. The returned func
// closes the store.
func openSession() (*session.Session, func(), error) {
	dir := getConfigDir()

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if err != nil {
		return nil, nil, err
	}

	if err := config.EnsureDir(dir); err != nil {
		return nil, nil, fmt.Errorf("creating config directory: %w", err)
	}
	keys, err := keystore.Open(filepath.Join(dir, config.KeystoreName))
	if err != nil {
		return nil, nil, err
	}

	s := session.New(cfg, keys, newLogger())
	return s, func() { keys.Close() }, nil
}

// resolveAPIKey picks the key from the flag, then BSTATS_APIKEY, then the
// key store.
func resolveAPIKey(s *session.Session, flagKey string) (string, error) {
	if flagKey != "" {
		return flagKey, nil
	}
	if env := viper.GetString(keystore.APIKey); env != "" {
		return env, nil
	}
	return s.APIKey()
}

// readInput returns the text to parse: the clipboard, stdin for no argument
// or "-", or the named file.
func readInput(cmd *cobra.Command, args []string, fromClipboard bool) (string, error) {
	if fromClipboard {
		return clipboard.Read()
	}
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(data), nil
}

// loadTable parses the input, or loads it back as a generic CSV export when
// fromCSV is set, whatever the file is called. Skipped entries are only
// logged, so they are not an error here.
func loadTable(cmd *cobra.Command, s *session.Session, args []string, fromClipboard, fromCSV bool) (*stats.Table, error) {
	text, err := readInput(cmd, args, fromClipboard)
	if err != nil {
		return nil, err
	}

	if fromCSV {
		t, err := stats.TableFromCSV(strings.NewReader(text))
		if t == nil {
			return nil, err
		}
		if err != nil {
			s.Logger.Printf("skipped rows: %v", err)
		}
		t.Sort()
		return t, nil
	}

	t, _ := s.Parse(text)
	return t, nil
}
