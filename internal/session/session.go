// Package session wires parsing, sorting, exporting and the stored API key
// together for the CLI, the TUI and the HTTP server.
package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/f3rmion/battlestats/internal/config"
	"github.com/f3rmion/battlestats/internal/export"
	"github.com/f3rmion/battlestats/internal/keystore"
	"github.com/f3rmion/battlestats/internal/stats"
	"github.com/f3rmion/battlestats/internal/torn"
)

// Session holds the dependencies shared by every front end.
type Session struct {
	Config  *config.Config
	Keys    *keystore.Store // may be nil
	Fetcher export.ProfileFetcher
	Logger  *log.Logger
	Now     func() time.Time
}

// New creates a session using the Torn API client described by cfg.
func New(cfg *config.Config, keys *keystore.Store, logger *log.Logger) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Session{
		Config:  cfg,
		Keys:    keys,
		Fetcher: torn.NewClient(cfg.API.BaseURL, cfg.Lookup.Timeout),
		Logger:  logger,
		Now:     time.Now,
	}
}

// Parse parses text into a table and sorts it. Skipped entries are logged and
// returned as the error alongside the table of entries that did parse.
func (s *Session) Parse(text string) (*stats.Table, error) {
	records, err := stats.Parse(text)
	if err != nil {
		s.Logger.Printf("skipped entries: %v", err)
	}
	t := stats.NewTable(records)
	t.Sort()
	return t, err
}

// LoadFile reads a table from path. Files ending in .csv are read back as a
// generic CSV export, anything else is parsed as pasted text. The table is
// nil only when the file itself could not be read.
func (s *Session) LoadFile(path string) (*stats.Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()

		t, err := stats.TableFromCSV(f)
		if t == nil {
			return nil, err
		}
		if err != nil {
			s.Logger.Printf("skipped rows in %s: %v", path, err)
		}
		t.Sort()
		return t, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return s.Parse(string(data))
}

// APIKey returns the stored API key, or "" when none is stored.
func (s *Session) APIKey() (string, error) {
	if s.Keys == nil {
		return "", nil
	}
	return s.Keys.Get(keystore.APIKey)
}

// SetAPIKey persists key.
func (s *Session) SetAPIKey(key string) error {
	if s.Keys == nil {
		return nil
	}
	return s.Keys.Set(keystore.APIKey, key)
}

// CSV returns the export file name and the generic CSV for t.
func (s *Session) CSV(t *stats.Table) (name, data string) {
	return s.FileName(), export.CSV(t)
}

// FileName returns the name for an export written now.
func (s *Session) FileName() string {
	return export.FileName(s.Now(), s.Config.Export.DateLayout)
}

// YATA runs a YATA export of t with apiKey, reporting to progress.
func (s *Session) YATA(ctx context.Context, t *stats.Table, apiKey string, progress export.Progress) export.YATAResult {
	e := &export.YATAExporter{
		Fetcher:     s.Fetcher,
		Progress:    progress,
		Delay:       s.Config.Lookup.Delay,
		Concurrency: s.Config.Lookup.Concurrency,
		Logger:      s.Logger,
		Now:         s.Now,
	}
	return e.Export(ctx, t.Records(), apiKey)
}
