package export

import (
	"context"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/f3rmion/battlestats/internal/stats"
	"github.com/f3rmion/battlestats/internal/torn"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// YATAHeader is the first line of a YATA import file.
const YATAHeader = `#,Name,Level,Faction,Strength,Defense,Speed,Dexterity,Total,"FF Bonus","Last Update"`

// DefaultLookupDelay is the minimum time each row's lookup task takes.
const DefaultLookupDelay = 250 * time.Millisecond

// ProfileFetcher looks up a user's profile.
type ProfileFetcher interface {
	Profile(ctx context.Context, id, apiKey string) (*torn.Profile, error)
}

// Progress is told how many lookups have completed.
type Progress interface {
	Reset(total int)
	Advance(done, total int)
}

type nopProgress struct{}

func (nopProgress) Reset(int)        {}
func (nopProgress) Advance(int, int) {}

// YATAResult is the outcome of one export run.
type YATAResult struct {
	RunID    string
	CSV      string
	Exported int
	Dropped  int
}

// YATAExporter enriches records with level and faction and writes them in
// the YATA format.
type YATAExporter struct {
	Fetcher  ProfileFetcher
	Progress Progress

	// Delay is started alongside every lookup; a row's task finishes only
	// once both have. It does not cancel the request or limit the rate.
	Delay time.Duration

	// Concurrency caps simultaneous lookups. Zero means no cap.
	Concurrency int

	Logger *log.Logger
	Now    func() time.Time
}

// Export looks up every record and returns the CSV once all lookups have
// settled. Rows whose lookup fails are left out; no error is returned for them.
func (e *YATAExporter) Export(ctx context.Context, records []stats.Record, apiKey string) YATAResult {
	progress := e.Progress
	if progress == nil {
		progress = nopProgress{}
	}
	logger := e.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}

	runID := uuid.NewString()
	date := FormatDate(now())
	total := len(records)
	progress.Reset(total)
	logger.Printf("yata run %s: looking up %d profiles", runID, total)

	rows := make([]string, total)
	var (
		mu   sync.Mutex
		done int
		g    errgroup.Group
	)
	if e.Concurrency > 0 {
		g.SetLimit(e.Concurrency)
	}

	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			profile, err := e.lookup(ctx, rec.ID, apiKey)
			if err != nil {
				logger.Printf("yata run %s: dropping %s: %v", runID, rec.Label(), err)
				return nil
			}
			rows[i] = YATARow(rec, profile, date)

			mu.Lock()
			done++
			progress.Advance(done, total)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	lines := []string{YATAHeader}
	for _, row := range rows {
		if row != "" {
			lines = append(lines, row)
		}
	}

	res := YATAResult{
		RunID:    runID,
		CSV:      strings.Join(lines, "\r\n"),
		Exported: len(lines) - 1,
	}
	res.Dropped = total - res.Exported
	logger.Printf("yata run %s: exported %d, dropped %d", runID, res.Exported, res.Dropped)
	return res
}

// lookup fetches the profile and waits out the rest of the delay.
// Inclusion depends only on the request.
func (e *YATAExporter) lookup(ctx context.Context, id, apiKey string) (*torn.Profile, error) {
	timer := time.NewTimer(e.Delay)
	defer timer.Stop()

	profile, err := e.Fetcher.Profile(ctx, id, apiKey)

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
	return profile, err
}

// YATARow formats one record and its profile as a YATA CSV line.
func YATARow(rec stats.Record, p *torn.Profile, date string) string {
	level := ""
	if p.Level != 0 {
		level = strconv.FormatInt(p.Level, 10)
	}

	fields := []string{
		"",
		`"` + rec.Name + " [" + rec.ID + `]"`,
		level,
		p.Faction,
		yataStat(rec.Strength),
		yataStat(rec.Defense),
		yataStat(rec.Speed),
		yataStat(rec.Dexterity),
		yataStat(rec.Total),
		"",
		date,
	}
	return strings.Join(fields, ",")
}

// yataStat writes values shown as N/A in the table as 0.
func yataStat(v stats.Value) string {
	if !v.Valid || v.N == 0 {
		return "0"
	}
	return strconv.FormatInt(v.N, 10)
}

// FormatDate returns t as DD/MM/YY.
func FormatDate(t time.Time) string {
	return t.Format("02/01/06")
}
