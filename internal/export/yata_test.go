package export

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/f3rmion/battlestats/internal/stats"
	"github.com/f3rmion/battlestats/internal/torn"
)

type fakeFetcher struct {
	mu       sync.Mutex
	profiles map[string]*torn.Profile
	calls    []string
}

func (f *fakeFetcher) Profile(ctx context.Context, id, apiKey string) (*torn.Profile, error) {
	f.mu.Lock()
	f.calls = append(f.calls, id+":"+apiKey)
	f.mu.Unlock()

	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, errors.New("lookup failed")
}

type recordingProgress struct {
	mu     sync.Mutex
	resets []int
	dones  []int
}

func (p *recordingProgress) Reset(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resets = append(p.resets, total)
}

func (p *recordingProgress) Advance(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dones = append(p.dones, done)
}

func TestYATAExport(t *testing.T) {
	records := []stats.Record{
		{Name: "Alice", ID: "111", Strength: stats.Known(1000), Speed: stats.Known(500), Dexterity: stats.Known(500), Defense: stats.Known(500), Total: stats.Known(2500)},
		{Name: "Ghost", ID: "222", Total: stats.Known(100)},
		{Name: "Bob", ID: "333", Speed: stats.Known(10), Total: stats.Known(10)},
	}
	fetcher := &fakeFetcher{profiles: map[string]*torn.Profile{
		"111": {Level: 15, Faction: "Night Owls"},
		"333": {Level: 0, Faction: ""},
	}}
	progress := &recordingProgress{}

	e := &YATAExporter{
		Fetcher:  fetcher,
		Progress: progress,
		Delay:    time.Millisecond,
		Now:      func() time.Time { return time.Date(2026, time.October, 5, 0, 0, 0, 0, time.UTC) },
	}
	res := e.Export(context.Background(), records, "key123")

	want := YATAHeader + "\r\n" +
		`,"Alice [111]",15,Night Owls,1000,500,500,500,2500,,05/10/26` + "\r\n" +
		`,"Bob [333]",,,0,0,10,0,10,,05/10/26`
	if res.CSV != want {
		t.Errorf("CSV =\n%q\nwant\n%q", res.CSV, want)
	}
	if res.Exported != 2 || res.Dropped != 1 {
		t.Errorf("exported/dropped = %d/%d, want 2/1", res.Exported, res.Dropped)
	}
	if strings.Count(res.CSV, "Alice") != 1 {
		t.Error("successful row should appear exactly once")
	}
	if strings.Contains(res.CSV, "Ghost") {
		t.Error("failed row should be absent")
	}

	if len(fetcher.calls) != 3 {
		t.Errorf("got %d lookups, want 3", len(fetcher.calls))
	}
	for _, c := range fetcher.calls {
		if !strings.HasSuffix(c, ":key123") {
			t.Errorf("lookup %q did not pass the api key", c)
		}
	}

	if len(progress.resets) != 1 || progress.resets[0] != 3 {
		t.Errorf("resets = %v, want [3]", progress.resets)
	}
	if len(progress.dones) != 2 || progress.dones[0] != 1 || progress.dones[1] != 2 {
		t.Errorf("progress = %v, want [1 2]", progress.dones)
	}
}

func TestYATAExportEmpty(t *testing.T) {
	e := &YATAExporter{Fetcher: &fakeFetcher{}}
	res := e.Export(context.Background(), nil, "k")
	if res.CSV != YATAHeader {
		t.Errorf("CSV = %q, want header only", res.CSV)
	}
	if res.RunID == "" {
		t.Error("RunID is empty")
	}
}

func TestYATAExportWaitsForDelay(t *testing.T) {
	e := &YATAExporter{
		Fetcher: &fakeFetcher{profiles: map[string]*torn.Profile{"1": {Level: 1, Faction: "F"}}},
		Delay:   100 * time.Millisecond,
	}
	records := []stats.Record{{Name: "a", ID: "1"}, {Name: "b", ID: "1"}, {Name: "c", ID: "1"}}

	start := time.Now()
	res := e.Export(context.Background(), records, "k")
	elapsed := time.Since(start)

	if res.Exported != 3 {
		t.Errorf("Exported = %d, want 3", res.Exported)
	}
	if elapsed < 100*time.Millisecond {
		t.Errorf("export took %v, want at least the delay", elapsed)
	}
	// The delay runs per row, not one after another.
	if elapsed >= 280*time.Millisecond {
		t.Errorf("export took %v, lookups look serialized", elapsed)
	}
}

func TestYATAExportConcurrencyLimit(t *testing.T) {
	e := &YATAExporter{
		Fetcher:     &fakeFetcher{profiles: map[string]*torn.Profile{"1": {Level: 1, Faction: "F"}}},
		Concurrency: 1,
	}
	records := []stats.Record{{Name: "a", ID: "1"}, {Name: "b", ID: "1"}}
	res := e.Export(context.Background(), records, "k")
	if res.Exported != 2 {
		t.Errorf("Exported = %d, want 2", res.Exported)
	}
}

func TestFormatDate(t *testing.T) {
	got := FormatDate(time.Date(2031, time.January, 9, 0, 0, 0, 0, time.UTC))
	if got != "09/01/31" {
		t.Errorf("FormatDate() = %q, want 09/01/31", got)
	}
}

type slowFetcher struct {
	wait time.Duration
	fail map[string]bool
}

func (f slowFetcher) Profile(ctx context.Context, id, apiKey string) (*torn.Profile, error) {
	time.Sleep(f.wait)
	if f.fail[id] {
		return nil, errors.New("lookup failed")
	}
	return &torn.Profile{Level: 3, Faction: "F"}, nil
}

func TestYATAExportSlowLookups(t *testing.T) {
	progress := &recordingProgress{}
	e := &YATAExporter{
		Fetcher:  slowFetcher{wait: 2 * DefaultLookupDelay, fail: map[string]bool{"2": true}},
		Progress: progress,
		Delay:    DefaultLookupDelay,
		Now:      func() time.Time { return time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC) },
	}
	records := []stats.Record{
		{Name: "a", ID: "1", Total: stats.Known(5)},
		{Name: "b", ID: "2", Total: stats.Known(7)},
	}

	res := e.Export(context.Background(), records, "k")

	// Lookups outlasting the delay still count; only their own result decides.
	want := YATAHeader + "\r\n" + `,"a [1]",3,F,0,0,0,0,5,,15/10/26`
	if res.CSV != want {
		t.Errorf("CSV =\n%q\nwant\n%q", res.CSV, want)
	}
	if res.Exported != 1 || res.Dropped != 1 {
		t.Errorf("Exported, Dropped = %d, %d, want 1, 1", res.Exported, res.Dropped)
	}
	if len(progress.dones) != 1 || progress.dones[0] != 1 {
		t.Errorf("progress advanced %v, want [1]", progress.dones)
	}
}
