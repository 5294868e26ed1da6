package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/f3rmion/battlestats/internal/stats"
)

func TestJoinCellsExample(t *testing.T) {
	got := JoinCells([][]string{
		{"A[1]", "1,000", "N/A"},
		{"B[2]", "500", "750"},
	})
	want := "A[1],1000,N/A\r\nB[2],500,750"
	if got != want {
		t.Errorf("JoinCells() = %q, want %q", got, want)
	}
}

func TestCSVKeepsCellCounts(t *testing.T) {
	records, err := stats.Parse(`
Alice [111] Strength: 1,000 Speed: N/A Dexterity: 500 Defense: 500 Total: 2,500
Bob [222] Strength: 2,000,000 Speed: 1 Dexterity: 1 Defense: 1 Total: N/A`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	table := stats.NewTable(records)
	table.Sort()

	out := CSV(table)
	lines := strings.Split(out, "\r\n")
	source := table.Cells()
	if len(lines) != len(source) {
		t.Fatalf("got %d lines, want %d", len(lines), len(source))
	}
	for i, line := range lines {
		cells := strings.Split(line, ",")
		if len(cells) != len(source[i]) {
			t.Errorf("line %d has %d cells, want %d", i, len(cells), len(source[i]))
		}
	}

	if lines[1] != "Bob[222],2000000,1,1,1,2000003" {
		t.Errorf("first body line = %q", lines[1])
	}
	if lines[0] != "Name[ID],Strength,Speed,Dexterity,Defense,Total" {
		t.Errorf("header = %q", lines[0])
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		layout string
		want   string
	}{
		{"", "export-3_5_2026.csv"},
		{"2006-01-02", "export-2026-03-05.csv"},
		{"02/01/2006", "export-05_03_2026.csv"},
	}
	for _, tt := range tests {
		if got := FileName(now, tt.layout); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.layout, got, tt.want)
		}
	}
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	path, err := Save("a,b", "", dir, "export-x.csv", nil)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if string(data) != "a,b" {
		t.Errorf("file contents = %q", data)
	}

	var buf bytes.Buffer
	where, err := Save("c,d", "-", dir, "ignored.csv", &buf)
	if err != nil {
		t.Fatalf("Save(-) error: %v", err)
	}
	if where != "stdout" || buf.String() != "c,d" {
		t.Errorf("Save(-) = %q, wrote %q", where, buf.String())
	}
}
