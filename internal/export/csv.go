// Package export turns a stats table into CSV files, either as a verbatim
// dump of the displayed table or in the YATA import format.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/f3rmion/battlestats/internal/stats"
)

// DefaultDateLayout matches an en-US short locale date.
const DefaultDateLayout = "1/2/2006"

// JoinCells joins rows of cells as CSV. Commas inside cells are removed rather
// than quoted, cells are joined with "," and rows with CRLF.
func JoinCells(rows [][]string) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = strings.ReplaceAll(c, ",", "")
		}
		lines[i] = strings.Join(cells, ",")
	}
	return strings.Join(lines, "\r\n")
}

// CSV dumps the displayed table, header included.
func CSV(t *stats.Table) string {
	return JoinCells(t.Cells())
}

// FileName returns "export-<date>.csv" for now formatted with layout.
// Path separators in the date are replaced with "_".
func FileName(now time.Time, layout string) string {
	if layout == "" {
		layout = DefaultDateLayout
	}
	date := now.Format(layout)
	date = strings.NewReplacer("/", "_", "\\", "_").Replace(date)
	return "export-" + date + ".csv"
}

// Save writes data to out and returns where it went. An out of "-" writes to
// stdout; an empty out writes name into dir.
func Save(data, out, dir, name string, stdout io.Writer) (string, error) {
	if out == "-" {
		if _, err := io.WriteString(stdout, data); err != nil {
			return "", fmt.Errorf("writing to stdout: %w", err)
		}
		return "stdout", nil
	}

	path := out
	if path == "" {
		if dir == "" {
			dir = "."
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
		path = filepath.Join(dir, name)
	}

	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
