// Package render writes stats tables and export progress as plain terminal text.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/f3rmion/battlestats/internal/stats"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
)

// TableWriter prints tables with aligned columns.
type TableWriter struct {
	w          io.Writer
	profileURL string
	links      bool
}

// NewTableWriter creates a writer for w. Name cells become terminal
// hyperlinks to profileURL+id when w is a terminal.
func NewTableWriter(w io.Writer, profileURL string) *TableWriter {
	return &TableWriter{
		w:          w,
		profileURL: profileURL,
		links:      IsTerminal(w),
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Write prints the header and every row of t.
func (tw *TableWriter) Write(t *stats.Table) error {
	cells := t.Cells()
	widths := make([]int, len(stats.Columns))
	for _, row := range cells {
		for i, c := range row {
			if w := runewidth.StringWidth(c); w > widths[i] {
				widths[i] = w
			}
		}
	}

	rows := t.Rows()
	for r, row := range cells {
		var b strings.Builder
		for i, c := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			if i == 0 {
				padded := runewidth.FillRight(c, widths[i])
				if r > 0 && tw.links {
					padded = hyperlink(stats.ProfileLink(tw.profileURL, rows[r-1].ID), c) + padded[len(c):]
				}
				b.WriteString(padded)
				continue
			}
			// numbers are right aligned
			b.WriteString(runewidth.FillLeft(c, widths[i]))
		}
		if _, err := fmt.Fprintln(tw.w, strings.TrimRight(b.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}

// hyperlink wraps text in an OSC 8 terminal hyperlink.
func hyperlink(url, text string) string {
	return "\x1b]8;;" + url + "\x1b\\" + text + "\x1b]8;;\x1b\\"
}
