package render

import (
	"fmt"
	"io"
)

// TextProgress reports lookup progress as a single rewritten line.
type TextProgress struct {
	w io.Writer
}

// NewTextProgress creates a progress reporter writing to w.
func NewTextProgress(w io.Writer) *TextProgress {
	return &TextProgress{w: w}
}

// Reset clears the line for a new run of total lookups.
func (p *TextProgress) Reset(total int) {
	fmt.Fprintf(p.w, "\rProgress: 0 / %d", total)
}

// Advance prints "done / total" and the percentage.
func (p *TextProgress) Advance(done, total int) {
	pct := 0
	if total > 0 {
		pct = done * 100 / total
	}
	fmt.Fprintf(p.w, "\rProgress: %d / %d (%d%%)", done, total, pct)
}

// Finish ends the progress line.
func (p *TextProgress) Finish() {
	fmt.Fprintln(p.w)
}
