package stats

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedEntry is returned for an entry without a "name [id]" header.
var ErrMalformedEntry = errors.New("entry has no name [id] header")

// EntryError describes an entry that was skipped while parsing.
type EntryError struct {
	Index int    // Position of the entry in the input
	Text  string // Leading text of the entry
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("entry %d (%q): %v", e.Index, e.Text, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

var (
	// entryStart marks where an entry begins: a word, one space, then [digits].
	// Copied page text often has a no-break space there, which \s misses.
	entryStart  = regexp.MustCompile(`\b\w+[\s\p{Zs}]\[\d+\]`)
	entryHeader = regexp.MustCompile(`^(.*)\[(\d+)\]`)

	fieldPatterns = []struct {
		name string
		re   *regexp.Regexp
	}{
		{"strength", regexp.MustCompile(`Strength:[\s\p{Zs}]*([\d,]+|N/A)`)},
		{"speed", regexp.MustCompile(`Speed:[\s\p{Zs}]*([\d,]+|N/A)`)},
		{"dexterity", regexp.MustCompile(`Dexterity:[\s\p{Zs}]*([\d,]+|N/A)`)},
		{"defense", regexp.MustCompile(`Defense:[\s\p{Zs}]*([\d,]+|N/A)`)},
		{"total", regexp.MustCompile(`Total:[\s\p{Zs}]*([\d,]+|N/A)`)},
	}
)

// Parse extracts one record per entry in text, in input order.
//
// Entries whose header cannot be read are skipped; the returned error joins
// an *EntryError for each of them and is nil when every entry parsed.
func Parse(text string) ([]Record, error) {
	var (
		records []Record
		errs    []error
	)
	for i, entry := range SplitEntries(text) {
		rec, err := ParseEntry(entry)
		if err != nil {
			errs = append(errs, &EntryError{Index: i, Text: snippet(entry), Err: err})
			continue
		}
		records = append(records, rec)
	}
	return records, errors.Join(errs...)
}

// SplitEntries splits text at the start of every "name [id]" token.
// Text before the first token is dropped.
func SplitEntries(text string) []string {
	locs := entryStart.FindAllStringIndex(text, -1)
	entries := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		entries = append(entries, text[loc[0]:end])
	}
	return entries
}

// ParseEntry parses a single stat block and infers a single missing value.
func ParseEntry(entry string) (Record, error) {
	m := entryHeader.FindStringSubmatch(entry)
	if m == nil {
		return Record{}, ErrMalformedEntry
	}

	rec := Record{
		Name: strings.TrimSpace(m[1]),
		ID:   m[2],
	}

	fields := rec.fields()
	for i, fp := range fieldPatterns {
		fm := fp.re.FindStringSubmatch(entry)
		if fm == nil {
			continue
		}
		*fields[i] = parseNumber(fm[1])
	}

	rec.Infer()
	return rec, nil
}

// parseNumber reads a comma-grouped integer. N/A and anything that is not an
// integer once commas are gone are unknown.
func parseNumber(s string) Value {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || s == "N/A" {
		return Value{}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Value{}
	}
	return Known(n)
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	if len(s) > 40 {
		s = s[:40] + "..."
	}
	return s
}
