package stats

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotAvailable is shown for zero, unknown and unparseable values.
const NotAvailable = "N/A"

// DefaultProfileURL is the profile page prefix a row's ID is appended to.
const DefaultProfileURL = "https://www.torn.com/profiles.php?XID="

// Columns are the table headers.
var Columns = []string{"Name[ID]", "Strength", "Speed", "Dexterity", "Defense", "Total"}

var printer = message.NewPrinter(language.English)

// FormatValue renders a value with thousands separators, or N/A when it is
// zero or unknown.
func FormatValue(v Value) string {
	if !v.Valid || v.N == 0 {
		return NotAvailable
	}
	return printer.Sprintf("%d", v.N)
}

// Row is the displayed form of a record.
type Row struct {
	ID    string
	Cells []string
}

// NewRow projects a record into its six display cells.
func NewRow(r Record) Row {
	cells := make([]string, 0, len(Columns))
	cells = append(cells, r.Label())
	for _, v := range r.Stats() {
		cells = append(cells, FormatValue(v))
	}
	return Row{ID: r.ID, Cells: cells}
}

// ProfileLink returns the profile page for id.
func ProfileLink(base, id string) string {
	if base == "" {
		base = DefaultProfileURL
	}
	return base + id
}

// Table holds parsed records in display order. Records are the source of
// truth; rows are derived from them on demand.
type Table struct {
	records []Record
}

// NewTable creates a table over a copy of records.
func NewTable(records []Record) *Table {
	t := &Table{records: make([]Record, len(records))}
	copy(t.records, records)
	return t
}

// Len returns the number of body rows.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns a copy of the records in display order.
func (t *Table) Records() []Record {
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// Sort orders records by total, highest first. Unknown totals count as 0 and
// equal totals keep their current order.
func (t *Table) Sort() {
	sort.SliceStable(t.records, func(i, j int) bool {
		return t.records[i].Total.N > t.records[j].Total.N
	})
}

// Rows returns the display rows, header excluded.
func (t *Table) Rows() []Row {
	rows := make([]Row, len(t.records))
	for i, r := range t.records {
		rows[i] = NewRow(r)
	}
	return rows
}

// Cells returns the header followed by every row's cells.
func (t *Table) Cells() [][]string {
	cells := make([][]string, 0, len(t.records)+1)
	cells = append(cells, append([]string(nil), Columns...))
	for _, row := range t.Rows() {
		cells = append(cells, row.Cells)
	}
	return cells
}

var labelID = regexp.MustCompile(`\[(\d+)\]`)

// RecordFromCells re-reads a record from display text. Cells reading 0, NaN
// or N/A, and cells that are not integers once commas are stripped, come
// back unknown, so a zero and a missing value cannot be told apart.
func RecordFromCells(cells []string) (Record, error) {
	if len(cells) < len(Columns) {
		return Record{}, fmt.Errorf("row has %d cells, want %d", len(cells), len(Columns))
	}
	m := labelID.FindStringSubmatch(cells[0])
	if m == nil {
		return Record{}, ErrMalformedEntry
	}

	rec := Record{
		Name: strings.TrimSpace(strings.SplitN(cells[0], "[", 2)[0]),
		ID:   m[1],
	}
	fields := rec.fields()
	for i := range fields {
		*fields[i] = parseCell(cells[i+1])
	}
	return rec, nil
}

func parseCell(s string) Value {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	switch s {
	case "0", "NaN", NotAvailable:
		return Value{}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n == 0 {
		return Value{}
	}
	return Known(n)
}

// TableFromCSV loads a table back from a generic CSV export. A leading
// header row is skipped. Rows that cannot be read are skipped and reported
// through the returned error, like Parse.
func TableFromCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	lines, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	var (
		records []Record
		errs    []error
	)
	for i, line := range lines {
		if i == 0 && len(line) > 0 && line[0] == Columns[0] {
			continue
		}
		rec, err := RecordFromCells(line)
		if err != nil {
			errs = append(errs, &EntryError{Index: i, Text: snippet(strings.Join(line, ",")), Err: err})
			continue
		}
		records = append(records, rec)
	}
	return NewTable(records), errors.Join(errs...)
}
