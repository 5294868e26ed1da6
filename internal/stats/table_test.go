package stats

import (
	"strings"
	"testing"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"unknown", Value{}, "N/A"},
		{"zero", Known(0), "N/A"},
		{"small", Known(999), "999"},
		{"thousands", Known(1234), "1,234"},
		{"millions", Known(1234567890), "1,234,567,890"},
		{"negative", Known(-1500), "-1,500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.v); got != tt.want {
				t.Errorf("FormatValue(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}

func TestNewRow(t *testing.T) {
	row := NewRow(Record{Name: "Alice", ID: "111", Strength: Known(1000), Total: Known(1000)})
	want := []string{"Alice[111]", "1,000", "N/A", "N/A", "N/A", "1,000"}
	if strings.Join(row.Cells, "|") != strings.Join(want, "|") {
		t.Errorf("NewRow() = %q, want %q", row.Cells, want)
	}
	if row.ID != "111" {
		t.Errorf("row.ID = %s, want 111", row.ID)
	}
}

func TestTableSortDescending(t *testing.T) {
	table := NewTable([]Record{
		{Name: "a", ID: "1", Total: Known(10)},
		{Name: "b", ID: "2"},
		{Name: "c", ID: "3", Total: Known(300)},
		{Name: "d", ID: "4", Total: Known(10)},
		{Name: "e", ID: "5", Total: Known(-5)},
	})
	table.Sort()

	records := table.Records()
	for i := 0; i+1 < len(records); i++ {
		if records[i].Total.N < records[i+1].Total.N {
			t.Errorf("row %d total %d < row %d total %d", i, records[i].Total.N, i+1, records[i+1].Total.N)
		}
	}

	var ids []string
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	if got := strings.Join(ids, ","); got != "3,1,4,2,5" {
		t.Errorf("sorted ids = %s, want 3,1,4,2,5", got)
	}
}

func TestTableCells(t *testing.T) {
	table := NewTable([]Record{{Name: "A", ID: "1", Total: Known(1000)}})
	cells := table.Cells()
	if len(cells) != 2 {
		t.Fatalf("got %d rows, want 2", len(cells))
	}
	if cells[0][0] != "Name[ID]" || cells[1][0] != "A[1]" || cells[1][5] != "1,000" {
		t.Errorf("Cells() = %q", cells)
	}
}

func TestTableRecordsIsCopy(t *testing.T) {
	table := NewTable([]Record{{Name: "A", ID: "1"}})
	records := table.Records()
	records[0].Name = "changed"
	if table.Records()[0].Name != "A" {
		t.Error("Records() exposed the table's backing slice")
	}
}

func TestRecordFromCells(t *testing.T) {
	rec, err := RecordFromCells([]string{"Alice [111]", "1,000", "N/A", "0", "NaN", "2,500"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Name != "Alice" || rec.ID != "111" {
		t.Errorf("name/id = %q/%q, want Alice/111", rec.Name, rec.ID)
	}
	if rec.Strength != Known(1000) || rec.Total != Known(2500) {
		t.Errorf("strength/total = %v/%v", rec.Strength, rec.Total)
	}
	for _, v := range []Value{rec.Speed, rec.Dexterity, rec.Defense} {
		if v.Valid || v.N != 0 {
			t.Errorf("cell re-read as %+v, want unknown 0", v)
		}
	}
}

func TestRecordFromCellsErrors(t *testing.T) {
	if _, err := RecordFromCells([]string{"Alice[1]", "1"}); err == nil {
		t.Error("expected error for short row")
	}
	if _, err := RecordFromCells([]string{"Alice", "1", "1", "1", "1", "4"}); err == nil {
		t.Error("expected error for row without [id]")
	}
}

func TestDisplayRoundTripIsLossy(t *testing.T) {
	original := Record{Name: "Z", ID: "9", Strength: Known(0), Speed: Known(5), Dexterity: Known(5), Defense: Known(5), Total: Known(15)}
	row := NewRow(original)
	if row.Cells[1] != "N/A" {
		t.Fatalf("zero strength displayed as %q, want N/A", row.Cells[1])
	}

	back, err := RecordFromCells(row.Cells)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.Strength.Valid {
		t.Errorf("re-read strength = %+v, want unknown", back.Strength)
	}
	if back.Strength.N != 0 {
		t.Errorf("re-read strength compares as %d, want 0", back.Strength.N)
	}
	if NewRow(back).Cells[1] != "N/A" {
		t.Error("normalization is not idempotent")
	}
}

func TestTableFromCSV(t *testing.T) {
	input := "Name[ID],Strength,Speed,Dexterity,Defense,Total\r\n" +
		"B[2],500,N/A,N/A,N/A,500\r\n" +
		"garbage\r\n" +
		"A[1],1000,N/A,N/A,N/A,1000"

	table, err := TableFromCSV(strings.NewReader(input))
	if err == nil {
		t.Error("expected an error for the garbage row")
	}
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}

	table.Sort()
	if first := table.Records()[0]; first.ID != "1" || first.Total != Known(1000) {
		t.Errorf("first row after sort = %+v", first)
	}
}

func TestValueJSON(t *testing.T) {
	b, _ := Known(42).MarshalJSON()
	if string(b) != "42" {
		t.Errorf("Known(42) = %s", b)
	}
	b, _ = Value{}.MarshalJSON()
	if string(b) != "null" {
		t.Errorf("Value{} = %s", b)
	}

	var v Value
	if err := v.UnmarshalJSON([]byte("7")); err != nil || v != Known(7) {
		t.Errorf("UnmarshalJSON(7) = %+v, %v", v, err)
	}
	if err := v.UnmarshalJSON([]byte("null")); err != nil || v.Valid {
		t.Errorf("UnmarshalJSON(null) = %+v, %v", v, err)
	}
}
