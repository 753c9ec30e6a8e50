package model

import (
	"testing"
	"time"
)

func TestCellDisplay(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want string
	}{
		{"absent", AbsentCell(), ""},
		{"string", StringCell("Jane Doe"), "Jane Doe"},
		{"integer number", NumberCell(12345), "12345"},
		{"fractional number", NumberCell(500.5), "500.5"},
		{"date", DateCell(time.Date(1990, 5, 3, 0, 0, 0, 0, time.UTC)), "1990-05-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cell.Display(); got != tt.want {
				t.Errorf("Display() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCellIsNull(t *testing.T) {
	if !AbsentCell().IsNull() {
		t.Error("Expected absent cell to be null")
	}
	if StringCell("").IsNull() {
		t.Error("Expected empty string cell to be non-null")
	}
	if NumberCell(0).IsNull() {
		t.Error("Expected zero number cell to be non-null")
	}
}

func TestNewSchemaTable(t *testing.T) {
	table := NewSchemaTable()

	if len(table.Columns) != len(Schema) {
		t.Fatalf("Expected %d columns, got %d", len(Schema), len(table.Columns))
	}
	if !table.IsEmpty() {
		t.Error("Expected schema table to have zero rows")
	}
	if _, ok := table.ColumnIndex(FieldName); !ok {
		t.Error("Expected schema table to advertise the Name column")
	}

	// Mutating the table's column slice must not touch the schema constant.
	table.Columns[0] = "changed"
	if Schema[0] != FieldName {
		t.Error("Expected Schema to be unaffected by table mutation")
	}
}

func TestTableColumnIndex(t *testing.T) {
	table := &Table{Columns: []string{"Name", "Extra"}}

	idx, ok := table.ColumnIndex("Extra")
	if !ok || idx != 1 {
		t.Errorf("Expected index 1 for Extra, got %d (ok=%v)", idx, ok)
	}
	if _, ok := table.ColumnIndex("Missing"); ok {
		t.Error("Expected false for unknown column")
	}
}

func TestRecordCell(t *testing.T) {
	table := &Table{
		Columns: []string{"Name", "Delay Days"},
		Rows: [][]Cell{
			{StringCell("Jane Doe"), NumberCell(3)},
		},
	}

	rec := table.Record(0)
	if rec == nil {
		t.Fatal("Expected record for row 0")
	}

	cell, ok := rec.Cell("Name")
	if !ok || cell.Display() != "Jane Doe" {
		t.Errorf("Expected Name cell Jane Doe, got %q (ok=%v)", cell.Display(), ok)
	}

	if _, ok := rec.Cell("Statement Balance"); ok {
		t.Error("Expected missing column to report !ok")
	}

	if table.Record(5) != nil {
		t.Error("Expected nil record for out-of-range row")
	}
}

func TestRecordCellShortRow(t *testing.T) {
	// Rows shorter than the column list read as absent, not panic.
	table := &Table{
		Columns: []string{"Name", "Email (01)"},
		Rows: [][]Cell{
			{StringCell("John Smith")},
		},
	}

	cell, ok := table.Record(0).Cell("Email (01)")
	if !ok {
		t.Fatal("Expected known column to report ok")
	}
	if !cell.IsNull() {
		t.Error("Expected short-row cell to be absent")
	}
}
