package model

import (
	"strconv"
	"time"
)

// Schema field names for the client master list. Uploaded workbooks may
// carry extra columns (preserved for export) or miss some of these
// (extraction falls back to defaults).
const (
	FieldName             = "Name"
	FieldAccountKey       = "Account Key"
	FieldContractNumber   = "Contract Number"
	FieldBirthdate        = "Birthdate"
	FieldRepaymentCycle   = "Repayment Cycle"
	FieldDelayDays        = "Delay Days"
	FieldCurrencyCode     = "Currency Code"
	FieldTotalOutstanding = "Total Outstanding"
	FieldStatementBalance = "Statement Balance"
	FieldStatementMinimum = "Statement Minimum Payment"
	FieldStatementOverdue = "Statement Overdue Amount"
	FieldInstallmentAmt01 = "Installment Amount (01)"
	FieldInstallmentAmt02 = "Installment Amount (02)"
	FieldEmail01          = "Email (01)"
	FieldResidenceAddress = "Residence Add"
)

// Schema lists the display fields in render order.
var Schema = []string{
	FieldName,
	FieldAccountKey,
	FieldContractNumber,
	FieldBirthdate,
	FieldRepaymentCycle,
	FieldDelayDays,
	FieldCurrencyCode,
	FieldTotalOutstanding,
	FieldStatementBalance,
	FieldStatementMinimum,
	FieldStatementOverdue,
	FieldInstallmentAmt01,
	FieldInstallmentAmt02,
	FieldEmail01,
	FieldResidenceAddress,
}

// CellKind tags the variant held by a Cell.
type CellKind int

const (
	CellAbsent CellKind = iota
	CellString
	CellNumber
	CellDate
)

// Cell is one table value. Exactly one of the payload fields is
// meaningful, selected by Kind; CellAbsent carries none.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
	Time time.Time
}

func AbsentCell() Cell          { return Cell{Kind: CellAbsent} }
func StringCell(s string) Cell  { return Cell{Kind: CellString, Str: s} }
func NumberCell(f float64) Cell { return Cell{Kind: CellNumber, Num: f} }
func DateCell(t time.Time) Cell { return Cell{Kind: CellDate, Time: t} }

// IsNull reports whether the cell holds no usable value.
func (c Cell) IsNull() bool {
	return c.Kind == CellAbsent
}

// Display renders the raw cell value as a plain string, without any
// field-specific coercion or grouping.
func (c Cell) Display() string {
	switch c.Kind {
	case CellString:
		return c.Str
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case CellDate:
		return c.Time.Format("2006-01-02")
	default:
		return ""
	}
}

// Table is an ordered set of named columns plus rows in load order.
// Column names are unique; each row is aligned with Columns.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// NewSchemaTable returns the empty table a fresh session starts with:
// all schema columns advertised, zero rows.
func NewSchemaTable() *Table {
	cols := make([]string, len(Schema))
	copy(cols, Schema)
	return &Table{Columns: cols}
}

// ColumnIndex returns the position of a named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, col := range t.Columns {
		if col == name {
			return i, true
		}
	}
	return 0, false
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// IsEmpty reports whether the table has no data rows.
func (t *Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Record returns row i as a Record, or nil when out of range.
func (t *Table) Record(i int) *Record {
	if i < 0 || i >= len(t.Rows) {
		return nil
	}
	return &Record{table: t, cells: t.Rows[i], index: i}
}

// Record is one row viewed through its table's column names.
type Record struct {
	table *Table
	cells []Cell
	index int
}

// Index returns the row's position in load order.
func (r *Record) Index() int {
	return r.index
}

// Cell returns the value under fieldName. The second return is false
// when the table has no such column.
func (r *Record) Cell(fieldName string) (Cell, bool) {
	idx, ok := r.table.ColumnIndex(fieldName)
	if !ok {
		return Cell{}, false
	}
	if idx >= len(r.cells) {
		return AbsentCell(), true
	}
	return r.cells[idx], true
}
