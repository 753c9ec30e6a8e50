package service

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/zieg12345/clientsearchinfo/model"
)

const (
	// ExportFileName is the fixed name of the exported workbook.
	ExportFileName = "data.xlsx"
	// SpreadsheetContentType is the xlsx MIME type.
	SpreadsheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ParseWorkbook reads the first sheet of an xlsx stream into a table.
// The first row is the header; every column is kept in file order, the
// schema ones and any extras alike. Cells are classified as they parse:
// blank -> absent, stored-as-numeric -> number, anything else -> string.
// A workbook with a header but no data rows comes back as an empty
// table, which the store treats as "empty input".
func ParseWorkbook(r io.Reader) (*model.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return &model.Table{}, nil
	}

	columns := make([]string, 0, len(rows[0]))
	seen := make(map[string]bool, len(rows[0]))
	for _, name := range rows[0] {
		name = strings.TrimSpace(name)
		if seen[name] {
			return nil, fmt.Errorf("duplicate column %q in header", name)
		}
		seen[name] = true
		columns = append(columns, name)
	}

	table := &model.Table{Columns: columns}
	for rowIdx, raw := range rows[1:] {
		cells := make([]model.Cell, len(columns))
		for colIdx := range columns {
			var value string
			if colIdx < len(raw) {
				value = raw[colIdx]
			}
			ref, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address cell: %w", err)
			}
			cellType, err := f.GetCellType(sheets[0], ref)
			if err != nil {
				cellType = excelize.CellTypeUnset
			}
			cells[colIdx] = classifyCell(value, cellType)
		}
		table.Rows = append(table.Rows, cells)
	}

	return table, nil
}

// classifyCell maps a sheet cell to the tagged variant. Only cells the
// workbook itself stores as numeric become numbers; text that merely
// looks numeric, like an account key "00123", stays a string so its
// leading zeros survive preview and export. Plain numeric cells carry
// no type attribute in the file, hence the unset case.
func classifyCell(value string, cellType excelize.CellType) model.Cell {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return model.AbsentCell()
	}
	switch cellType {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return model.NumberCell(f)
		}
	}
	return model.StringCell(trimmed)
}

// WriteWorkbook serializes the table back to xlsx bytes, preserving
// column order and every row, absent cells left blank.
func WriteWorkbook(t *model.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for rowIdx, row := range t.Rows {
		values := make([]interface{}, len(t.Columns))
		for colIdx := range t.Columns {
			if colIdx >= len(row) {
				continue
			}
			switch cell := row[colIdx]; cell.Kind {
			case model.CellString:
				values[colIdx] = cell.Str
			case model.CellNumber:
				values[colIdx] = cell.Num
			case model.CellDate:
				values[colIdx] = cell.Time
			}
		}

		ref, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", rowIdx+2, err)
		}
		if err := f.SetSheetRow(sheet, ref, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", rowIdx+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
