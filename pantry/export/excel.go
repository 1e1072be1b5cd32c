// export/excel.go
package export

import (
	"fmt"
	"io"
	"reflect"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	minColWidth = 10
	maxColWidth = 50
)

// Excel builds an .xlsx workbook. Sheets are written to the underlying
// file once, on the first Write, Bytes or Save.
type Excel struct {
	file   *excelize.File
	sheets []*ExcelSheet
	built  bool
}

// ExcelSheet collects the headers and rows of one worksheet.
type ExcelSheet struct {
	excel        *Excel
	name         string
	headers      []string
	rows         [][]any
	autoWidth    bool
	freezeHeader bool
	err          error
}

// NewExcel creates a new Excel workbook.
func NewExcel() *Excel {
	return &Excel{file: excelize.NewFile()}
}

// Sheet creates or returns the sheet called name. The first sheet takes
// over the workbook's default "Sheet1".
func (e *Excel) Sheet(name string) *ExcelSheet {
	for _, s := range e.sheets {
		if s.name == name {
			return s
		}
	}

	sheet := &ExcelSheet{excel: e, name: name}
	if len(e.sheets) == 0 {
		if name != "Sheet1" {
			sheet.err = e.file.SetSheetName("Sheet1", name)
		}
	} else if _, err := e.file.NewSheet(name); err != nil {
		sheet.err = err
	}
	e.sheets = append(e.sheets, sheet)
	return sheet
}

// Headers sets the column headers.
func (s *ExcelSheet) Headers(headers ...string) *ExcelSheet {
	s.headers = headers
	return s
}

// Row adds a single row.
func (s *ExcelSheet) Row(values ...any) *ExcelSheet {
	s.rows = append(s.rows, values)
	return s
}

// From appends one row per element of a slice of structs, taking headers
// from the excel tags when not already set.
func (s *ExcelSheet) From(data any) *ExcelSheet {
	if s.err != nil {
		return s
	}
	s.err = structRows(data, "excel", func(cols []column, values []reflect.Value) {
		if len(s.headers) == 0 {
			s.headers = headerNames(cols)
		}
		row := make([]any, len(values))
		for i, v := range values {
			row[i] = cellValue(v)
		}
		s.rows = append(s.rows, row)
	})
	return s
}

// AutoWidth sizes every column to its widest cell when the sheet is built.
func (s *ExcelSheet) AutoWidth() *ExcelSheet {
	s.autoWidth = true
	return s
}

// FreezeHeader keeps the header row visible while scrolling.
func (s *ExcelSheet) FreezeHeader() *ExcelSheet {
	s.freezeHeader = true
	return s
}

// Sheet returns to the workbook to add another sheet.
func (s *ExcelSheet) Sheet(name string) *ExcelSheet {
	return s.excel.Sheet(name)
}

func (s *ExcelSheet) widths() map[int]float64 {
	widths := make(map[int]float64)
	grow := func(col int, text string) {
		w := float64(utf8.RuneCountInString(text)) * 1.2
		if w < minColWidth {
			w = minColWidth
		}
		if w > maxColWidth {
			w = maxColWidth
		}
		if w > widths[col] {
			widths[col] = w
		}
	}
	for i, h := range s.headers {
		grow(i+1, h)
	}
	for _, row := range s.rows {
		for i, v := range row {
			grow(i+1, fmt.Sprint(v))
		}
	}
	return widths
}

func (s *ExcelSheet) build() error {
	if s.err != nil {
		return s.err
	}
	file := s.excel.file
	row := 1

	if len(s.headers) > 0 {
		start, _ := excelize.CoordinatesToCellName(1, row)
		if err := file.SetSheetRow(s.name, start, &s.headers); err != nil {
			return err
		}

		style, err := file.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
			Border: []excelize.Border{
				{Type: "bottom", Color: "#000000", Style: 1},
			},
		})
		if err != nil {
			return err
		}
		end, _ := excelize.CoordinatesToCellName(len(s.headers), row)
		if err := file.SetCellStyle(s.name, start, end, style); err != nil {
			return err
		}
		row++
	}

	for _, values := range s.rows {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := file.SetSheetRow(s.name, cell, &values); err != nil {
			return err
		}
		row++
	}

	if s.autoWidth {
		for col, width := range s.widths() {
			name, err := excelize.ColumnNumberToName(col)
			if err != nil {
				return err
			}
			if err := file.SetColWidth(s.name, name, name, width); err != nil {
				return err
			}
		}
	}

	if s.freezeHeader && len(s.headers) > 0 {
		if err := file.SetPanes(s.name, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return err
		}
	}
	return nil
}

func (e *Excel) build() error {
	if e.built {
		return nil
	}
	for _, s := range e.sheets {
		if err := s.build(); err != nil {
			return fmt.Errorf("export: sheet %q: %w", s.name, err)
		}
	}
	e.built = true
	return nil
}

// Write writes the workbook to w.
func (e *Excel) Write(w io.Writer) error {
	if err := e.build(); err != nil {
		return err
	}
	return e.file.Write(w)
}

// Bytes returns the workbook as bytes.
func (e *Excel) Bytes() ([]byte, error) {
	if err := e.build(); err != nil {
		return nil, err
	}
	buf, err := e.file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the workbook to filename.
func (e *Excel) Save(filename string) error {
	if err := e.build(); err != nil {
		return err
	}
	return e.file.SaveAs(filename)
}

// Close releases the workbook's resources.
func (e *Excel) Close() error {
	return e.file.Close()
}
