// export/csv.go
package export

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"reflect"
)

// CSV builds a CSV document in memory. Builder methods chain; the first
// error is kept and returned by Write.
type CSV struct {
	headers   []string
	rows      [][]string
	delimiter rune
	useCRLF   bool
	err       error
}

// NewCSV creates a new CSV builder with comma delimiter and LF endings.
func NewCSV() *CSV {
	return &CSV{delimiter: ','}
}

// Delimiter sets the field delimiter (default: comma).
func (c *CSV) Delimiter(d rune) *CSV {
	c.delimiter = d
	return c
}

// UseCRLF switches to CRLF line endings.
func (c *CSV) UseCRLF() *CSV {
	c.useCRLF = true
	return c
}

// Headers sets the column headers.
func (c *CSV) Headers(headers ...string) *CSV {
	c.headers = headers
	return c
}

// Row adds a single row. Its width must match the headers when set.
func (c *CSV) Row(values ...string) *CSV {
	if c.err == nil && len(c.headers) > 0 && len(values) != len(c.headers) {
		c.err = ErrRowWidth
		return c
	}
	c.rows = append(c.rows, values)
	return c
}

// From appends one row per element of a slice of structs. Headers are
// taken from the csv tags when not already set.
func (c *CSV) From(data any) *CSV {
	if c.err != nil {
		return c
	}
	c.err = structRows(data, "csv", func(cols []column, values []reflect.Value) {
		if len(c.headers) == 0 {
			c.headers = headerNames(cols)
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		c.rows = append(c.rows, row)
	})
	return c
}

// Len returns the number of data rows.
func (c *CSV) Len() int { return len(c.rows) }

// Write writes the CSV to w.
func (c *CSV) Write(w io.Writer) error {
	if c.err != nil {
		return c.err
	}

	writer := csv.NewWriter(w)
	writer.Comma = c.delimiter
	writer.UseCRLF = c.useCRLF

	if len(c.headers) > 0 {
		if err := writer.Write(c.headers); err != nil {
			return err
		}
	}
	if err := writer.WriteAll(c.rows); err != nil {
		return err
	}
	return writer.Error()
}

// Bytes returns the CSV as bytes.
func (c *CSV) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the CSV to filename, truncating it.
func (c *CSV) Save(filename string) error {
	if c.err != nil {
		return c.err
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := c.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
