package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type result struct {
	Case     string        `csv:"case" excel:"Case"`
	Rule     string        `csv:"rule" excel:"Rule"`
	Passed   bool          `csv:"passed" excel:"Passed"`
	Got      *float64      `csv:"got" excel:"Got"`
	Elapsed  time.Duration `csv:"elapsed" excel:"-"`
	internal string
}

func ptr(f float64) *float64 { return &f }

func sample() []result {
	return []result{
		{Case: "small order", Rule: "calculate_discount", Passed: true, Got: ptr(50), Elapsed: time.Millisecond},
		{Case: "bad card", Rule: "validate_credit_card", Passed: false, internal: "x"},
	}
}

func TestCSVFromStructs(t *testing.T) {
	b, err := NewCSV().From(sample()).Bytes()
	require.NoError(t, err)

	want := "case,rule,passed,got,elapsed\n" +
		"small order,calculate_discount,true,50,1ms\n" +
		"bad card,validate_credit_card,false,,0s\n"
	assert.Equal(t, want, string(b))
}

func TestCSVRowsAndDelimiter(t *testing.T) {
	var buf bytes.Buffer
	err := NewCSV().Delimiter(';').UseCRLF().
		Headers("a", "b").
		Row("1", "x;y").
		Write(&buf)
	require.NoError(t, err)
	assert.Equal(t, "a;b\r\n1;\"x;y\"\r\n", buf.String())
}

func TestCSVErrors(t *testing.T) {
	_, err := NewCSV().From(42).Bytes()
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = NewCSV().From([]int{1}).Bytes()
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = NewCSV().Headers("a", "b").Row("only").Bytes()
	assert.ErrorIs(t, err, ErrRowWidth)
}

func TestCSVSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	c := NewCSV().From(sample())
	require.NoError(t, c.Save(path))
	assert.Equal(t, 2, c.Len())
	assert.FileExists(t, path)
}

func TestExcelWorkbook(t *testing.T) {
	x := NewExcel()
	x.Sheet("Results").From(sample()).AutoWidth().FreezeHeader().
		Sheet("Summary").Headers("metric", "value").Row("passed", 1).Row("failed", 1)

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, x.Save(path))
	require.NoError(t, x.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Results", "Summary"}, f.GetSheetList())

	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Case", "Rule", "Passed", "Got"}, rows[0])
	assert.Equal(t, "small order", rows[1][0])

	v, err := f.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}

func TestExcelSheetReuse(t *testing.T) {
	x := NewExcel()
	a := x.Sheet("One")
	assert.Same(t, a, x.Sheet("One"))

	_, err := x.Bytes()
	require.NoError(t, err)
}
