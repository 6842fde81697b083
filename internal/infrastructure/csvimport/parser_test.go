package csvimport

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParser(t *testing.T) {
	t.Run("UTF-8 BOM is stripped", func(t *testing.T) {
		p, err := NewParser(strings.NewReader("\xEF\xBB\xBFCategory,Price\nmonthly,109"))
		require.NoError(t, err)
		require.NoError(t, p.ParseHeader())
		assert.Equal(t, []string{"category", "price"}, p.Headers())
	})

	t.Run("Empty input", func(t *testing.T) {
		p, err := NewParser(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptyFile)
		assert.Nil(t, p)
	})

	t.Run("Invalid encoding", func(t *testing.T) {
		_, err := NewParser(strings.NewReader("name\n\xff\xfe\xfd"))
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("Multi-byte rune across the sample boundary", func(t *testing.T) {
		data := "name\n" + strings.Repeat("a", sampleSize-6) + "ñ\n"
		_, err := NewParser(strings.NewReader(data))
		assert.NoError(t, err)
	})

	t.Run("Custom delimiter", func(t *testing.T) {
		p, err := NewParser(strings.NewReader("name;price\nBasic;109"), WithDelimiter(';'))
		require.NoError(t, err)
		require.NoError(t, p.ParseHeader())
		rows, err := p.ReadAllRows()
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "109", rows[0].Get("price"))
	})
}

func TestParser_MissingHeaders(t *testing.T) {
	p, err := NewParser(strings.NewReader("category, data ,PRICE\n"))
	require.NoError(t, err)
	require.NoError(t, p.ParseHeader())

	assert.Empty(t, p.MissingHeaders("category", "data", "price"))
	assert.Equal(t, []string{"duration"}, p.MissingHeaders("category", "duration"))
}

func TestParser_ReadAllRows(t *testing.T) {
	p, err := NewParser(strings.NewReader("a,b\n1,2\n,\n3\n"))
	require.NoError(t, err)
	require.NoError(t, p.ParseHeader())

	rows, err := p.ReadAllRows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].LineNumber)
	assert.Equal(t, 4, rows[1].LineNumber)
	assert.Equal(t, "", rows[1].Get("b"))

	_, err = p.ReadRow()
	assert.Equal(t, io.EOF, err)
}

func TestParser_NoDataRows(t *testing.T) {
	p, err := NewParser(strings.NewReader("a,b\n"))
	require.NoError(t, err)
	require.NoError(t, p.ParseHeader())

	_, err = p.ReadAllRows()
	assert.ErrorIs(t, err, ErrNoDataRows)
}

func TestRow_TypedAccess(t *testing.T) {
	row := &Row{LineNumber: 3, Data: map[string]string{
		"price":    "154",
		"negative": "-1",
		"bad":      "12a",
		"calls":    "Sí",
		"social":   "maybe",
		"tag":      "",
	}}
	errs := NewErrorCollection(10)

	assert.Equal(t, int64(154), row.Int("price", 0, 0, errs))
	assert.Equal(t, int64(0), row.Int("negative", 0, 0, errs))
	assert.Equal(t, int64(7), row.Int("bad", 0, 7, errs))
	assert.Equal(t, int64(9), row.Int("missing", 0, 9, errs))
	assert.True(t, row.Bool("calls", errs))
	assert.False(t, row.Bool("social", errs))
	assert.Nil(t, row.Optional("tag"))
	assert.Equal(t, "", row.Required("tag", errs))

	require.Equal(t, 4, errs.TotalCount())
	codes := make([]string, 0, 4)
	for _, e := range errs.Errors() {
		assert.Equal(t, 3, e.Row)
		codes = append(codes, e.Code)
	}
	assert.Equal(t, []string{ErrCodeInvalidRange, ErrCodeInvalidType, ErrCodeInvalidType, ErrCodeRequiredField}, codes)
}

func TestErrorCollection(t *testing.T) {
	errs := NewErrorCollection(2)
	assert.NoError(t, errs.Err())
	assert.Equal(t, "no errors", errs.Error())

	errs.AddRequiredError(2, "data")
	errs.AddTypeError(3, "price", "integer", "abc")
	errs.AddRangeError(4, "order", 0, "-2")

	assert.True(t, errs.IsTruncated())
	assert.Len(t, errs.Errors(), 2)
	assert.Equal(t, 3, errs.TotalCount())

	err := errs.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 error(s) found (showing first 2)")
	assert.Contains(t, err.Error(), "row 2, column 'data': field 'data' is required")
	assert.Equal(t, "row 5: bad quote", RowError{Row: 5, Message: "bad quote"}.Error())
}
