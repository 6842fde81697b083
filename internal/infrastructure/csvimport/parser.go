// Package csvimport reads header-addressed CSV files with typed cell access
// and row-level error collection.
package csvimport

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

const sampleSize = 4096

// Parser reads a CSV stream whose first row names the columns
type Parser struct {
	delimiter  rune
	headerMap  map[string]int
	headers    []string
	currentRow int
	reader     *csv.Reader
}

// ParserOption configures a Parser
type ParserOption func(*Parser)

// WithDelimiter sets the field delimiter (default is comma)
func WithDelimiter(d rune) ParserOption {
	return func(p *Parser) {
		p.delimiter = d
	}
}

// NewParser wraps r, strips a UTF-8 BOM and rejects non UTF-8 input
func NewParser(r io.Reader, opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		delimiter: ',',
		headerMap: make(map[string]int),
	}
	for _, opt := range opts {
		opt(p)
	}

	buf := bufio.NewReader(r)
	head, err := buf.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = buf.Discard(3)
	}

	sample, err := buf.Peek(sampleSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file for encoding validation: %w", err)
	}
	if len(sample) == 0 {
		return nil, ErrEmptyFile
	}
	if len(sample) == sampleSize {
		sample = trimPartialRune(sample)
	}
	if !utf8.Valid(sample) {
		return nil, ErrInvalidEncoding
	}

	p.reader = csv.NewReader(buf)
	p.reader.Comma = p.delimiter
	p.reader.LazyQuotes = true
	p.reader.TrimLeadingSpace = true
	p.reader.FieldsPerRecord = -1
	return p, nil
}

// trimPartialRune drops a trailing rune cut off by the peek window
func trimPartialRune(b []byte) []byte {
	for i := 1; i < utf8.UTFMax && len(b) > 0 && !utf8.Valid(b); i++ {
		b = b[:len(b)-1]
	}
	return b
}

// ParseHeader reads the header row. Names are trimmed and lower-cased.
func (p *Parser) ParseHeader() error {
	record, err := p.reader.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	p.headers = make([]string, len(record))
	for i, h := range record {
		name := strings.ToLower(strings.TrimSpace(h))
		p.headers[i] = name
		p.headerMap[name] = i
	}
	p.currentRow = 1
	return nil
}

// Headers returns the normalized header names
func (p *Parser) Headers() []string {
	return p.headers
}

// MissingHeaders returns the required names absent from the header row
func (p *Parser) MissingHeaders(required ...string) []string {
	var missing []string
	for _, h := range required {
		if _, ok := p.headerMap[h]; !ok {
			missing = append(missing, h)
		}
	}
	return missing
}

// Row is one data line addressed by header name
type Row struct {
	LineNumber int
	Data       map[string]string
}

// Get returns the trimmed cell value for a column
func (r *Row) Get(column string) string {
	return r.Data[column]
}

// Optional returns nil for an empty cell
func (r *Row) Optional(column string) *string {
	v := r.Data[column]
	if v == "" {
		return nil
	}
	return &v
}

// Required returns the cell value and records an error when it is empty
func (r *Row) Required(column string, errs *ErrorCollection) string {
	v := r.Data[column]
	if v == "" {
		errs.AddRequiredError(r.LineNumber, column)
	}
	return v
}

// Int returns the cell as an integer no smaller than minimum.
// Empty cells yield fallback.
func (r *Row) Int(column string, minimum, fallback int64, errs *ErrorCollection) int64 {
	v := r.Data[column]
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		errs.AddTypeError(r.LineNumber, column, "integer", v)
		return fallback
	}
	if n < minimum {
		errs.AddRangeError(r.LineNumber, column, minimum, v)
		return fallback
	}
	return n
}

// Bool accepts true/false, yes/no, si/no and 1/0. Empty cells are false.
func (r *Row) Bool(column string, errs *ErrorCollection) bool {
	v := strings.ToLower(r.Data[column])
	switch v {
	case "", "0", "false", "no", "n":
		return false
	case "1", "true", "yes", "y", "si", "sí", "x":
		return true
	}
	errs.AddTypeError(r.LineNumber, column, "boolean", r.Data[column])
	return false
}

// IsEmpty reports whether every cell is blank
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// ReadRow returns the next row or io.EOF
func (p *Parser) ReadRow() (*Row, error) {
	record, err := p.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	p.currentRow++
	if err != nil {
		return nil, RowError{Row: p.currentRow, Code: ErrCodeMalformedRow, Message: err.Error()}
	}

	row := &Row{
		LineNumber: p.currentRow,
		Data:       make(map[string]string, len(p.headers)),
	}
	for i, header := range p.headers {
		if i < len(record) {
			row.Data[header] = strings.TrimSpace(record[i])
		} else {
			row.Data[header] = ""
		}
	}
	return row, nil
}

// ReadAllRows reads the remaining rows, skipping blank lines
func (p *Parser) ReadAllRows() ([]*Row, error) {
	var rows []*Row
	for {
		row, err := p.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, err
		}
		if row.IsEmpty() {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrNoDataRows
	}
	return rows, nil
}
