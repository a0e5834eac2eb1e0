package csvimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// CSVParser reads UTF-8 CSV files with a mandatory header row.
type CSVParser struct {
	delimiter  rune
	lazyQuotes bool
	trimSpace  bool
	headers    []string
	headerMap  map[string]int
	currentRow int
	dataRows   int
	reader     *csv.Reader
}

// ParserOption configures a CSVParser.
type ParserOption func(*CSVParser)

// WithDelimiter sets the field delimiter. Default is comma.
func WithDelimiter(d rune) ParserOption {
	return func(p *CSVParser) {
		p.delimiter = d
	}
}

// WithLazyQuotes enables lenient quote handling.
func WithLazyQuotes(lazy bool) ParserOption {
	return func(p *CSVParser) {
		p.lazyQuotes = lazy
	}
}

// WithTrimSpace controls trimming of surrounding whitespace in fields.
func WithTrimSpace(trim bool) ParserOption {
	return func(p *CSVParser) {
		p.trimSpace = trim
	}
}

// NewCSVParser creates a parser over r. The file must be valid UTF-8;
// a leading UTF-8 BOM is stripped.
func NewCSVParser(r io.Reader, opts ...ParserOption) (*CSVParser, error) {
	p := &CSVParser{
		delimiter:  ',',
		lazyQuotes: true,
		trimSpace:  true,
		headerMap:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(p)
	}

	buf := bufio.NewReader(r)

	head, err := buf.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(head) == 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = buf.Discard(3)
	}

	if err := checkUTF8(buf); err != nil {
		return nil, err
	}

	p.reader = csv.NewReader(buf)
	p.reader.Comma = p.delimiter
	p.reader.LazyQuotes = p.lazyQuotes
	p.reader.TrimLeadingSpace = p.trimSpace
	p.reader.FieldsPerRecord = -1

	return p, nil
}

// ParseFromBytes creates a parser over an in-memory file.
func ParseFromBytes(data []byte, opts ...ParserOption) (*CSVParser, error) {
	return NewCSVParser(bytes.NewReader(data), opts...)
}

func checkUTF8(r *bufio.Reader) error {
	const sample = 4096
	content, err := r.Peek(sample)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file for encoding check: %w", err)
	}
	if len(content) == 0 {
		return ErrEmptyFile
	}
	// A multi-byte rune may be cut at the sample boundary. Trim up to
	// three trailing bytes before declaring the content invalid.
	if len(content) == sample {
		for i := 0; i < 3 && len(content) > 0; i++ {
			if utf8.Valid(content) {
				return nil
			}
			content = content[:len(content)-1]
		}
	}
	if !utf8.Valid(content) {
		return ErrInvalidEncoding
	}
	return nil
}

// ParseHeader reads the header row and builds the column index.
func (p *CSVParser) ParseHeader() error {
	record, err := p.reader.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	p.headers = make([]string, len(record))
	for i, h := range record {
		if p.trimSpace {
			h = strings.TrimSpace(h)
		}
		p.headers[i] = h
		p.headerMap[h] = i
	}
	if len(p.headers) == 0 {
		return ErrMissingHeader
	}

	p.currentRow = 1

	return nil
}

// Headers returns the parsed header names in file order.
func (p *CSVParser) Headers() []string {
	return p.headers
}

// HasHeader reports whether a column with the given name exists.
func (p *CSVParser) HasHeader(name string) bool {
	_, ok := p.headerMap[name]
	return ok
}

// MissingHeaders returns the required column names absent from the file.
func (p *CSVParser) MissingHeaders(required []string) []string {
	var missing []string
	for _, h := range required {
		if !p.HasHeader(h) {
			missing = append(missing, h)
		}
	}
	return missing
}

// Row is a single parsed data row keyed by header name.
type Row struct {
	LineNumber int
	Data       map[string]string
	RawFields  []string
}

// Get returns the value of the named column, or "" if absent.
func (r *Row) Get(column string) string {
	return r.Data[column]
}

// GetOrDefault returns the value of the named column, or def when empty.
func (r *Row) GetOrDefault(column, def string) string {
	if v, ok := r.Data[column]; ok && v != "" {
		return v
	}
	return def
}

// IsEmpty reports whether every field in the row is empty.
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// ReadRow reads the next data row. Returns io.EOF at end of file.
func (p *CSVParser) ReadRow() (*Row, error) {
	record, err := p.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		p.currentRow++
		return nil, fmt.Errorf("error reading row %d: %w", p.currentRow, err)
	}

	p.currentRow++
	p.dataRows++

	row := &Row{
		LineNumber: p.currentRow,
		Data:       make(map[string]string, len(p.headers)),
		RawFields:  record,
	}
	for i, header := range p.headers {
		if i < len(record) {
			value := record[i]
			if p.trimSpace {
				value = strings.TrimSpace(value)
			}
			row.Data[header] = value
		} else {
			row.Data[header] = ""
		}
	}

	return row, nil
}

// ReadAllRows reads every remaining data row, skipping fully empty ones.
func (p *CSVParser) ReadAllRows() ([]*Row, error) {
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
	return rows, nil
}

// CurrentRow returns the 1-indexed file line of the last read row.
func (p *CSVParser) CurrentRow() int {
	return p.currentRow
}

// DataRows returns the number of data rows read so far.
func (p *CSVParser) DataRows() int {
	return p.dataRows
}
