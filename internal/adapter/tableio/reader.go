package tableio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/simaogato/propertyflow-backend/internal/domain"
)

// DefaultMaxBytes caps the size of an import source
const DefaultMaxBytes int64 = 10 << 20

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Options controls how a delimited file is read
type Options struct {
	Delimiter rune  // Field separator, ',' when zero
	MaxBytes  int64 // Size limit of the whole source, DefaultMaxBytes when zero
}

// Read parses a delimited file (header row + data rows) into a raw table.
// Every failure is reported as a *domain.ParseError; schema checks are left
// to domain.Table.Validate.
//
// Column kinds are inferred from the cells: a column is NUMERIC when every
// non-blank cell parses as a number, which includes columns with no rows or
// only blank cells.
func Read(r io.Reader, opts Options) (*domain.Table, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}

	data, err := io.ReadAll(io.LimitReader(r, opts.MaxBytes+1))
	if err != nil {
		return nil, &domain.ParseError{Err: fmt.Errorf("failed to read source: %w", err)}
	}
	if int64(len(data)) > opts.MaxBytes {
		return nil, &domain.ParseError{Err: fmt.Errorf("source exceeds %d bytes", opts.MaxBytes)}
	}
	if !utf8.Valid(data) {
		return nil, &domain.ParseError{Err: errors.New("source is not valid UTF-8 text")}
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = opts.Delimiter

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &domain.ParseError{Err: errors.New("source has no header row")}
	}
	if err != nil {
		return nil, toParseError(err)
	}

	columns, err := readHeader(header)
	if err != nil {
		return nil, err
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, toParseError(err)
	}

	rows := make([]domain.Row, 0, len(records))
	for _, record := range records {
		row := make(domain.Row, len(columns))
		for i, value := range record {
			row[columns[i].Name] = value
		}
		rows = append(rows, row)
	}

	inferKinds(columns, rows)

	return &domain.Table{Columns: columns, Rows: rows}, nil
}

// readHeader turns the header record into columns, trimming surrounding
// whitespace. Duplicate names make the row mapping ambiguous and are rejected.
func readHeader(header []string) ([]domain.Column, error) {
	seen := make(map[string]bool, len(header))
	columns := make([]domain.Column, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if seen[name] {
			return nil, &domain.ParseError{Line: 1, Err: fmt.Errorf("duplicate column %q", name)}
		}
		seen[name] = true
		columns[i] = domain.Column{Name: name}
	}
	return columns, nil
}

func inferKinds(columns []domain.Column, rows []domain.Row) {
	for i := range columns {
		columns[i].Kind = domain.ColumnKindNumeric
		for _, row := range rows {
			if _, err := domain.ParseNumber(row[columns[i].Name]); err != nil {
				columns[i].Kind = domain.ColumnKindText
				break
			}
		}
	}
}

func toParseError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &domain.ParseError{Line: csvErr.Line, Err: csvErr.Err}
	}
	return &domain.ParseError{Err: err}
}

// CSVParser implements domain.TableParser for delimited files
type CSVParser struct {
	opts Options
}

// NewCSVParser creates a parser with fixed options
func NewCSVParser(opts Options) *CSVParser {
	return &CSVParser{opts: opts}
}

// Parse reads a delimited file into a raw table
func (p *CSVParser) Parse(r io.Reader) (*domain.Table, error) {
	return Read(r, p.opts)
}
