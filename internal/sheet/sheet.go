// Package sheet reads raw CSV exports into column-keyed tables.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"safetynorm/internal/models"
)

// KeyBy selects how cells are keyed.
type KeyBy string

const (
	// KeyByLetter keys cells by spreadsheet column letter (A, B, ..., AA).
	KeyByLetter KeyBy = "letter"
	// KeyByHeader keys cells by the header row's labels.
	KeyByHeader KeyBy = "header"
)

// Read errors.
var (
	ErrHeaderRequired  = errors.New("keying by header requires a header row")
	ErrDuplicateHeader = errors.New("duplicate header label")
)

// Options configures Read.
type Options struct {
	KeyBy     KeyBy
	Delimiter rune
	HasHeader bool
}

// ColumnLetter converts a zero-based column index to its spreadsheet letter.
func ColumnLetter(i int) string {
	var b []byte

	for i >= 0 {
		b = append([]byte{byte('A' + i%26)}, b...)
		i = i/26 - 1
	}

	return string(b)
}

// ReadFile opens path and reads it with Read.
func ReadFile(path string, opts Options) (models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Table{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f, opts)
	if err != nil {
		return models.Table{}, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// Read parses CSV from r. A UTF-8 or UTF-16 byte order mark is honoured.
// Short rows leave trailing cells out of the row rather than filling them in.
// Row numbers in the table count the header line when there is one.
func Read(r io.Reader, opts Options) (models.Table, error) {
	if opts.KeyBy == "" {
		opts.KeyBy = KeyByLetter
	}

	if opts.KeyBy == KeyByHeader && !opts.HasHeader {
		return models.Table{}, ErrHeaderRequired
	}

	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}

	records, err := reader.ReadAll()
	if err != nil {
		return models.Table{}, fmt.Errorf("failed to read CSV: %w", err)
	}

	var header []string

	firstRow := 1
	if opts.HasHeader && len(records) > 0 {
		header, records = records[0], records[1:]
		firstRow = 2
	}

	columns, err := keys(opts.KeyBy, header, records)
	if err != nil {
		return models.Table{}, err
	}

	rows := make([]models.Row, 0, len(records))

	for _, rec := range records {
		row := make(models.Row, len(rec))

		for i, cell := range rec {
			if i >= len(columns) {
				break
			}

			row[columns[i]] = cell
		}

		rows = append(rows, row)
	}

	return models.Table{Columns: columns, Rows: rows, FirstRow: firstRow}, nil
}

func keys(by KeyBy, header []string, records [][]string) ([]string, error) {
	if by == KeyByHeader {
		columns := make([]string, len(header))
		seen := make(map[string]bool, len(header))

		for i, h := range header {
			label := strings.TrimSpace(h)
			if seen[label] {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateHeader, label)
			}

			seen[label] = true
			columns[i] = label
		}

		return columns, nil
	}

	width := len(header)
	for _, rec := range records {
		if len(rec) > width {
			width = len(rec)
		}
	}

	columns := make([]string, width)
	for i := range columns {
		columns[i] = ColumnLetter(i)
	}

	return columns, nil
}
