// Package loader resolves a CSV source, decodes it to UTF-8, and drives the
// parse core into the requested output shape. It is the only layer that
// touches the filesystem; the core underneath it is pure.
package loader

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/tomysaman/csvloader/internal/csv"
)

// Format selects the output shape of a load.
type Format string

const (
	// FormatRecords renders one ordered name/value record per data row.
	FormatRecords Format = "records"
	// FormatTable renders a column-addressed result set.
	FormatTable Format = "table"
	// FormatJSON renders JSON text.
	FormatJSON Format = "json"
	// FormatCSV re-renders normalized CSV text (sanitized header, uniform
	// quoting and line endings).
	FormatCSV Format = "csv"
)

// ParseFormat converts a user-supplied format name. Empty means records.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "records":
		return FormatRecords, nil
	case "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// ParseDelimiter converts a user-supplied delimiter string into a rune.
// Empty means comma; "tab" and the two-character escape `\t` mean tab;
// anything longer than one character is an error.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return ',', nil
	case "tab", `\t`:
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("delimiter %q must be a single character", s)
	}
	return r, nil
}

// Options describes one load.
type Options struct {
	// File is a path to a CSV file. When set it wins over Text.
	File string
	// Text is inline CSV content, assumed UTF-8.
	Text string
	// Delimiter separates fields. Zero means comma.
	Delimiter rune
	// RowLimit caps the number of data rows; <= 0 means unlimited.
	RowLimit int
	// CleanupColumns rewrites the header into unique identifier-safe names.
	CleanupColumns bool
	// Encoding names the file's character encoding; empty auto-detects.
	// Ignored for inline text.
	Encoding string
	// Format selects the output shape. Empty means FormatRecords.
	Format Format
	// RootName optionally wraps JSON output as {"<RootName>": ...}.
	RootName string
}

// DefaultOptions returns the options used when the caller specifies
// nothing: comma delimiter, unlimited rows, header cleanup on, records out.
func DefaultOptions() Options {
	return Options{
		Delimiter:      ',',
		RowLimit:       -1,
		CleanupColumns: true,
		Format:         FormatRecords,
	}
}

// Result is the outcome of one load. Exactly one of Records, Table, JSON,
// or CSV is populated, matching Format. Empty input yields a zero-row
// Result rather than an error.
type Result struct {
	Format  Format
	Rows    int // data rows, header excluded
	Columns int
	Header  []string
	Records []csv.Record
	Table   *csv.ResultSet
	JSON    string
	CSV     string
}

// Load resolves the source, parses it, and shapes the output.
//
// The only errors are source-level: unreadable file, unsupported encoding,
// bad format name. Malformed CSV never fails; the core absorbs it.
func Load(opts Options) (*Result, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if opts.Format == "" {
		opts.Format = FormatRecords
	}

	text, err := resolve(opts)
	if err != nil {
		return nil, err
	}

	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.TrimSpace(text)

	res := &Result{Format: opts.Format}
	if text == "" {
		// Nothing to parse is a zero result, not a failure.
		return res, nil
	}

	table := csv.Parse(text, opts.Delimiter, opts.RowLimit)
	if len(table) == 0 {
		return res, nil
	}

	if opts.CleanupColumns {
		header := table[0]
		for i, name := range header {
			header[i] = csv.CleanCell(name)
		}
		table = csv.SanitizeHeader(table)
	}

	header := table.Header()
	res.Header = append([]string(nil), header...)
	res.Columns = len(header)
	res.Rows = table.RowCount()

	switch opts.Format {
	case FormatRecords:
		res.Records = csv.Records(header, table.DataRows())
	case FormatTable:
		res.Table = csv.ToResultSet(header, table.DataRows())
	case FormatJSON:
		out, err := csv.ToJSON(header, table.DataRows(), opts.RootName)
		if err != nil {
			return nil, err
		}
		res.JSON = out
	case FormatCSV:
		res.CSV = csv.Write(table, opts.Delimiter)
	default:
		return nil, fmt.Errorf("unknown output format %q", opts.Format)
	}

	return res, nil
}

// resolve materializes the source text. A file path wins over inline text.
func resolve(opts Options) (string, error) {
	if opts.File == "" {
		return opts.Text, nil
	}

	data, err := os.ReadFile(opts.File)
	if err != nil {
		return "", fmt.Errorf("read csv file: %w", err)
	}

	return Decode(data, opts.Encoding)
}
