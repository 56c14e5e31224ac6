// Package csv implements tolerant CSV parsing and shaping.
//
// The parser is a character-level state machine rather than a grammar
// checker: unbalanced quotes, ragged rows, and blank lines are absorbed
// instead of reported. This favors data recovery over strict validation,
// which is what real-world exports (Excel, accounting systems, legacy
// tools) require.
//
// Parsing flows left to right:
//
//	raw text -> Parse -> Table -> SanitizeHeader -> Records / ToResultSet / ToJSON
//
// All functions are safe for concurrent use; each call allocates its own
// working state and returns values owned by the caller.
package csv

// Table is the parser's direct output: an ordered sequence of rows, each an
// ordered sequence of field values. Row 0 is the header. Rows are not
// forced to equal lengths; the parser records what it saw.
type Table [][]string

// Header returns row 0, or nil for an empty table.
func (t Table) Header() []string {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

// DataRows returns every row after the header.
func (t Table) DataRows() [][]string {
	if len(t) < 2 {
		return nil
	}
	return t[1:]
}

// RowCount returns the number of data rows, excluding the header.
func (t Table) RowCount() int {
	if len(t) < 2 {
		return 0
	}
	return len(t) - 1
}
