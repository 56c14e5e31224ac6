package csv

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is one data row keyed by column name. Key order follows the header
// column order, including through JSON marshaling.
type Record struct {
	columns []string
	values  map[string]string
}

// Get returns the value for a column and whether the column is present.
func (r Record) Get(column string) (string, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Columns returns the record's column names in header order.
func (r Record) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Len returns the number of entries in the record.
func (r Record) Len() int {
	return len(r.columns)
}

// MarshalJSON renders the record as a JSON object with keys in header
// order. encoding/json would otherwise sort map keys.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[col])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Records zips the header against each data row by position. A row shorter
// than the header yields a record without the trailing columns; fields
// beyond the header have no column to live under and are dropped.
func Records(header []string, rows [][]string) []Record {
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := Record{values: make(map[string]string, len(header))}
		for i, col := range header {
			if i >= len(row) {
				break
			}
			rec.columns = append(rec.columns, col)
			rec.values[col] = row[i]
		}
		out = append(out, rec)
	}
	return out
}

// ResultSet is a table-shaped view: an ordered column list plus rows
// holding one value per column positionally.
type ResultSet struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewResultSet creates an empty ResultSet with the given column names.
// Duplicate names resolve to the last position, mirroring the lenient
// parsing stance; sanitized headers never collide.
func NewResultSet(columns []string) *ResultSet {
	rs := &ResultSet{
		columns: make([]string, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	copy(rs.columns, columns)
	for i, c := range rs.columns {
		rs.index[c] = i
	}
	return rs
}

// AddRow appends an empty row and returns its index. Cells start empty.
func (rs *ResultSet) AddRow() int {
	rs.rows = append(rs.rows, make([]string, len(rs.columns)))
	return len(rs.rows) - 1
}

// Set assigns a cell by row index and column name. It reports whether the
// cell was addressable.
func (rs *ResultSet) Set(row int, column, value string) bool {
	if row < 0 || row >= len(rs.rows) {
		return false
	}
	i, ok := rs.index[column]
	if !ok {
		return false
	}
	rs.rows[row][i] = value
	return true
}

// Get reads a cell by row index and column name.
func (rs *ResultSet) Get(row int, column string) (string, bool) {
	if row < 0 || row >= len(rs.rows) {
		return "", false
	}
	i, ok := rs.index[column]
	if !ok {
		return "", false
	}
	return rs.rows[row][i], true
}

// Columns returns the column names in order.
func (rs *ResultSet) Columns() []string {
	out := make([]string, len(rs.columns))
	copy(out, rs.columns)
	return out
}

// RowCount returns the number of rows.
func (rs *ResultSet) RowCount() int {
	return len(rs.rows)
}

// Rows returns a copy of all rows.
func (rs *ResultSet) Rows() [][]string {
	out := make([][]string, len(rs.rows))
	for i, row := range rs.rows {
		out[i] = make([]string, len(row))
		copy(out[i], row)
	}
	return out
}

// MarshalJSON renders the result set as {"columns": [...], "rows": [...]}.
func (rs *ResultSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Columns []string   `json:"columns"`
		Rows    [][]string `json:"rows"`
	}{
		Columns: rs.columns,
		Rows:    rs.rows,
	})
}

// ToResultSet builds a ResultSet from the header and data rows. Each data
// row becomes one result row; cells are set positionally by column-name
// lookup. A row longer than the header silently drops the excess, a
// shorter row leaves trailing cells empty.
func ToResultSet(header []string, rows [][]string) *ResultSet {
	rs := NewResultSet(header)
	for _, row := range rows {
		n := rs.AddRow()
		for i, col := range header {
			if i >= len(row) {
				break
			}
			rs.Set(n, col, row[i])
		}
	}
	return rs
}

// ToJSON renders the data rows as JSON text using encoding/json. Exactly
// one record collapses to a bare object rather than a one-element array;
// existing consumers depend on that shape. A non-empty rootName wraps the
// rendered text as {"<rootName>": <value>} by string composition after
// serialization; the caller owns the validity of the name.
func ToJSON(header []string, rows [][]string, rootName string) (string, error) {
	records := Records(header, rows)
	var payload any = records
	if len(records) == 1 {
		payload = records[0]
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}

	text := string(data)
	if rootName != "" {
		text = `{"` + rootName + `":` + text + `}`
	}
	return text, nil
}
