package csv

import "strings"

// Parse tokenizes raw CSV text into a Table.
//
// delimiter separates fields. maxRows caps the number of data rows kept;
// the header row never counts against the cap, and maxRows <= 0 means
// unlimited.
//
// Quoting follows the usual doubled-quote convention: a field may be
// wrapped in double quotes, inside which the delimiter, CR, and LF are
// literal and "" collapses to one literal quote. Malformed quoting is never
// an error; an unterminated quoted field is closed at end of input. CR, LF,
// CRLF, and LFCR are each one row break. Invalid UTF-8 byte sequences are
// carried through untouched.
func Parse(text string, delimiter rune, maxRows int) Table {
	var table Table
	if text == "" {
		return table
	}

	// The cursor walks bytes, not runes, so that bytes outside valid UTF-8
	// reach the output unchanged. Every structural character the machine
	// matches on is ASCII except possibly the delimiter, which is matched
	// by its full encoding.
	delim := string(delimiter)

	var field strings.Builder
	var row []string
	inQuotes := false

	// A blank line closes nothing: an empty accumulator is only flushed
	// into a row that already has fields, and rows with zero fields are
	// never appended.
	closeRow := func() {
		if field.Len() > 0 || len(row) > 0 {
			row = append(row, field.String())
			field.Reset()
		}
		if len(row) > 0 {
			table = append(table, row)
			row = nil
		}
	}

	for i := 0; i < len(text); {
		c := text[i]

		if inQuotes {
			if c == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					field.WriteByte('"')
					i += 2
				} else {
					inQuotes = false
					i++
				}
				continue
			}
			field.WriteByte(c)
			i++
			continue
		}

		switch {
		case c == '"':
			// The quote itself is not part of the value.
			inQuotes = true
			i++
		case strings.HasPrefix(text[i:], delim):
			row = append(row, field.String())
			field.Reset()
			i += len(delim)
		case c == '\r' || c == '\n':
			closeRow()
			i++
			// CRLF and LFCR are a single row break, not two.
			if i < len(text) && text[i] != c && (text[i] == '\r' || text[i] == '\n') {
				i++
			}
			if maxRows > 0 && len(table) > maxRows {
				return table
			}
		default:
			field.WriteByte(c)
			i++
		}
	}

	// A field that was never explicitly closed still counts.
	closeRow()
	return table
}
