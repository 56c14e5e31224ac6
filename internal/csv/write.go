package csv

import "strings"

// CleanCell strips common upload artifacts from a single cell value: a
// UTF-8 byte order mark, surrounding whitespace, and Excel formula guards
// of the form ="0123" that spreadsheets emit to protect leading zeros.
func CleanCell(value string) string {
	value = strings.TrimPrefix(value, "\ufeff")
	value = strings.TrimSpace(value)
	if len(value) >= 3 && strings.HasPrefix(value, `="`) && strings.HasSuffix(value, `"`) {
		value = value[2 : len(value)-1]
	}
	return value
}

// Write renders a Table back to CSV text. Fields containing the delimiter,
// a quote, CR, or LF are wrapped in quotes with embedded quotes doubled,
// so quoted values parse back to the same literal field.
func Write(t Table, delimiter rune) string {
	var sb strings.Builder
	for _, row := range t {
		for i, field := range row {
			if i > 0 {
				sb.WriteRune(delimiter)
			}
			writeField(&sb, field, delimiter)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func writeField(sb *strings.Builder, field string, delimiter rune) {
	if !strings.ContainsAny(field, string(delimiter)+"\"\r\n") {
		sb.WriteString(field)
		return
	}
	sb.WriteByte('"')
	for _, c := range field {
		if c == '"' {
			sb.WriteString(`""`)
		} else {
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')
}
