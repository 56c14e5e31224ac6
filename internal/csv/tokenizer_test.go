package csv

import (
	"reflect"
	"testing"
)

func TestParse_BasicRows(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Table
	}{
		{
			name:  "simple rectangular",
			input: "a,b,c\n1,2,3\n4,5,6",
			want:  Table{{"a", "b", "c"}, {"1", "2", "3"}, {"4", "5", "6"}},
		},
		{
			name:  "trailing newline adds no row",
			input: "a,b\n1,2\n",
			want:  Table{{"a", "b"}, {"1", "2"}},
		},
		{
			name:  "blank lines are skipped",
			input: "a,b\n\n1,2\n\n\n",
			want:  Table{{"a", "b"}, {"1", "2"}},
		},
		{
			name:  "empty fields survive",
			input: "a,,c\n,2,",
			want:  Table{{"a", "", "c"}, {"", "2", ""}},
		},
		{
			name:  "single column",
			input: "name\nAlice\nBob",
			want:  Table{{"name"}, {"Alice"}, {"Bob"}},
		},
		{
			name:  "ragged rows are recorded as seen",
			input: "a,b,c\n1\n1,2,3,4",
			want:  Table{{"a", "b", "c"}, {"1"}, {"1", "2", "3", "4"}},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input, ',', -1)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Quoting(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Table
	}{
		{
			name:  "quoted delimiter is literal",
			input: "a,b\n\"1,5\",2",
			want:  Table{{"a", "b"}, {"1,5", "2"}},
		},
		{
			name:  "doubled quote collapses",
			input: "a\n\"he said \"\"hi\"\"\"",
			want:  Table{{"a"}, {`he said "hi"`}},
		},
		{
			name:  "quoted newline is literal",
			input: "a,b\n\"line1\nline2\",x",
			want:  Table{{"a", "b"}, {"line1\nline2", "x"}},
		},
		{
			name:  "quoted CRLF is literal",
			input: "a\n\"x\r\ny\"",
			want:  Table{{"a"}, {"x\r\ny"}},
		},
		{
			name:  "empty quoted field between delimiters",
			input: "a,b,c\n1,\"\",3",
			want:  Table{{"a", "b", "c"}, {"1", "", "3"}},
		},
		{
			name:  "unterminated quote is closed at end of input",
			input: "a\n\"never closed",
			want:  Table{{"a"}, {"never closed"}},
		},
		{
			name:  "quote mid-field keeps accumulated value",
			input: "a\nab\"c,d\"e",
			want:  Table{{"a"}, {"abc,de"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input, ',', -1)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_LineEndings(t *testing.T) {
	want := Table{{"a", "b"}, {"1", "2"}, {"3", "4"}}
	inputs := map[string]string{
		"LF":   "a,b\n1,2\n3,4",
		"CRLF": "a,b\r\n1,2\r\n3,4",
		"CR":   "a,b\r1,2\r3,4",
		"LFCR": "a,b\n\r1,2\n\r3,4",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			got := Parse(input, ',', -1)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Parse(%q) = %v, want %v", input, got, want)
			}
		})
	}
}

func TestParse_CustomDelimiter(t *testing.T) {
	got := Parse("a;b\n\"1;5\";2", ';', -1)
	want := Table{{"a", "b"}, {"1;5", "2"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse semicolon = %v, want %v", got, want)
	}

	got = Parse("a\tb\n1\t2", '\t', -1)
	want = Table{{"a", "b"}, {"1", "2"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse tab = %v, want %v", got, want)
	}
}

func TestParse_RowLimit(t *testing.T) {
	input := "h1,h2\n1,a\n2,b\n3,c\n4,d\n5,e"

	got := Parse(input, ',', 2)
	want := Table{{"h1", "h2"}, {"1", "a"}, {"2", "b"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse limit=2 = %v, want %v", got, want)
	}

	for _, limit := range []int{0, -1} {
		got := Parse(input, ',', limit)
		if got.RowCount() != 5 {
			t.Errorf("Parse limit=%d row count = %d, want 5", limit, got.RowCount())
		}
	}

	// The header is never counted against the limit.
	got = Parse("h1,h2\n1,a", ',', 1)
	if len(got) != 2 {
		t.Errorf("Parse limit=1 rows = %d, want 2 (header plus one)", len(got))
	}
}

func TestParse_InvalidUTF8PassesThrough(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Table
	}{
		{
			name:  "lone 0xff byte in a field",
			input: "a,\xffb\nc,d",
			want:  Table{{"a", "\xffb"}, {"c", "d"}},
		},
		{
			name:  "truncated multi-byte sequence",
			input: "h\n\xc3",
			want:  Table{{"h"}, {"\xc3"}},
		},
		{
			name:  "invalid bytes inside quotes",
			input: "h\n\"\xfe,\xff\"",
			want:  Table{{"h"}, {"\xfe,\xff"}},
		},
		{
			name:  "valid multi-byte stays intact",
			input: "h\ncafé,naïve",
			want:  Table{{"h"}, {"café", "naïve"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input, ',', -1)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_NoTrailingRowBreak(t *testing.T) {
	got := Parse("a,b\n1,2", ',', -1)
	want := Table{{"a", "b"}, {"1", "2"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse = %v, want %v", got, want)
	}
}

func TestTable_Accessors(t *testing.T) {
	tbl := Parse("a,b\n1,2\n3,4", ',', -1)

	if got := tbl.Header(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Header() = %v", got)
	}
	if got := tbl.RowCount(); got != 2 {
		t.Errorf("RowCount() = %d, want 2", got)
	}
	if got := len(tbl.DataRows()); got != 2 {
		t.Errorf("len(DataRows()) = %d, want 2", got)
	}

	var empty Table
	if empty.Header() != nil || empty.DataRows() != nil || empty.RowCount() != 0 {
		t.Error("empty table accessors should all be zero-valued")
	}
}
