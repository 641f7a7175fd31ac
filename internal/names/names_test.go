package names

import (
	"reflect"
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"12 - Jane Doe", "Jane Doe"},
		{"Bob", "Bob"},
		{"1. John", "John"},
		{"3) Sam", "Sam"},
		{"  4.  Lee  ", "Lee"},
		{"1. 2. Nested", "Nested"},
		{"2Pac", "2Pac"},
		{"Mary-Jane", "Mary-Jane"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := Clean(tt.raw); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSortKey(t *testing.T) {
	if got := SortKey("2. alice"); got != "alice" {
		t.Errorf("SortKey = %q, want alice", got)
	}
	if SortKey("Bob") != SortKey("1 - bob") {
		t.Error("expected numbering and case to be ignored")
	}
}

func TestParseBatch(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "numbered list",
			text: "1. John\n2. Jane\n3) Sam",
			want: []string{"John", "Jane", "Sam"},
		},
		{
			name: "drops blank lines and windows line endings",
			text: "John\r\n\r\n   \r\nJane\r\n",
			want: []string{"John", "Jane"},
		},
		{
			name: "drops urls and emails",
			text: "John\nhttps://example.com\nwww.club.ca\njane@example.com\nHTTP stuff\nJane",
			want: []string{"John", "Jane"},
		},
		{
			name: "drops lines without letters",
			text: "John\n12:30\n----\n42",
			want: []string{"John"},
		},
		{
			name: "drops long lines",
			text: "John\n" + strings.Repeat("a", MaxLineLength+1) + "\n" + strings.Repeat("b", MaxLineLength),
			want: []string{"John", strings.Repeat("b", MaxLineLength)},
		},
		{
			name: "dedupes after cleaning",
			text: "1. John\n2. Jane\n3. John\nJane",
			want: []string{"John", "Jane"},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseBatch(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseBatch() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseBatchOutputIsClean(t *testing.T) {
	inputs := []string{
		"a@b\nA\nA\nwww\nhttp\nB",
		"1. Ann\n1. Ann\n2. ann@x.com\n 3 - Www Smith\nZed",
		"\n\n\n",
		"Name One\nname one\nNAME ONE",
	}

	for _, in := range inputs {
		got := ParseBatch(in)
		seen := make(map[string]bool)
		for _, name := range got {
			if seen[name] {
				t.Errorf("ParseBatch(%q) returned duplicate %q", in, name)
			}
			seen[name] = true

			lower := strings.ToLower(name)
			for _, banned := range []string{"@", "http", "www"} {
				if strings.Contains(lower, banned) {
					t.Errorf("ParseBatch(%q) returned %q containing %q", in, name, banned)
				}
			}
		}
	}
}
