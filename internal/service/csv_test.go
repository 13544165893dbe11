package service

import (
	"reflect"
	"testing"
	"time"
)

func TestParseCSVLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "plain fields",
			line: "a,b,c",
			want: []string{"a", "b", "c"},
		},
		{
			name: "quoted field with comma",
			line: `"a,b",c`,
			want: []string{"a,b", "c"},
		},
		{
			name: "escaped quote inside quoted field",
			line: `"he said ""hi""",x`,
			want: []string{`he said "hi"`, "x"},
		},
		{
			name: "empty fields",
			line: ",,",
			want: []string{"", "", ""},
		},
		{
			name: "all fields quoted",
			line: `"a","b","c"`,
			want: []string{"a", "b", "c"},
		},
		{
			name: "unterminated quote swallows rest of line",
			line: `"a,b`,
			want: []string{"a,b"},
		},
		{
			name: "single field",
			line: "solo",
			want: []string{"solo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCSVLine(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseCSVLine(%q) = %#v, want %#v", tt.line, got, tt.want)
			}
		})
	}
}

func TestQuoteField(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{"", `""`},
		{`with "quotes"`, `"with ""quotes"""`},
		{"a,b", `"a,b"`},
	}

	for _, tt := range tests {
		if got := quoteField(tt.in); got != tt.want {
			t.Errorf("quoteField(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeRow(t *testing.T) {
	full := make([]string, columnCount)
	for i := range full {
		full[i] = "x"
	}

	t.Run("full row passes through", func(t *testing.T) {
		got := normalizeRow(full)
		if len(got) != columnCount {
			t.Fatalf("len = %d, want %d", len(got), columnCount)
		}
	})

	t.Run("extra fields truncated", func(t *testing.T) {
		got := normalizeRow(append(append([]string{}, full...), "extra"))
		if len(got) != columnCount {
			t.Fatalf("len = %d, want %d", len(got), columnCount)
		}
	})

	t.Run("legacy row remapped", func(t *testing.T) {
		legacy := []string{"date", "notes", "drill", "desc", "Putting", "10", "8", "80.0%", "dn", "done"}
		got := normalizeRow(legacy)
		if got == nil {
			t.Fatal("legacy row dropped")
		}
		if got[colSessionDate] != "date" || got[colSessionNotes] != "notes" {
			t.Errorf("session columns = %q,%q", got[colSessionDate], got[colSessionNotes])
		}
		if got[colDrillName] != "drill" || got[colCategory] != "Putting" {
			t.Errorf("drill columns = %q,%q", got[colDrillName], got[colCategory])
		}
		if got[colMaxScore] != "10" || got[colActualScore] != "8" || got[colSuccessRate] != "80.0%" {
			t.Errorf("score columns = %q,%q,%q", got[colMaxScore], got[colActualScore], got[colSuccessRate])
		}
		if got[colDrillNotes] != "dn" || got[colCompletedAt] != "done" {
			t.Errorf("tail columns = %q,%q", got[colDrillNotes], got[colCompletedAt])
		}
		if got[colTemperature] != "" || got[colLocationName] != "" {
			t.Error("weather/location columns should stay empty for legacy rows")
		}
	})

	t.Run("short row dropped", func(t *testing.T) {
		if got := normalizeRow([]string{"a", "b", "c"}); got != nil {
			t.Errorf("expected nil, got %#v", got)
		}
	})
}

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
		ok   bool
	}{
		{
			name: "export layout",
			in:   "Jan 15, 2024 at 9:30 AM",
			want: time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "datetime",
			in:   "2024-01-15 09:30:00",
			want: time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "iso date",
			in:   "2024-01-15",
			want: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "ambiguous slash date resolves month first",
			in:   "03/04/2024",
			want: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "day first when month slot overflows",
			in:   "25/12/2024",
			want: time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "year first slash date",
			in:   "2024/01/15",
			want: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "  2024-01-15  ",
			want: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{name: "empty", in: "", ok: false},
		{name: "garbage", in: "not a date", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseFlexibleDate(tt.in)
			if ok != tt.ok {
				t.Fatalf("parseFlexibleDate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("parseFlexibleDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestExportDateRoundTrip(t *testing.T) {
	orig := time.Date(2024, 6, 3, 14, 45, 0, 0, time.UTC)
	parsed, ok := parseFlexibleDate(formatExportDate(orig))
	if !ok {
		t.Fatal("exported date did not parse back")
	}
	if !parsed.Equal(orig) {
		t.Errorf("round trip = %v, want %v", parsed, orig)
	}
}
