package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"  Bench Press ", 0, "Bench Press"},
		{"Bench Press", 20, "Bench Press"},
		{"Barbell Bench Press", 10, "Barbell..."},
		{"abcd", 2, "ab"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestTitleCase(t *testing.T) {
	cases := map[string]string{
		"barbell full squat": "Barbell Full Squat",
		"  dumbbell  row ":   "Dumbbell Row",
		"":                   "",
		"ÿoke walk":          "Ÿoke Walk",
	}
	for in, want := range cases {
		if got := titleCase(in); got != want {
			t.Fatalf("titleCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"62.5", 62.5, true},
		{" 62,5 ", 62.5, true},
		{"-5", -5, true},
		{"", 0, false},
		{"ten", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseAmount(tc.in)
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("parseAmount(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestFormatWeight(t *testing.T) {
	if got := formatWeight(80); got != "80" {
		t.Fatalf("formatWeight(80) = %q, want 80", got)
	}
	if got := formatWeight(62.5); got != "62.5" {
		t.Fatalf("formatWeight(62.5) = %q, want 62.5", got)
	}
}

func TestWindowStart(t *testing.T) {
	cases := []struct {
		cursor, total, height, want int
	}{
		{0, 5, 10, 0},
		{0, 50, 10, 0},
		{25, 50, 10, 20},
		{49, 50, 10, 40},
		{3, 50, 0, 0},
	}
	for _, tc := range cases {
		if got := windowStart(tc.cursor, tc.total, tc.height); got != tc.want {
			t.Fatalf("windowStart(%d, %d, %d) = %d, want %d", tc.cursor, tc.total, tc.height, got, tc.want)
		}
	}
}
