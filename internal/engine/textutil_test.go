package engine

import "testing"

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"45", 45},
		{"1,234", 1234},
		{"1.2K", 1200},
		{"1.2k", 1200},
		{"3M", 3000000},
		{"1.5B", 1500000000},
		{"1.2K likes", 1200},
		{"  88 ", 88},
		{"", 0},
		{"n/a", 0},
		{"-5", 0},
	}
	for _, tt := range tests {
		if got := ParseCount(tt.in); got != tt.want {
			t.Errorf("ParseCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<b>bold</b> text", "bold text"},
		{"  plain  ", "plain"},
		{"<p>a</p><p>b</p>", "ab"},
		{"no tags", "no tags"},
	}
	for _, tt := range tests {
		if got := CleanHTML(tt.in); got != tt.want {
			t.Errorf("CleanHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormLang(t *testing.T) {
	if got := NormLang(""); got != "all" {
		t.Errorf("NormLang(\"\") = %q, want \"all\"", got)
	}
	if got := NormLang("en"); got != "en" {
		t.Errorf("NormLang(\"en\") = %q, want \"en\"", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 3); got != "hel" {
		t.Errorf("Truncate = %q, want %q", got, "hel")
	}
	if got := Truncate("hi", 10); got != "hi" {
		t.Errorf("Truncate short = %q, want %q", got, "hi")
	}
}
