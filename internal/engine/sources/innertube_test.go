package sources

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple object", `{"a":1}`, `{"a":1}`},
		{"trailing script", `{"a":{"b":2}};if (window.ytcsi) {}`, `{"a":{"b":2}}`},
		{"braces inside string", `{"a":"{not a brace}"} trailing`, `{"a":"{not a brace}"}`},
		{"escaped quote in string", `{"a":"say \"}\" loud"}x`, `{"a":"say \"}\" loud"}`},
		{"unterminated", `{"a":1`, ""},
		{"not an object", `[1,2,3]`, ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(extractJSON([]byte(tt.in)))
			if got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGenerateVisitorData(t *testing.T) {
	v1 := generateVisitorData()
	if v1 == "" {
		t.Fatal("empty visitor data")
	}
	v2 := generateVisitorData()
	if v1 == v2 {
		t.Error("visitor data should be random per call")
	}
}
