package engine

import "testing"

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain text",
			raw:  `{"summary": "ok"}`,
			want: `{"summary": "ok"}`,
		},
		{
			name: "json fence",
			raw:  "```json\n{\"summary\": \"ok\"}\n```",
			want: `{"summary": "ok"}`,
		},
		{
			name: "bare fence",
			raw:  "```\nhello\n```",
			want: "hello",
		},
		{
			name: "surrounding whitespace",
			raw:  "  \n```json\n{}\n```\n  ",
			want: "{}",
		},
		{
			name: "empty",
			raw:  "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.raw); got != tt.want {
				t.Errorf("stripFences() = %q, want %q", got, tt.want)
			}
		})
	}
}
