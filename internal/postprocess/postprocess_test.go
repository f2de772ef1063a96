package postprocess_test

import (
	"testing"

	"github.com/xsukax/tarjuman/internal/postprocess"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   "مرحبا بالعالم",
			want: "مرحبا بالعالم",
		},
		{
			name: "thinking block removed",
			in:   "<think>the user wants Arabic</think>مرحبا",
			want: "مرحبا",
		},
		{
			name: "truncated thinking block removed",
			in:   "مرحبا<thinking>and then",
			want: "مرحبا",
		},
		{
			name: "instruction echo removed",
			in:   "Here is the translation: مرحبا بالعالم",
			want: "مرحبا بالعالم",
		},
		{
			name: "quote wrapping removed",
			in:   `"مرحبا بالعالم"`,
			want: "مرحبا بالعالم",
		},
		{
			name: "arabic guillemets removed",
			in:   "«مرحبا بالعالم»",
			want: "مرحبا بالعالم",
		},
		{
			name: "interior quotes kept",
			in:   `He said "hello" to me`,
			want: `He said "hello" to me`,
		},
		{
			name: "trims whitespace",
			in:   "  مرحبا  ",
			want: "مرحبا",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := postprocess.Clean(tt.in)
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
