package normalizer_test

import (
	"testing"

	"github.com/xsukax/tarjuman/internal/normalizer"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "collapses interior spaces",
			in:   "Hello    world",
			want: "Hello world",
		},
		{
			name: "collapses tabs",
			in:   "Hello\t\tworld",
			want: "Hello world",
		},
		{
			name: "trims line edges",
			in:   "   Hello world   ",
			want: "Hello world",
		},
		{
			name: "preserves blank lines",
			in:   "First paragraph.\n\nSecond paragraph.",
			want: "First paragraph.\n\nSecond paragraph.",
		},
		{
			name: "whitespace-only line becomes empty",
			in:   "First.\n   \t \nSecond.",
			want: "First.\n\nSecond.",
		},
		{
			name: "multiple blank lines survive",
			in:   "A\n\n\n\nB",
			want: "A\n\n\n\nB",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "arabic text untouched beyond whitespace",
			in:   "مرحبا    بالعالم",
			want: "مرحبا بالعالم",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizer.Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Hello    world",
		"First.\n\n  Second   line.\n\nThird.",
		"  \n\n  ",
		"مرحبا  بالعالم.\n\nكيف   الحال؟",
	}

	for _, in := range inputs {
		once := normalizer.Normalize(in)
		twice := normalizer.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
