package engine

import (
	"context"
	"errors"
	"testing"
)

type mockGenerator struct {
	generateFunc func(ctx context.Context, text string, dir Direction, mode DecodeMode) (string, error)
	modes        []DecodeMode
}

func (m *mockGenerator) Name() string { return "mockgen" }

func (m *mockGenerator) Generate(ctx context.Context, text string, dir Direction, mode DecodeMode) (string, error) {
	m.modes = append(m.modes, mode)
	if m.generateFunc != nil {
		return m.generateFunc(ctx, text, dir, mode)
	}
	return "translated", nil
}

func (m *mockGenerator) IsAvailable(ctx context.Context) error { return nil }

func TestQualityRetry_SingleAttemptWhenOutputDiffers(t *testing.T) {
	gen := &mockGenerator{}
	eng := WithQualityRetry(gen)

	out, err := eng.Translate(context.Background(), "Hello", EnglishToArabic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "translated" {
		t.Errorf("expected deterministic result, got %q", out)
	}
	if len(gen.modes) != 1 || gen.modes[0] != DecodeDeterministic {
		t.Errorf("expected one deterministic attempt, got %v", gen.modes)
	}
}

func TestQualityRetry_EchoTriggersSamplingAttempt(t *testing.T) {
	gen := &mockGenerator{
		generateFunc: func(ctx context.Context, text string, dir Direction, mode DecodeMode) (string, error) {
			if mode == DecodeDeterministic {
				// Case-insensitive echo of the input.
				return "HELLO", nil
			}
			return "second attempt", nil
		},
	}
	eng := WithQualityRetry(gen)

	out, err := eng.Translate(context.Background(), "hello", EnglishToArabic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "second attempt" {
		t.Errorf("expected sampling result, got %q", out)
	}
	want := []DecodeMode{DecodeDeterministic, DecodeSampling}
	if len(gen.modes) != 2 || gen.modes[0] != want[0] || gen.modes[1] != want[1] {
		t.Errorf("attempt modes = %v, want %v", gen.modes, want)
	}
}

func TestQualityRetry_SecondAttemptReturnedEvenIfStillEcho(t *testing.T) {
	gen := &mockGenerator{
		generateFunc: func(ctx context.Context, text string, dir Direction, mode DecodeMode) (string, error) {
			return text, nil // both passes echo
		},
	}
	eng := WithQualityRetry(gen)

	out, err := eng.Translate(context.Background(), "Hi", EnglishToArabic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Hi" {
		t.Errorf("second attempt must be returned regardless of outcome, got %q", out)
	}
	if len(gen.modes) != 2 {
		t.Errorf("expected exactly 2 attempts, got %d", len(gen.modes))
	}
}

func TestQualityRetry_EmptyChunkIsNoOp(t *testing.T) {
	gen := &mockGenerator{}
	eng := WithQualityRetry(gen)

	for _, in := range []string{"", "   ", "\n\t"} {
		out, err := eng.Translate(context.Background(), in, ArabicToEnglish)
		if err != nil {
			t.Errorf("Translate(%q) error: %v", in, err)
		}
		if out != "" {
			t.Errorf("Translate(%q) = %q, want empty", in, out)
		}
	}
	if len(gen.modes) != 0 {
		t.Errorf("generator invoked for empty chunks: %v", gen.modes)
	}
}

func TestQualityRetry_ErrorPropagates(t *testing.T) {
	gen := &mockGenerator{
		generateFunc: func(ctx context.Context, text string, dir Direction, mode DecodeMode) (string, error) {
			return "", errors.New("model unavailable")
		},
	}
	eng := WithQualityRetry(gen)

	_, err := eng.Translate(context.Background(), "Hello", EnglishToArabic)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(gen.modes) != 1 {
		t.Errorf("deterministic failure must not trigger a sampling attempt, got %d attempts", len(gen.modes))
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"en-ar", EnglishToArabic, false},
		{"ar-en", ArabicToEnglish, false},
		{"en-fr", "", true},
		{"", "", true},
		{"EN-AR", "", true}, // callers lowercase first
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDirection(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDirection_SourceTarget(t *testing.T) {
	if EnglishToArabic.Source() != "en" || EnglishToArabic.Target() != "ar" {
		t.Error("en-ar source/target mismatch")
	}
	if ArabicToEnglish.Source() != "ar" || ArabicToEnglish.Target() != "en" {
		t.Error("ar-en source/target mismatch")
	}
	if EnglishToArabic.Opposite() != ArabicToEnglish {
		t.Error("Opposite mismatch")
	}
}
