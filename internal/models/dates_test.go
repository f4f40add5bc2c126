package models

import (
	"testing"
	"time"
)

func TestISOString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string_passthrough", "2026-03-01", "2026-03-01"},
		{"timestamp_rendered_utc", time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC), "2026-03-01T12:30:00Z"},
		{"nil_is_empty", nil, ""},
		{"number_is_empty", 42, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ISOString(tt.in); got != tt.want {
				t.Errorf("ISOString(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	t.Run("rfc3339", func(t *testing.T) {
		got, err := ParseTime("2026-03-01T12:30:00Z")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)) {
			t.Errorf("unexpected time %v", got)
		}
	})

	t.Run("bare_date", func(t *testing.T) {
		got, err := ParseTime("2026-03-01")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected time %v", got)
		}
	})

	t.Run("rejects_garbage", func(t *testing.T) {
		if _, err := ParseTime("next tuesday"); err == nil {
			t.Fatal("expected error")
		}
	})
}
