package utils

import (
	"testing"
	"time"
)

func TestParseUTC(t *testing.T) {
	got, err := ParseUTC("2026-09-01T10:00:00+02:00")
	if err != nil {
		t.Fatalf("ParseUTC failed: %v", err)
	}
	want := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	if !got.Equal(want) || got.Location() != time.UTC {
		t.Errorf("got %v, want %v in UTC", got, want)
	}

	if _, err := ParseUTC("01/09/2026 10:00"); err == nil {
		t.Error("non-RFC3339 input accepted")
	}
	if _, err := ParseUTC(""); err == nil {
		t.Error("empty input accepted")
	}
}

func TestGenerateRandomStrings(t *testing.T) {
	s := GenerateRandomString(12)
	if len(s) != 12 {
		t.Fatalf("len = %d", len(s))
	}

	d := GenerateRandomDigitString(16)
	if len(d) != 16 {
		t.Fatalf("len = %d", len(d))
	}
	for _, r := range d {
		if r < '0' || r > '9' {
			t.Fatalf("non-digit %q in %q", r, d)
		}
	}
}
