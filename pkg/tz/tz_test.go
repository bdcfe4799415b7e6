package tz

import (
	"testing"
	"time"
)

func TestStampUsesVenueTime(t *testing.T) {
	at := time.Date(2025, time.September, 2, 20, 30, 0, 0, time.UTC)
	if got, want := Stamp(at), "02/09/2025 15:30"; got != want {
		t.Fatalf("Stamp = %q, want %q", got, want)
	}
}
