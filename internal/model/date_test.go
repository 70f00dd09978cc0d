package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2025, time.October, 30)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `"2025-10-30"` {
		t.Fatalf("expected \"2025-10-30\", got %s", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %v != %v", back, d)
	}
}

func TestDateUnmarshalRejectsBadFormat(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"30/10/2025"`), &d); err == nil {
		t.Fatal("expected an error for a non-ISO date")
	}
	if err := json.Unmarshal([]byte(`"2025-13-45"`), &d); err == nil {
		t.Fatal("expected an error for an out-of-range date")
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	want := time.Date(2025, time.October, 30, 0, 0, 0, 0, time.UTC)

	if err := d.Scan(want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Equal(want) {
		t.Fatalf("expected %v, got %v", want, d.Time)
	}

	if err := d.Scan("2025-10-30"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2025-10-30" {
		t.Fatalf("expected 2025-10-30, got %s", d)
	}

	if err := d.Scan(42); err == nil {
		t.Fatal("expected an error scanning an int")
	}
}
