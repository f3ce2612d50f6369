package uuid

import (
	"testing"
	"time"

	googleuuid "github.com/google/uuid"
)

func TestNew(t *testing.T) {
	id := New()
	if !IsValid(id) {
		t.Fatalf("New() = %q, not a valid uuid", id)
	}
	parsed := googleuuid.MustParse(id)
	if parsed.Version() != 7 {
		t.Errorf("version = %d, want 7", parsed.Version())
	}
	if parsed.Variant() != googleuuid.RFC4122 {
		t.Errorf("variant = %v, want RFC4122", parsed.Variant())
	}
}

func TestNewAt_TimestampRoundTrip(t *testing.T) {
	at := time.Date(2026, 10, 19, 12, 30, 0, 0, time.UTC)
	ts, ok := Timestamp(NewAt(at))
	if !ok {
		t.Fatal("expected timestamp to be extracted")
	}
	if !ts.Equal(at) {
		t.Errorf("timestamp = %v, want %v", ts, at)
	}
}

func TestTimestamp_RejectsOtherVersions(t *testing.T) {
	if _, ok := Timestamp(googleuuid.New().String()); ok {
		t.Error("expected v4 uuid to be rejected")
	}
	if _, ok := Timestamp("not-a-uuid"); ok {
		t.Error("expected garbage to be rejected")
	}
}

func TestIsValid(t *testing.T) {
	if IsValid("") {
		t.Error("empty string should be invalid")
	}
	if !IsValid("0192a0b4-7c3e-7a1b-8c2d-3e4f5a6b7c8d") {
		t.Error("well-formed uuid should be valid")
	}
}
