package contact

import (
	"errors"
	"testing"
)

func TestNew_TrimsFields(t *testing.T) {
	r, err := New("  Alice  ", " +15551234567 ")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.Name != "Alice" {
		t.Errorf("Name = %q, want Alice", r.Name)
	}
	if r.Phone != "+15551234567" {
		t.Errorf("Phone = %q, want +15551234567", r.Phone)
	}
}

func TestNew_EmptyName(t *testing.T) {
	_, err := New("   ", "5551234567")
	if !errors.Is(err, ErrEmptyName) {
		t.Errorf("err = %v, want ErrEmptyName", err)
	}
}

func TestNew_BadPhones(t *testing.T) {
	bad := []string{
		"",                 // empty
		"12345",            // too short
		"123456",           // still too short
		"1234567890123456", // too long
		"555-123-4567",     // separators not allowed
		"+",                // no digits
		"5551x234567",      // letter
		"++15551234567",    // double plus
		"555 1234567",      // interior space
	}
	for _, p := range bad {
		if _, err := New("Alice", p); !errors.Is(err, ErrBadPhone) {
			t.Errorf("New(Alice, %q) err = %v, want ErrBadPhone", p, err)
		}
	}
}

func TestNew_GoodPhones(t *testing.T) {
	good := []string{"1234567", "+123456", "5559876543", "+15551234567", "123456789012345"}
	for _, p := range good {
		if _, err := New("Alice", p); err != nil {
			t.Errorf("New(Alice, %q) unexpected error: %v", p, err)
		}
	}
}

func TestNew_RejectsDelimiter(t *testing.T) {
	if _, err := New("Doe, Jane", "5551234567"); !errors.Is(err, ErrDelimiter) {
		t.Errorf("name with delimiter: err = %v, want ErrDelimiter", err)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	orig, err := New("Alice", "+15551234567")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got, err := DecodeLine(orig.EncodeLine())
	if err != nil {
		t.Fatalf("DecodeLine: %v", err)
	}
	if got != orig {
		t.Errorf("round trip = %+v, want %+v", got, orig)
	}
}

func TestDecodeLine_WrongFieldCount(t *testing.T) {
	for _, line := range []string{"Alice", "Alice,555,extra", ""} {
		if _, err := DecodeLine(line); !errors.Is(err, ErrBadLine) {
			t.Errorf("DecodeLine(%q) err = %v, want ErrBadLine", line, err)
		}
	}
}

func TestDecodeLine_InvalidFields(t *testing.T) {
	_, err := DecodeLine("Alice,not-a-phone")
	if !errors.Is(err, ErrBadLine) {
		t.Errorf("err = %v, want ErrBadLine", err)
	}
	if !errors.Is(err, ErrBadPhone) {
		t.Errorf("err = %v, want wrapped ErrBadPhone", err)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  ALICE "); got != "alice" {
		t.Errorf("Normalize = %q, want alice", got)
	}
}
