package http

import (
	"errors"
	"strings"
	"testing"
)

func TestHex32Validation(t *testing.T) {
	type P struct {
		UserID string `validate:"hex32"`
	}
	cv := NewValidator()

	// valid: 32-char lowercase hex
	ok := P{UserID: strings.Repeat("a", 32)}
	if err := cv.Validate(ok); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	// invalid samples
	for _, s := range []string{
		"",                                  // empty
		strings.Repeat("A", 32),             // uppercase
		"deadbeef",                          // too short
		strings.Repeat("g", 32),             // non-hex char
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",   // 31 chars
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x", // 33 with extra
	} {
		bad := P{UserID: s}
		err := cv.Validate(bad)
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		fe := ToFieldErrors(err)
		found := false
		for _, e := range fe {
			if e.Field == "UserID" && strings.Contains(e.Message, "32-char lowercase hex") {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, fe)
		}
	}
}

func TestDecimalStringValidation(t *testing.T) {
	type P struct {
		Amount string `validate:"decimal"`
	}
	cv := NewValidator()

	for _, v := range []string{"0", "5000000", "100.5", "-3.14", "0.001"} {
		if err := cv.Validate(P{Amount: v}); err != nil {
			t.Fatalf("expected decimal OK for %q, got %v", v, err)
		}
	}
	for _, v := range []string{"", "abc", "1,000.00", "1.2.3"} {
		err := cv.Validate(P{Amount: v})
		if err == nil {
			t.Fatalf("expected decimal error for %q", v)
		}
		if !containsFieldMsg(ToFieldErrors(err), "Amount", "decimal string") {
			t.Fatalf("expected 'decimal string' for %q, got %+v", v, ToFieldErrors(err))
		}
	}
}

func TestDec2Validation(t *testing.T) {
	type P struct {
		Amount string `validate:"dec2"`
	}
	cv := NewValidator()

	for _, v := range []string{"1.29", "2.00", "0.9", "50000", "1.230"} {
		if err := cv.Validate(P{Amount: v}); err != nil {
			t.Fatalf("expected dec2 OK for %q, got %v", v, err)
		}
	}
	for _, v := range []string{"1.234", "2.9999", "nope"} {
		err := cv.Validate(P{Amount: v})
		if err == nil {
			t.Fatalf("expected dec2 error for %q", v)
		}
		if !containsFieldMsg(ToFieldErrors(err), "Amount", "at most 2 decimal places") {
			t.Fatalf("expected 'at most 2 decimal places' for %q, got %+v", v, ToFieldErrors(err))
		}
	}
}

func TestSignValidation(t *testing.T) {
	type P struct {
		Amount string `validate:"positive"`
		Rate   string `validate:"nonnegative"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{Amount: "0.01", Rate: "0"}); err != nil {
		t.Fatalf("expected OK, got %v", err)
	}
	err := cv.Validate(P{Amount: "0", Rate: "-1"})
	if err == nil {
		t.Fatalf("expected sign errors")
	}
	fe := ToFieldErrors(err)
	if !containsFieldMsg(fe, "Amount", "greater than zero") {
		t.Fatalf("missing positive message: %+v", fe)
	}
	if !containsFieldMsg(fe, "Rate", "must not be negative") {
		t.Fatalf("missing nonnegative message: %+v", fe)
	}
}

func TestRequiredAndBoundsMapping(t *testing.T) {
	type P struct {
		Name string `validate:"required"`
		Min  int    `validate:"gte=10"`
		Max  int    `validate:"lte=5"`
		Amt  string `validate:"dec2"`
	}
	cv := NewValidator()

	err := cv.Validate(P{
		Name: "",
		Min:  9,
		Max:  6,
		Amt:  "1.333",
	})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)

	if !containsFieldMsg(fe, "Name", "is required") {
		t.Fatalf("missing 'is required' for Name: %+v", fe)
	}
	if !containsFieldMsg(fe, "Min", "greater than or equal to 10") {
		t.Fatalf("missing gte message for Min: %+v", fe)
	}
	if !containsFieldMsg(fe, "Max", "less than or equal to 5") {
		t.Fatalf("missing lte message for Max: %+v", fe)
	}
	if !containsFieldMsg(fe, "Amt", "at most 2 decimal places") {
		t.Fatalf("missing dec2 message for Amt: %+v", fe)
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	err := errors.New("boom")
	fe := ToFieldErrors(err)
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
