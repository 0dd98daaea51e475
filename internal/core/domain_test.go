package core

import (
	"errors"
	"strings"
	"testing"
)

func TestNewEntry(t *testing.T) {
	e, err := NewEntry("12.50", "  Food ", " Lunch ")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if e.Amount.Cents != 1250 || e.Category != "food" || e.Description != "Lunch" {
		t.Fatalf("unexpected entry: %+v", e)
	}

	bads := []struct {
		amount, category, description string
		want                          error
	}{
		{"0", "food", "lunch", ErrInvalidAmount},
		{"-3", "food", "lunch", ErrInvalidAmount},
		{"abc", "food", "lunch", ErrInvalidAmount},
		{"NaN", "food", "lunch", ErrInvalidAmount},
		{"10", "", "lunch", ErrEmptyCategory},
		{"10", "   ", "lunch", ErrEmptyCategory},
		{"10", "food", "", ErrEmptyDescription},
		{"10", "food", "\t ", ErrEmptyDescription},
		{"10", "food", strings.Repeat("x", MaxDescriptionLength+1), ErrDescriptionTooLong},
	}
	for i, b := range bads {
		_, err := NewEntry(b.amount, b.category, b.description)
		if !errors.Is(err, b.want) {
			t.Fatalf("case %d expected %v, got %v", i, b.want, err)
		}
		if !IsValidation(err) {
			t.Fatalf("case %d expected a ValidationError, got %T", i, err)
		}
	}
}

func TestEntryValidateRejectsHandBuiltEntries(t *testing.T) {
	if err := (Entry{Amount: Money{Cents: 0}, Category: "c", Description: "d"}).Validate(); err == nil {
		t.Fatal("expected error for zero amount")
	}
	if err := (Entry{Amount: Money{Cents: 1}, Category: "c", Description: "d"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}

func TestDisplayCategory(t *testing.T) {
	cases := map[string]string{
		"food":          "Food",
		"eating out":    "Eating Out",
		"":              "",
		"already Upper": "Already Upper",
	}
	for in, want := range cases {
		if got := DisplayCategory(in); got != want {
			t.Errorf("DisplayCategory(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStoreErrorUnwraps(t *testing.T) {
	inner := errors.New("disk full")
	err := &StoreError{Op: "append", Err: inner}
	if !errors.Is(err, inner) {
		t.Fatal("expected StoreError to unwrap")
	}
	if err.Error() != "ledger append: disk full" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
