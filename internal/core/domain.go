package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// TimestampLayout is the sortable layout used for persisted timestamps
	// and for the CSV export.
	TimestampLayout = "2006-01-02 15:04:05"
	DayLayout       = "2006-01-02"
	MonthLayout     = "2006-01"

	MaxDescriptionLength = 200
)

type (
	// Entry is a validated expense that has not been persisted yet.
	Entry struct {
		Amount      Money
		Category    string // normalized to lowercase
		Description string
	}

	// ExpenseRecord is an expense owned by the ledger. It is never mutated
	// once the store has returned it.
	ExpenseRecord struct {
		ID          int64
		Amount      Money
		Category    string
		Description string
		Timestamp   time.Time
	}
)

var (
	ErrInvalidAmount      = errors.New("amount must be a positive number")
	ErrEmptyCategory      = errors.New("category cannot be empty")
	ErrEmptyDescription   = errors.New("description cannot be empty")
	ErrDescriptionTooLong = fmt.Errorf("description too long (max %d characters)", MaxDescriptionLength)
)

// ValidationError reports user input that was rejected before anything
// reached the ledger.
type ValidationError struct {
	Field string
	Err   error
}

// Error returns the message of the underlying rule, which already names
// the field.
func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// StoreError wraps a failure of the persistence layer.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("ledger %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NewEntry validates the raw strings typed by the user and builds an Entry.
func NewEntry(amount, category, description string) (Entry, error) {
	m, err := ParseAmount(amount)
	if err != nil {
		return Entry{}, &ValidationError{Field: "amount", Err: err}
	}
	e := Entry{
		Amount:      m,
		Category:    NormalizeCategory(category),
		Description: strings.TrimSpace(description),
	}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Validate checks the entry fields. Stores call it again before
// writing, so an Entry built by hand cannot bypass the rules.
func (e Entry) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return &ValidationError{Field: "amount", Err: err}
	}
	if strings.TrimSpace(e.Category) == "" {
		return &ValidationError{Field: "category", Err: ErrEmptyCategory}
	}
	if strings.TrimSpace(e.Description) == "" {
		return &ValidationError{Field: "description", Err: ErrEmptyDescription}
	}
	if utf8.RuneCountInString(e.Description) > MaxDescriptionLength {
		return &ValidationError{Field: "description", Err: ErrDescriptionTooLong}
	}
	return nil
}

// NormalizeCategory returns the storage form of a category.
func NormalizeCategory(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}

// DisplayCategory capitalizes every word of a stored category.
func DisplayCategory(c string) string {
	return cases.Title(language.Und).String(c)
}
