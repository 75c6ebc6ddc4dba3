package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the two resident variants.
type Kind string

const (
	KindAdult Kind = "Adult"
	KindChild Kind = "Child"
)

// maxLifespanYears bounds how far in the past a date of birth may lie.
const maxLifespanYears = 120

// Person is the capability set shared by both resident variants. Variant
// specific fields (occupation detail, school, grade) live behind a type
// switch at the codec and statistics boundary.
type Person interface {
	// ID is the process-unique identifier assigned at construction.
	ID() string
	FullName() string
	Age() int
	// Occupation is the occupation-or-schooling label: free text for an
	// adult, the fixed literal "Student" for a child.
	Occupation() string
	// IDNumber is the ID-card number (adult) or birth certificate
	// number (child).
	IDNumber() string
	DateOfBirth() time.Time
	Kind() Kind
}

// newPersonID generates a fresh identifier. IDs are never reused and never
// empty.
func newPersonID() string {
	return uuid.New().String()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func validateRequired(field, value string) error {
	if isBlank(value) {
		return fmt.Errorf("%w: %s", ErrEmptyField, field)
	}
	return nil
}

func validateDateOfBirth(dob time.Time) error {
	earliest := time.Now().AddDate(-maxLifespanYears, 0, 0)
	if dob.Before(earliest) {
		return fmt.Errorf("%w: date of birth %s predates %d years ago", ErrOutOfRange, dob.Format("2006-01-02"), maxLifespanYears)
	}
	return nil
}
