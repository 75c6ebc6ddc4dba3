package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	adultMinAge = 18
	adultMaxAge = 120
)

// placeholderIDNumberLen is the length of a synthesized ID-card number when
// an adult is registered before their papers are on file.
const placeholderIDNumberLen = 12

// Adult is a resident aged 18 to 120 with an occupation and an ID-card
// number. All fields are validated on construction and on every replace
// operation; a failed write leaves the adult unchanged.
type Adult struct {
	id          string
	fullName    string
	age         int
	occupation  string
	idNumber    string
	dateOfBirth time.Time
}

// NewAdult creates an adult resident. A fresh id is generated; it is
// immutable for the lifetime of the value.
func NewAdult(fullName string, age int, occupation, idNumber string, dateOfBirth time.Time) (*Adult, error) {
	return NewAdultWithID("", fullName, age, occupation, idNumber, dateOfBirth)
}

// NewAdultWithID rehydrates an adult with a known id, as when loading a
// stored snapshot. A blank id is replaced by a freshly generated one; the
// id is never left empty.
func NewAdultWithID(id, fullName string, age int, occupation, idNumber string, dateOfBirth time.Time) (*Adult, error) {
	if isBlank(id) {
		id = newPersonID()
	}
	a := &Adult{id: id}
	if err := a.SetFullName(fullName); err != nil {
		return nil, err
	}
	if err := a.SetAge(age); err != nil {
		return nil, err
	}
	if err := a.SetOccupation(occupation); err != nil {
		return nil, err
	}
	if err := a.SetIDNumber(idNumber); err != nil {
		return nil, err
	}
	if err := a.SetDateOfBirth(dateOfBirth); err != nil {
		return nil, err
	}
	return a, nil
}

// NewAdultWithGeneratedID creates an adult whose ID-card number is not yet
// known, synthesizing a placeholder number.
func NewAdultWithGeneratedID(fullName string, age int, occupation string, dateOfBirth time.Time) (*Adult, error) {
	return NewAdult(fullName, age, occupation, placeholderIDNumber(), dateOfBirth)
}

// placeholderIDNumber derives a fixed-length placeholder from a fresh
// random identifier.
func placeholderIDNumber() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return raw[:placeholderIDNumberLen]
}

func (a *Adult) ID() string             { return a.id }
func (a *Adult) FullName() string       { return a.fullName }
func (a *Adult) Age() int               { return a.age }
func (a *Adult) Occupation() string     { return a.occupation }
func (a *Adult) IDNumber() string       { return a.idNumber }
func (a *Adult) DateOfBirth() time.Time { return a.dateOfBirth }
func (a *Adult) Kind() Kind             { return KindAdult }

// SetFullName replaces the full name, rejecting blank values.
func (a *Adult) SetFullName(fullName string) error {
	if err := validateRequired("full name", fullName); err != nil {
		return err
	}
	a.fullName = fullName
	return nil
}

// SetAge replaces the age, enforcing the adult range on every write.
func (a *Adult) SetAge(age int) error {
	if age < adultMinAge || age > adultMaxAge {
		return fmt.Errorf("%w: adult age %d not in [%d, %d]", ErrOutOfRange, age, adultMinAge, adultMaxAge)
	}
	a.age = age
	return nil
}

// SetOccupation replaces the occupation, rejecting blank values.
func (a *Adult) SetOccupation(occupation string) error {
	if err := validateRequired("occupation", occupation); err != nil {
		return err
	}
	a.occupation = occupation
	return nil
}

// SetIDNumber replaces the ID-card number, rejecting blank values.
func (a *Adult) SetIDNumber(idNumber string) error {
	if err := validateRequired("id number", idNumber); err != nil {
		return err
	}
	a.idNumber = idNumber
	return nil
}

// SetDateOfBirth replaces the date of birth, rejecting dates more than 120
// years in the past.
func (a *Adult) SetDateOfBirth(dateOfBirth time.Time) error {
	if err := validateDateOfBirth(dateOfBirth); err != nil {
		return err
	}
	a.dateOfBirth = dateOfBirth
	return nil
}
