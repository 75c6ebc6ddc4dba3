package models

import (
	"fmt"
	"time"
)

// childMaxAge is exclusive: a resident turns adult at 18.
const childMaxAge = 18

// childOccupation is the fixed occupation-or-schooling label for every
// child; it is not independently settable.
const childOccupation = "Student"

// Education level labels reported by EducationLevel.
const (
	EducationPreschool  = "Preschool"
	EducationElementary = "Elementary School"
	EducationMiddle     = "Middle School"
	EducationHigh       = "High School"
)

// Child is a resident aged 0 to 17 with a school class, an optional school
// name, a grade, and a birth certificate number. Validation mirrors Adult:
// construction and replace operations either succeed whole or change
// nothing.
type Child struct {
	id          string
	fullName    string
	age         int
	schoolClass string
	school      string
	grade       int
	idNumber    string
	dateOfBirth time.Time
}

// NewChild creates a child resident, deriving the school class from the
// grade. The school name may be empty.
func NewChild(fullName string, age, grade int, school, birthCertificateNumber string, dateOfBirth time.Time) (*Child, error) {
	return NewChildWithClass(fullName, age, fmt.Sprintf("Grade %d", grade), school, birthCertificateNumber, dateOfBirth, grade)
}

// NewChildWithClass creates a child resident with an explicit school class
// label.
func NewChildWithClass(fullName string, age int, schoolClass, school, birthCertificateNumber string, dateOfBirth time.Time, grade int) (*Child, error) {
	return NewChildWithID("", fullName, age, schoolClass, school, birthCertificateNumber, dateOfBirth, grade)
}

// NewChildWithID rehydrates a child with a known id, as when loading a
// stored snapshot. A blank id is replaced by a freshly generated one.
func NewChildWithID(id, fullName string, age int, schoolClass, school, birthCertificateNumber string, dateOfBirth time.Time, grade int) (*Child, error) {
	c := &Child{id: id, school: school, grade: grade}
	if isBlank(id) {
		c.id = newPersonID()
	}
	if err := c.SetFullName(fullName); err != nil {
		return nil, err
	}
	if err := c.SetAge(age); err != nil {
		return nil, err
	}
	if err := c.SetSchoolClass(schoolClass); err != nil {
		return nil, err
	}
	if err := c.SetBirthCertificateNumber(birthCertificateNumber); err != nil {
		return nil, err
	}
	if err := c.SetDateOfBirth(dateOfBirth); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Child) ID() string             { return c.id }
func (c *Child) FullName() string       { return c.fullName }
func (c *Child) Age() int               { return c.age }
func (c *Child) Occupation() string     { return childOccupation }
func (c *Child) SchoolClass() string    { return c.schoolClass }
func (c *Child) School() string         { return c.school }
func (c *Child) Grade() int             { return c.grade }
func (c *Child) IDNumber() string       { return c.idNumber }
func (c *Child) DateOfBirth() time.Time { return c.dateOfBirth }
func (c *Child) Kind() Kind             { return KindChild }

// BirthCertificateNumber is the child-facing name for the id number.
func (c *Child) BirthCertificateNumber() string { return c.idNumber }

// SetFullName replaces the full name, rejecting blank values.
func (c *Child) SetFullName(fullName string) error {
	if err := validateRequired("full name", fullName); err != nil {
		return err
	}
	c.fullName = fullName
	return nil
}

// SetAge replaces the age, enforcing the child range on every write.
func (c *Child) SetAge(age int) error {
	if age < 0 || age >= childMaxAge {
		return fmt.Errorf("%w: child age %d not in [0, %d)", ErrOutOfRange, age, childMaxAge)
	}
	c.age = age
	return nil
}

// SetSchoolClass replaces the school class label, rejecting blank values.
func (c *Child) SetSchoolClass(schoolClass string) error {
	if err := validateRequired("school class", schoolClass); err != nil {
		return err
	}
	c.schoolClass = schoolClass
	return nil
}

// SetSchool replaces the school name. The school is free text and may be
// empty.
func (c *Child) SetSchool(school string) {
	c.school = school
}

// SetGrade replaces the grade and re-derives the school class label. No
// hard bound is enforced on the grade itself.
func (c *Child) SetGrade(grade int) {
	c.grade = grade
	c.schoolClass = fmt.Sprintf("Grade %d", grade)
}

// SetBirthCertificateNumber replaces the birth certificate number,
// rejecting blank values.
func (c *Child) SetBirthCertificateNumber(birthCertificateNumber string) error {
	if err := validateRequired("birth certificate number", birthCertificateNumber); err != nil {
		return err
	}
	c.idNumber = birthCertificateNumber
	return nil
}

// SetDateOfBirth replaces the date of birth, rejecting dates more than 120
// years in the past.
func (c *Child) SetDateOfBirth(dateOfBirth time.Time) error {
	if err := validateDateOfBirth(dateOfBirth); err != nil {
		return err
	}
	c.dateOfBirth = dateOfBirth
	return nil
}

// EducationLevel maps the child's age to a schooling stage. Boundaries are
// inclusive below: age 5 is Elementary, 11 is Middle, 15 is High.
func (c *Child) EducationLevel() string {
	switch {
	case c.age < 5:
		return EducationPreschool
	case c.age < 11:
		return EducationElementary
	case c.age < 15:
		return EducationMiddle
	default:
		return EducationHigh
	}
}
