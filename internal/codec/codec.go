// Package codec converts a neighborhood to and from the line-oriented
// census text format. Each call is a complete read or write; no state is
// retained between calls.
//
// One line per resident, comma separated, no header and no quoting (a
// field containing a comma corrupts the format silently):
//
//	houseNumber,address,Adult,fullName,age,occupation,idNumber,dateOfBirth
//	houseNumber,address,Child,fullName,age,school,idNumber,dateOfBirth,grade
//
// A household with no members produces no lines at all, so empty
// households do not round-trip through this format.
package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"neighborly/internal/models"
)

// TimeLayout is the fixed month/day/year 12-hour timestamp format used for
// dates of birth.
const TimeLayout = "1/2/2006 3:04:05 PM"

// minFields is the threshold below which a line is skipped instead of
// aborting the read.
const minFields = 7

// ErrMalformedRecord reports a line that could not be parsed into a valid
// resident or household. It aborts the whole read; partial results are
// never returned.
var ErrMalformedRecord = errors.New("malformed census record")

// Write emits every resident of every household in collection order. A
// person of an unrecognized variant is an error rather than silent data
// loss.
func Write(w io.Writer, n *models.Neighborhood) error {
	bw := bufio.NewWriter(w)
	for _, h := range n.Households() {
		for _, p := range h.Members() {
			line, err := formatLine(h, p)
			if err != nil {
				return err
			}
			if _, err := bw.WriteString(line + "\n"); err != nil {
				return fmt.Errorf("failed to write census line: %w", err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush census output: %w", err)
	}
	return nil
}

func formatLine(h *models.Household, p models.Person) (string, error) {
	dob := p.DateOfBirth().Format(TimeLayout)
	switch v := p.(type) {
	case *models.Adult:
		return fmt.Sprintf("%d,%s,%s,%s,%d,%s,%s,%s",
			h.HouseNumber(), h.Address(), models.KindAdult,
			v.FullName(), v.Age(), v.Occupation(), v.IDNumber(), dob), nil
	case *models.Child:
		return fmt.Sprintf("%d,%s,%s,%s,%d,%s,%s,%s,%d",
			h.HouseNumber(), h.Address(), models.KindChild,
			v.FullName(), v.Age(), v.School(), v.IDNumber(), dob, v.Grade()), nil
	default:
		return "", fmt.Errorf("cannot serialize person %s: unrecognized variant %T", p.ID(), p)
	}
}

// Read parses the source line by line and rebuilds the neighborhood
// through the normal aggregate contracts. Lines with fewer than seven
// fields are skipped; any later field that fails to parse or validate
// aborts the entire read. The first line seen for a house number fixes
// that household's address; later addresses for the same number are
// ignored.
func Read(r io.Reader) (*models.Neighborhood, error) {
	n := models.NewNeighborhood()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < minFields {
			continue
		}
		if err := parseLine(n, fields); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read census source: %w", err)
	}
	return n, nil
}

func parseLine(n *models.Neighborhood, fields []string) error {
	houseNumber, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return fmt.Errorf("bad house number %q: %v", fields[0], err)
	}
	address := fields[1]
	kind := fields[2]
	fullName := fields[3]

	age, err := strconv.Atoi(strings.TrimSpace(fields[4]))
	if err != nil {
		return fmt.Errorf("bad age %q: %v", fields[4], err)
	}
	occupationOrSchool := fields[5]

	idNumber := ""
	if len(fields) > 6 {
		idNumber = fields[6]
	}
	if len(fields) < 8 {
		return fmt.Errorf("missing date of birth")
	}
	dob, err := time.Parse(TimeLayout, strings.TrimSpace(fields[7]))
	if err != nil {
		return fmt.Errorf("bad date of birth %q: %v", fields[7], err)
	}

	h, ok := n.HouseholdByNumber(houseNumber)
	if !ok {
		h, err = models.NewHousehold(houseNumber, address)
		if err != nil {
			return err
		}
		if err := n.AddHousehold(h); err != nil {
			return err
		}
	}

	// The id number doubles as the person id so lookups by the value
	// printed in the file keep working across a reload. A blank id
	// number gets a freshly generated identity instead.
	var p models.Person
	if strings.EqualFold(kind, string(models.KindAdult)) {
		if strings.TrimSpace(idNumber) == "" {
			p, err = models.NewAdultWithGeneratedID(fullName, age, occupationOrSchool, dob)
		} else {
			p, err = models.NewAdultWithID(idNumber, fullName, age, occupationOrSchool, idNumber, dob)
		}
	} else {
		grade := 0
		if len(fields) > 8 {
			grade, err = strconv.Atoi(strings.TrimSpace(fields[8]))
			if err != nil {
				return fmt.Errorf("bad grade %q: %v", fields[8], err)
			}
		}
		p, err = models.NewChildWithID(idNumber, fullName, age, fmt.Sprintf("Grade %d", grade), occupationOrSchool, idNumber, dob, grade)
	}
	if err != nil {
		return err
	}
	return h.AddMember(p)
}

// LoadFile reads a neighborhood from the file at path. Storage failures
// wrap the underlying error; parse failures wrap ErrMalformedRecord.
func LoadFile(path string) (*models.Neighborhood, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open census file %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// SaveFile writes the neighborhood to the file at path, replacing any
// existing contents. The write is not atomic: a partial failure leaves the
// destination in an unspecified state.
func SaveFile(path string, n *models.Neighborhood) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create census file %s: %w", path, err)
	}
	defer f.Close()
	if err := Write(f, n); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close census file %s: %w", path, err)
	}
	return nil
}
