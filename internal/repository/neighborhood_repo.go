package repository

import (
	"fmt"
	"time"

	"neighborly/internal/database"
	"neighborly/internal/models"
)

// NeighborhoodRepository persists whole-neighborhood snapshots to the
// relational registry store. Unlike the flat census file, the store keeps
// empty households and stable person ids across restarts.
type NeighborhoodRepository struct {
	db *database.DB
}

// NewNeighborhoodRepository creates a new neighborhood repository
func NewNeighborhoodRepository(db *database.DB) *NeighborhoodRepository {
	return &NeighborhoodRepository{db: db}
}

// SaveSnapshot replaces the stored snapshot with the given neighborhood,
// preserving household and member insertion order through a position
// column. The replace runs in a single transaction.
func (r *NeighborhoodRepository) SaveSnapshot(n *models.Neighborhood) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	rewrite := r.db.Dialect.RewriteQuery
	if _, err := tx.Exec(rewrite("DELETE FROM residents")); err != nil {
		return fmt.Errorf("failed to clear residents: %w", err)
	}
	if _, err := tx.Exec(rewrite("DELETE FROM households")); err != nil {
		return fmt.Errorf("failed to clear households: %w", err)
	}

	insertHousehold := rewrite("INSERT INTO households (house_number, address, position) VALUES (?, ?, ?)")
	insertResident := rewrite(`
		INSERT INTO residents
			(person_id, house_number, kind, full_name, age, occupation, school, school_class, grade, id_number, date_of_birth, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	for hi, h := range n.Households() {
		if _, err := tx.Exec(insertHousehold, h.HouseNumber(), h.Address(), hi); err != nil {
			return fmt.Errorf("failed to insert household %d: %w", h.HouseNumber(), err)
		}
		for pi, p := range h.Members() {
			occupation, school, schoolClass, grade := variantColumns(p)
			if _, err := tx.Exec(insertResident,
				p.ID(), h.HouseNumber(), string(p.Kind()), p.FullName(), p.Age(),
				occupation, school, schoolClass, grade, p.IDNumber(), p.DateOfBirth(), pi,
			); err != nil {
				return fmt.Errorf("failed to insert resident %s: %w", p.ID(), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// variantColumns flattens the variant-specific fields into their columns.
func variantColumns(p models.Person) (occupation, school, schoolClass string, grade int) {
	switch v := p.(type) {
	case *models.Adult:
		return v.Occupation(), "", "", 0
	case *models.Child:
		return "", v.School(), v.SchoolClass(), v.Grade()
	default:
		return "", "", "", 0
	}
}

// LoadSnapshot rebuilds the stored neighborhood through the normal
// aggregate contracts; a row that fails validation aborts the load.
func (r *NeighborhoodRepository) LoadSnapshot() (*models.Neighborhood, error) {
	n := models.NewNeighborhood()

	rows, err := r.db.Query("SELECT house_number, address FROM households ORDER BY position ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query households: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var houseNumber int
		var address string
		if err := rows.Scan(&houseNumber, &address); err != nil {
			return nil, fmt.Errorf("failed to scan household: %w", err)
		}
		h, err := models.NewHousehold(houseNumber, address)
		if err != nil {
			return nil, fmt.Errorf("invalid stored household %d: %w", houseNumber, err)
		}
		if err := n.AddHousehold(h); err != nil {
			return nil, fmt.Errorf("failed to add stored household %d: %w", houseNumber, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read households: %w", err)
	}

	residentRows, err := r.db.Query(`
		SELECT person_id, house_number, kind, full_name, age, occupation, school, school_class, grade, id_number, date_of_birth
		FROM residents
		ORDER BY house_number ASC, position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query residents: %w", err)
	}
	defer residentRows.Close()

	for residentRows.Next() {
		var (
			personID, kind, fullName string
			houseNumber, age, grade  int
			occupation, school       string
			schoolClass, idNumber    string
			dateOfBirth              time.Time
		)
		if err := residentRows.Scan(&personID, &houseNumber, &kind, &fullName, &age,
			&occupation, &school, &schoolClass, &grade, &idNumber, &dateOfBirth); err != nil {
			return nil, fmt.Errorf("failed to scan resident: %w", err)
		}

		var p models.Person
		if kind == string(models.KindAdult) {
			p, err = models.NewAdultWithID(personID, fullName, age, occupation, idNumber, dateOfBirth)
		} else {
			p, err = models.NewChildWithID(personID, fullName, age, schoolClass, school, idNumber, dateOfBirth, grade)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid stored resident %s: %w", personID, err)
		}

		if err := n.AddPersonToHousehold(houseNumber, p); err != nil {
			return nil, fmt.Errorf("failed to add stored resident %s: %w", personID, err)
		}
	}
	if err := residentRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read residents: %w", err)
	}

	return n, nil
}
