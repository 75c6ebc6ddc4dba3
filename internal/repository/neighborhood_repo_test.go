package repository

import (
	"path/filepath"
	"testing"
	"time"

	"neighborly/internal/database"
	"neighborly/internal/models"
)

// TestSnapshotRoundTrip tests the complete save/load lifecycle against a
// real SQLite store.
func TestSnapshotRoundTrip(t *testing.T) {
	// Skip if not in integration test mode
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "snapshot_test.db")

	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(filepath.Join("..", "..", "migrations")); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	repo := NewNeighborhoodRepository(db)

	hood := models.NewNeighborhood()
	first, err := models.NewHousehold(5, "1 Main St")
	if err != nil {
		t.Fatalf("Failed to create household: %v", err)
	}
	adult, err := models.NewAdult("Jane Doe", 40, "Engineer", "ID123",
		time.Date(1986, time.March, 15, 9, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Failed to create adult: %v", err)
	}
	if err := first.AddMember(adult); err != nil {
		t.Fatalf("Failed to add adult: %v", err)
	}
	child, err := models.NewChild("Tom Lee", 9, 4, "Oak Elementary", "BC456",
		time.Date(2017, time.June, 1, 14, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Failed to create child: %v", err)
	}
	if err := first.AddMember(child); err != nil {
		t.Fatalf("Failed to add child: %v", err)
	}

	// An empty household must survive the round trip too.
	empty, err := models.NewHousehold(7, "2 Oak St")
	if err != nil {
		t.Fatalf("Failed to create household: %v", err)
	}

	if err := hood.AddHousehold(first); err != nil {
		t.Fatalf("Failed to add household: %v", err)
	}
	if err := hood.AddHousehold(empty); err != nil {
		t.Fatalf("Failed to add household: %v", err)
	}

	if err := repo.SaveSnapshot(hood); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}

	loaded, err := repo.LoadSnapshot()
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}

	if got := len(loaded.Households()); got != 2 {
		t.Fatalf("Expected 2 households after load, got %d", got)
	}
	if loaded.TotalPopulation() != 2 || loaded.TotalAdults() != 1 || loaded.TotalChildren() != 1 {
		t.Errorf("Unexpected totals after load: population=%d adults=%d children=%d",
			loaded.TotalPopulation(), loaded.TotalAdults(), loaded.TotalChildren())
	}

	emptyLoaded, ok := loaded.HouseholdByNumber(7)
	if !ok {
		t.Fatal("Empty household was not restored")
	}
	if emptyLoaded.Size() != 0 {
		t.Errorf("Expected empty household to stay empty, got %d members", emptyLoaded.Size())
	}

	// Person ids must be stable across the round trip.
	person, household, found, err := loaded.FindPerson(adult.ID())
	if err != nil {
		t.Fatalf("FindPerson failed: %v", err)
	}
	if !found {
		t.Fatalf("Adult %s not found after load", adult.ID())
	}
	if household.HouseNumber() != 5 {
		t.Errorf("Expected adult in household 5, got %d", household.HouseNumber())
	}
	restored, ok := person.(*models.Adult)
	if !ok {
		t.Fatalf("Expected *models.Adult, got %T", person)
	}
	if restored.Occupation() != "Engineer" || restored.IDNumber() != "ID123" {
		t.Errorf("Adult fields not restored: occupation=%q idNumber=%q",
			restored.Occupation(), restored.IDNumber())
	}
	if !restored.DateOfBirth().Equal(adult.DateOfBirth()) {
		t.Errorf("Expected date of birth %v, got %v", adult.DateOfBirth(), restored.DateOfBirth())
	}

	restoredChild, _, found, err := loaded.FindPerson(child.ID())
	if err != nil || !found {
		t.Fatalf("Child %s not found after load: %v", child.ID(), err)
	}
	c, ok := restoredChild.(*models.Child)
	if !ok {
		t.Fatalf("Expected *models.Child, got %T", restoredChild)
	}
	if c.School() != "Oak Elementary" || c.Grade() != 4 || c.SchoolClass() != "Grade 4" {
		t.Errorf("Child fields not restored: school=%q grade=%d class=%q",
			c.School(), c.Grade(), c.SchoolClass())
	}
}

// TestSnapshotReplacesPrevious verifies that saving overwrites the stored
// snapshot instead of accumulating rows.
func TestSnapshotReplacesPrevious(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "replace_test.db")

	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(filepath.Join("..", "..", "migrations")); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	repo := NewNeighborhoodRepository(db)

	first := models.NewNeighborhood()
	h, err := models.NewHousehold(1, "Old Rd")
	if err != nil {
		t.Fatalf("Failed to create household: %v", err)
	}
	if err := first.AddHousehold(h); err != nil {
		t.Fatalf("Failed to add household: %v", err)
	}
	if err := repo.SaveSnapshot(first); err != nil {
		t.Fatalf("Failed to save first snapshot: %v", err)
	}

	second := models.NewNeighborhood()
	h2, err := models.NewHousehold(2, "New Rd")
	if err != nil {
		t.Fatalf("Failed to create household: %v", err)
	}
	if err := second.AddHousehold(h2); err != nil {
		t.Fatalf("Failed to add household: %v", err)
	}
	if err := repo.SaveSnapshot(second); err != nil {
		t.Fatalf("Failed to save second snapshot: %v", err)
	}

	loaded, err := repo.LoadSnapshot()
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}
	if got := len(loaded.Households()); got != 1 {
		t.Fatalf("Expected 1 household after replace, got %d", got)
	}
	if _, ok := loaded.HouseholdByNumber(1); ok {
		t.Error("Household from the first snapshot survived the replace")
	}
	if _, ok := loaded.HouseholdByNumber(2); !ok {
		t.Error("Household from the second snapshot is missing")
	}
}
