package models

import (
	"errors"
	"testing"
)

func mustHousehold(t *testing.T, number int, address string) *Household {
	t.Helper()
	h, err := NewHousehold(number, address)
	if err != nil {
		t.Fatalf("NewHousehold(%d) error = %v", number, err)
	}
	return h
}

func TestAddHouseholdRejectsDuplicateNumber(t *testing.T) {
	n := NewNeighborhood()

	if err := n.AddHousehold(mustHousehold(t, 5, "1 Main St")); err != nil {
		t.Fatalf("first AddHousehold() error = %v", err)
	}
	err := n.AddHousehold(mustHousehold(t, 5, "2 Oak St"))
	if !errors.Is(err, ErrDuplicateHouseNumber) {
		t.Fatalf("second AddHousehold() expected ErrDuplicateHouseNumber, got %v", err)
	}
	if n.Size() != 1 {
		t.Errorf("household count after failed add = %d, want 1", n.Size())
	}
}

func TestRemoveHousehold(t *testing.T) {
	n := NewNeighborhood()
	n.AddHousehold(mustHousehold(t, 5, "1 Main St"))
	n.AddHousehold(mustHousehold(t, 7, "2 Oak St"))

	if !n.RemoveHousehold(5) {
		t.Fatal("RemoveHousehold(5) = false, want true")
	}
	if n.RemoveHousehold(5) {
		t.Error("removing twice should report not found")
	}

	// Index must survive the removal reshuffle.
	h, ok := n.HouseholdByNumber(7)
	if !ok || h.HouseNumber() != 7 {
		t.Error("household 7 should still be findable after removing household 5")
	}
}

func TestFindPersonGlobal(t *testing.T) {
	n := NewNeighborhood()
	h5 := mustHousehold(t, 5, "1 Main St")
	h7 := mustHousehold(t, 7, "2 Oak St")
	n.AddHousehold(h5)
	n.AddHousehold(h7)

	jane := mustAdult(t, "Jane", 40)
	tom := mustChild(t, "Tom", 9)
	h5.AddMember(jane)
	h7.AddMember(tom)

	p, owner, found, err := n.FindPerson(tom.ID())
	if err != nil || !found {
		t.Fatalf("FindPerson() = (%v, %v), want found", found, err)
	}
	if p.ID() != tom.ID() || owner.HouseNumber() != 7 {
		t.Errorf("FindPerson() returned (%s, house %d), want (%s, house 7)", p.ID(), owner.HouseNumber(), tom.ID())
	}

	if _, _, found, err := n.FindPerson("unknown"); err != nil || found {
		t.Errorf("unknown id should be a plain not-found, got (%v, %v)", found, err)
	}

	if _, _, _, err := n.FindPerson(" "); !errors.Is(err, ErrEmptyField) {
		t.Errorf("empty id: expected ErrEmptyField, got %v", err)
	}
}

func TestAddPersonToHousehold(t *testing.T) {
	n := NewNeighborhood()
	n.AddHousehold(mustHousehold(t, 5, "1 Main St"))

	jane := mustAdult(t, "Jane", 40)
	if err := n.AddPersonToHousehold(5, jane); err != nil {
		t.Fatalf("AddPersonToHousehold() error = %v", err)
	}

	// Missing household and duplicate id surface on the same channel.
	if err := n.AddPersonToHousehold(99, mustAdult(t, "John", 35)); !errors.Is(err, ErrHouseholdNotFound) {
		t.Errorf("expected ErrHouseholdNotFound, got %v", err)
	}
	if err := n.AddPersonToHousehold(5, jane); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
}

func TestRemovePersonFromHousehold(t *testing.T) {
	n := NewNeighborhood()
	n.AddHousehold(mustHousehold(t, 5, "1 Main St"))
	jane := mustAdult(t, "Jane", 40)
	n.AddPersonToHousehold(5, jane)

	removed, err := n.RemovePersonFromHousehold(5, jane.ID())
	if err != nil || !removed {
		t.Errorf("RemovePersonFromHousehold() = (%v, %v), want (true, nil)", removed, err)
	}

	removed, err = n.RemovePersonFromHousehold(99, jane.ID())
	if err != nil || removed {
		t.Errorf("missing household should report (false, nil), got (%v, %v)", removed, err)
	}
}

func TestExtremalMembershipQueries(t *testing.T) {
	n := NewNeighborhood()

	if got := n.MostMembers(); len(got) != 0 {
		t.Errorf("empty neighborhood MostMembers() = %d households, want 0", len(got))
	}
	if got := n.FewestMembers(); len(got) != 0 {
		t.Errorf("empty neighborhood FewestMembers() = %d households, want 0", len(got))
	}

	h5 := mustHousehold(t, 5, "")
	h7 := mustHousehold(t, 7, "")
	h9 := mustHousehold(t, 9, "")
	n.AddHousehold(h5)
	n.AddHousehold(h7)
	n.AddHousehold(h9)

	h5.AddMember(mustAdult(t, "A", 30))
	h5.AddMember(mustAdult(t, "B", 31))
	h7.AddMember(mustAdult(t, "C", 32))
	h7.AddMember(mustAdult(t, "D", 33))
	h9.AddMember(mustAdult(t, "E", 34))

	most := n.MostMembers()
	if len(most) != 2 || most[0].HouseNumber() != 5 || most[1].HouseNumber() != 7 {
		t.Errorf("MostMembers() must return every household tying the maximum, got %d results", len(most))
	}

	fewest := n.FewestMembers()
	if len(fewest) != 1 || fewest[0].HouseNumber() != 9 {
		t.Errorf("FewestMembers() = %d results, want just household 9", len(fewest))
	}
}

func TestPeopleByAgeStableSort(t *testing.T) {
	n := NewNeighborhood()
	h5 := mustHousehold(t, 5, "")
	h7 := mustHousehold(t, 7, "")
	n.AddHousehold(h5)
	n.AddHousehold(h7)

	first40 := mustAdult(t, "First", 40)
	kid := mustChild(t, "Kid", 9)
	second40 := mustAdult(t, "Second", 40)
	h5.AddMember(first40)
	h5.AddMember(kid)
	h7.AddMember(second40)

	asc := n.PeopleByAge(true)
	if len(asc) != 3 {
		t.Fatalf("PeopleByAge() returned %d residents, want 3", len(asc))
	}
	if asc[0].Person.ID() != kid.ID() {
		t.Errorf("ascending order must start with the youngest")
	}
	// Tied ages keep traversal order in both directions.
	if asc[1].Person.ID() != first40.ID() || asc[2].Person.ID() != second40.ID() {
		t.Errorf("tied ages must preserve traversal order ascending")
	}

	desc := n.PeopleByAge(false)
	if desc[0].Person.ID() != first40.ID() || desc[1].Person.ID() != second40.ID() {
		t.Errorf("tied ages must preserve traversal order descending")
	}
	if desc[2].Person.ID() != kid.ID() {
		t.Errorf("descending order must end with the youngest")
	}

	if asc[1].HouseNumber != 5 || asc[2].HouseNumber != 7 {
		t.Errorf("residents must carry their owning house number")
	}
}

func TestTotals(t *testing.T) {
	n := NewNeighborhood()
	h5 := mustHousehold(t, 5, "")
	h7 := mustHousehold(t, 7, "")
	n.AddHousehold(h5)
	n.AddHousehold(h7)

	h5.AddMember(mustAdult(t, "Jane", 40))
	h5.AddMember(mustChild(t, "Tom", 9))
	h7.AddMember(mustChild(t, "Amy", 6))

	if got := n.TotalPopulation(); got != 3 {
		t.Errorf("TotalPopulation() = %d, want 3", got)
	}
	if got := n.TotalAdults(); got != 1 {
		t.Errorf("TotalAdults() = %d, want 1", got)
	}
	if got := n.TotalChildren(); got != 2 {
		t.Errorf("TotalChildren() = %d, want 2", got)
	}

	n.RemoveHousehold(5)
	if got := n.TotalPopulation(); got != 1 {
		t.Errorf("TotalPopulation() after removal = %d, want 1", got)
	}
}
