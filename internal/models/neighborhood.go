package models

import (
	"fmt"
	"sort"
)

// Neighborhood is the top-level aggregate owning all households. House
// numbers are unique; households iterate in insertion order. Aggregate
// counts are always recomputed from the households, never cached.
type Neighborhood struct {
	households []*Household
	byNumber   map[int]int // house number -> index into households
}

// Resident pairs a person with the number of the household that owns it.
// Entities hold no back-references, so lookups that need the owning
// household return the pair explicitly.
type Resident struct {
	Person      Person
	HouseNumber int
}

// NewNeighborhood creates an empty neighborhood.
func NewNeighborhood() *Neighborhood {
	return &Neighborhood{byNumber: make(map[int]int)}
}

// Households returns the households in insertion order. The slice is a
// copy; the households themselves are shared.
func (n *Neighborhood) Households() []*Household {
	out := make([]*Household, len(n.households))
	copy(out, n.households)
	return out
}

// Size is the number of households.
func (n *Neighborhood) Size() int { return len(n.households) }

// AddHousehold appends a household, failing if its house number is already
// taken.
func (n *Neighborhood) AddHousehold(h *Household) error {
	if h == nil {
		return fmt.Errorf("%w: household", ErrEmptyField)
	}
	if _, exists := n.byNumber[h.houseNumber]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateHouseNumber, h.houseNumber)
	}
	n.byNumber[h.houseNumber] = len(n.households)
	n.households = append(n.households, h)
	return nil
}

// RemoveHousehold removes the household with the given number, reporting
// whether one was found. Removal drops ownership of all its residents.
func (n *Neighborhood) RemoveHousehold(houseNumber int) bool {
	idx, ok := n.byNumber[houseNumber]
	if !ok {
		return false
	}
	n.households = append(n.households[:idx], n.households[idx+1:]...)
	delete(n.byNumber, houseNumber)
	for i := idx; i < len(n.households); i++ {
		n.byNumber[n.households[i].houseNumber] = i
	}
	return true
}

// HouseholdByNumber looks up a household by its number.
func (n *Neighborhood) HouseholdByNumber(houseNumber int) (*Household, bool) {
	idx, ok := n.byNumber[houseNumber]
	if !ok {
		return nil, false
	}
	return n.households[idx], true
}

// FindPerson searches every household in insertion order for a resident
// with the given id and returns it with its owning household. Ids are
// expected to be unique neighborhood-wide but only enforced per household;
// when duplicates exist across households the first match wins.
func (n *Neighborhood) FindPerson(id string) (Person, *Household, bool, error) {
	if isBlank(id) {
		return nil, nil, false, fmt.Errorf("%w: id", ErrEmptyField)
	}
	for _, h := range n.households {
		if p, found, err := h.Member(id); err != nil {
			return nil, nil, false, err
		} else if found {
			return p, h, true, nil
		}
	}
	return nil, nil, false, nil
}

// AddPersonToHousehold resolves the household and delegates to AddMember.
// A missing household and a duplicate id both surface as errors so callers
// see a single failure channel.
func (n *Neighborhood) AddPersonToHousehold(houseNumber int, p Person) error {
	h, ok := n.HouseholdByNumber(houseNumber)
	if !ok {
		return fmt.Errorf("%w: %d", ErrHouseholdNotFound, houseNumber)
	}
	return h.AddMember(p)
}

// RemovePersonFromHousehold resolves the household and delegates to
// RemoveMember. A missing household reports false without error.
func (n *Neighborhood) RemovePersonFromHousehold(houseNumber int, id string) (bool, error) {
	h, ok := n.HouseholdByNumber(houseNumber)
	if !ok {
		return false, nil
	}
	return h.RemoveMember(id)
}

// MostMembers returns every household tying the maximum member count, or
// an empty list when there are no households.
func (n *Neighborhood) MostMembers() []*Household {
	return n.extremalHouseholds(func(size, best int) bool { return size > best })
}

// FewestMembers returns every household tying the minimum member count,
// or an empty list when there are no households.
func (n *Neighborhood) FewestMembers() []*Household {
	return n.extremalHouseholds(func(size, best int) bool { return size < best })
}

func (n *Neighborhood) extremalHouseholds(better func(size, best int) bool) []*Household {
	if len(n.households) == 0 {
		return []*Household{}
	}
	best := n.households[0].Size()
	for _, h := range n.households[1:] {
		if better(h.Size(), best) {
			best = h.Size()
		}
	}
	out := []*Household{}
	for _, h := range n.households {
		if h.Size() == best {
			out = append(out, h)
		}
	}
	return out
}

// PeopleByAge flattens every resident across all households (household
// insertion order, then member insertion order) and stable-sorts by age.
// Tied ages keep their traversal order in both directions.
func (n *Neighborhood) PeopleByAge(ascending bool) []Resident {
	residents := []Resident{}
	for _, h := range n.households {
		for _, p := range h.members {
			residents = append(residents, Resident{Person: p, HouseNumber: h.houseNumber})
		}
	}
	sort.SliceStable(residents, func(i, j int) bool {
		if ascending {
			return residents[i].Person.Age() < residents[j].Person.Age()
		}
		return residents[i].Person.Age() > residents[j].Person.Age()
	})
	return residents
}

// TotalPopulation sums the member counts of every household.
func (n *Neighborhood) TotalPopulation() int {
	total := 0
	for _, h := range n.households {
		total += h.Size()
	}
	return total
}

// TotalAdults sums the adult counts of every household.
func (n *Neighborhood) TotalAdults() int {
	total := 0
	for _, h := range n.households {
		total += h.AdultCount()
	}
	return total
}

// TotalChildren sums the child counts of every household.
func (n *Neighborhood) TotalChildren() int {
	total := 0
	for _, h := range n.households {
		total += h.ChildCount()
	}
	return total
}
