package models

import "fmt"

// Household is a uniquely numbered residence owning an ordered list of
// residents. The house number is immutable after construction; member ids
// are unique within the household. Insertion order is preserved for
// iteration and for the stable sorts built on top of it.
type Household struct {
	houseNumber int
	address     string
	members     []Person
	memberIDs   map[string]int // id -> index into members
}

// NewHousehold creates an empty household. The house number must be
// positive; the address is optional free text.
func NewHousehold(houseNumber int, address string) (*Household, error) {
	if houseNumber <= 0 {
		return nil, fmt.Errorf("%w: house number %d must be positive", ErrOutOfRange, houseNumber)
	}
	return &Household{
		houseNumber: houseNumber,
		address:     address,
		memberIDs:   make(map[string]int),
	}, nil
}

func (h *Household) HouseNumber() int { return h.houseNumber }
func (h *Household) Address() string  { return h.address }

// SetAddress replaces the address. Addresses are free text, so no
// validation applies.
func (h *Household) SetAddress(address string) {
	h.address = address
}

// Members returns the residents in insertion order. The slice is a copy;
// mutating it does not affect the household.
func (h *Household) Members() []Person {
	out := make([]Person, len(h.members))
	copy(out, h.members)
	return out
}

// Size is the number of residents.
func (h *Household) Size() int { return len(h.members) }

// AddMember appends a resident, failing if another member already carries
// the same id.
func (h *Household) AddMember(p Person) error {
	if p == nil {
		return fmt.Errorf("%w: person", ErrEmptyField)
	}
	if _, exists := h.memberIDs[p.ID()]; exists {
		return fmt.Errorf("%w: %s in house %d", ErrDuplicateID, p.ID(), h.houseNumber)
	}
	h.memberIDs[p.ID()] = len(h.members)
	h.members = append(h.members, p)
	return nil
}

// RemoveMember removes the resident with the given id. It reports whether
// a resident was found and removed; an empty id is an error.
func (h *Household) RemoveMember(id string) (bool, error) {
	if isBlank(id) {
		return false, fmt.Errorf("%w: id", ErrEmptyField)
	}
	idx, ok := h.memberIDs[id]
	if !ok {
		return false, nil
	}
	h.members = append(h.members[:idx], h.members[idx+1:]...)
	delete(h.memberIDs, id)
	for i := idx; i < len(h.members); i++ {
		h.memberIDs[h.members[i].ID()] = i
	}
	return true, nil
}

// Member looks up a resident by id without removing it. An empty id is an
// error; an unknown id is a plain not-found.
func (h *Household) Member(id string) (Person, bool, error) {
	if isBlank(id) {
		return nil, false, fmt.Errorf("%w: id", ErrEmptyField)
	}
	idx, ok := h.memberIDs[id]
	if !ok {
		return nil, false, nil
	}
	return h.members[idx], true, nil
}

// AdultCount is the number of adult residents, computed on demand.
func (h *Household) AdultCount() int {
	count := 0
	for _, p := range h.members {
		if p.Kind() == KindAdult {
			count++
		}
	}
	return count
}

// ChildCount is the number of child residents, computed on demand.
func (h *Household) ChildCount() int {
	count := 0
	for _, p := range h.members {
		if p.Kind() == KindChild {
			count++
		}
	}
	return count
}

// AverageAge is the arithmetic mean of member ages, 0 for an empty
// household.
func (h *Household) AverageAge() float64 {
	if len(h.members) == 0 {
		return 0
	}
	sum := 0
	for _, p := range h.members {
		sum += p.Age()
	}
	return float64(sum) / float64(len(h.members))
}

// Oldest returns the oldest resident, false when the household is empty.
// Ties resolve to the first member in list order; no further ordering is
// imposed.
func (h *Household) Oldest() (Person, bool) {
	var oldest Person
	for _, p := range h.members {
		if oldest == nil || p.Age() > oldest.Age() {
			oldest = p
		}
	}
	return oldest, oldest != nil
}

// Youngest returns the youngest resident, false when the household is
// empty. Ties resolve to the first member in list order.
func (h *Household) Youngest() (Person, bool) {
	var youngest Person
	for _, p := range h.members {
		if youngest == nil || p.Age() < youngest.Age() {
			youngest = p
		}
	}
	return youngest, youngest != nil
}
