package handlers

import (
	"neighborly/internal/models"
)

// PersonView is the JSON shape of a resident.
type PersonView struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	FullName    string `json:"fullName"`
	Age         int    `json:"age"`
	Occupation  string `json:"occupation"`
	IDNumber    string `json:"idNumber"`
	DateOfBirth string `json:"dateOfBirth"`

	// Child-only fields
	School         string `json:"school,omitempty"`
	SchoolClass    string `json:"schoolClass,omitempty"`
	Grade          int    `json:"grade,omitempty"`
	EducationLevel string `json:"educationLevel,omitempty"`
}

// HouseholdView is the JSON shape of a household.
type HouseholdView struct {
	HouseNumber int          `json:"houseNumber"`
	Address     string       `json:"address"`
	AdultCount  int          `json:"adultCount"`
	ChildCount  int          `json:"childCount"`
	AverageAge  float64      `json:"averageAge"`
	Members     []PersonView `json:"members"`
}

// ResidentView pairs a resident with its owning house number.
type ResidentView struct {
	HouseNumber int        `json:"houseNumber"`
	Person      PersonView `json:"person"`
}

const dateOfBirthFormat = "2006-01-02"

func newPersonView(p models.Person) PersonView {
	view := PersonView{
		ID:          p.ID(),
		Kind:        string(p.Kind()),
		FullName:    p.FullName(),
		Age:         p.Age(),
		Occupation:  p.Occupation(),
		IDNumber:    p.IDNumber(),
		DateOfBirth: p.DateOfBirth().Format(dateOfBirthFormat),
	}
	if c, ok := p.(*models.Child); ok {
		view.School = c.School()
		view.SchoolClass = c.SchoolClass()
		view.Grade = c.Grade()
		view.EducationLevel = c.EducationLevel()
	}
	return view
}

func newHouseholdView(h *models.Household) HouseholdView {
	members := []PersonView{}
	for _, p := range h.Members() {
		members = append(members, newPersonView(p))
	}
	return HouseholdView{
		HouseNumber: h.HouseNumber(),
		Address:     h.Address(),
		AdultCount:  h.AdultCount(),
		ChildCount:  h.ChildCount(),
		AverageAge:  h.AverageAge(),
		Members:     members,
	}
}

func newHouseholdViews(households []*models.Household) []HouseholdView {
	views := []HouseholdView{}
	for _, h := range households {
		views = append(views, newHouseholdView(h))
	}
	return views
}

func newResidentViews(residents []models.Resident) []ResidentView {
	views := []ResidentView{}
	for _, r := range residents {
		views = append(views, ResidentView{
			HouseNumber: r.HouseNumber,
			Person:      newPersonView(r.Person),
		})
	}
	return views
}
