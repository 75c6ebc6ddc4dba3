package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"neighborly/internal/codec"
	"neighborly/internal/models"
	"neighborly/internal/repository"
)

var (
	// ErrPersonNotFound reports a lookup for an id no household contains.
	ErrPersonNotFound = errors.New("person not found")
	// ErrNoDatabase reports a snapshot operation on a service wired
	// without a registry store.
	ErrNoDatabase = errors.New("no registry database configured")
)

// Stats is the aggregate census summary.
type Stats struct {
	Households      int
	TotalPopulation int
	TotalAdults     int
	TotalChildren   int
}

// RegistryService is the business façade over the in-memory neighborhood
// aggregate, the census file codec, and the optional SQL snapshot store.
// The aggregate itself is single-threaded; the service serializes access
// on behalf of concurrent callers such as the HTTP layer.
type RegistryService struct {
	mu   sync.Mutex
	hood *models.Neighborhood
	repo *repository.NeighborhoodRepository
}

// NewRegistryService creates a registry service around an empty
// neighborhood. The repository may be nil when no store is configured.
func NewRegistryService(repo *repository.NeighborhoodRepository) *RegistryService {
	return &RegistryService{
		hood: models.NewNeighborhood(),
		repo: repo,
	}
}

// CreateHousehold adds a new, empty household.
func (s *RegistryService) CreateHousehold(houseNumber int, address string) (*models.Household, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := models.NewHousehold(houseNumber, address)
	if err != nil {
		return nil, err
	}
	if err := s.hood.AddHousehold(h); err != nil {
		return nil, err
	}
	return h, nil
}

// RemoveHousehold removes a household and everyone in it, reporting
// whether it existed.
func (s *RegistryService) RemoveHousehold(houseNumber int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hood.RemoveHousehold(houseNumber)
}

// Household looks up a household by number.
func (s *RegistryService) Household(houseNumber int) (*models.Household, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.hood.HouseholdByNumber(houseNumber)
	if !ok {
		return nil, fmt.Errorf("%w: %d", models.ErrHouseholdNotFound, houseNumber)
	}
	return h, nil
}

// Households returns all households in insertion order.
func (s *RegistryService) Households() []*models.Household {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hood.Households()
}

// RegisterAdult creates an adult and adds them to the household. A blank
// id number is replaced with a synthesized placeholder.
func (s *RegistryService) RegisterAdult(houseNumber int, fullName string, age int, occupation, idNumber string, dateOfBirth time.Time) (*models.Adult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var a *models.Adult
	var err error
	if idNumber == "" {
		a, err = models.NewAdultWithGeneratedID(fullName, age, occupation, dateOfBirth)
	} else {
		a, err = models.NewAdult(fullName, age, occupation, idNumber, dateOfBirth)
	}
	if err != nil {
		return nil, err
	}
	if err := s.hood.AddPersonToHousehold(houseNumber, a); err != nil {
		return nil, err
	}
	return a, nil
}

// RegisterChild creates a child and adds them to the household.
func (s *RegistryService) RegisterChild(houseNumber int, fullName string, age, grade int, school, birthCertificateNumber string, dateOfBirth time.Time) (*models.Child, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := models.NewChild(fullName, age, grade, school, birthCertificateNumber, dateOfBirth)
	if err != nil {
		return nil, err
	}
	if err := s.hood.AddPersonToHousehold(houseNumber, c); err != nil {
		return nil, err
	}
	return c, nil
}

// EvictResident removes a resident from a household, reporting whether
// one was removed.
func (s *RegistryService) EvictResident(houseNumber int, personID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hood.RemovePersonFromHousehold(houseNumber, personID)
}

// FindResident searches every household for the given person id.
func (s *RegistryService) FindResident(personID string) (models.Resident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, h, found, err := s.hood.FindPerson(personID)
	if err != nil {
		return models.Resident{}, err
	}
	if !found {
		return models.Resident{}, fmt.Errorf("%w: %s", ErrPersonNotFound, personID)
	}
	return models.Resident{Person: p, HouseNumber: h.HouseNumber()}, nil
}

// ResidentsByAge returns every resident stable-sorted by age.
func (s *RegistryService) ResidentsByAge(ascending bool) []models.Resident {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hood.PeopleByAge(ascending)
}

// MostPopulated returns every household tying the maximum member count.
func (s *RegistryService) MostPopulated() []*models.Household {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hood.MostMembers()
}

// LeastPopulated returns every household tying the minimum member count.
func (s *RegistryService) LeastPopulated() []*models.Household {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hood.FewestMembers()
}

// CensusStats recomputes the aggregate counts.
func (s *RegistryService) CensusStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Households:      s.hood.Size(),
		TotalPopulation: s.hood.TotalPopulation(),
		TotalAdults:     s.hood.TotalAdults(),
		TotalChildren:   s.hood.TotalChildren(),
	}
}

// ImportFile replaces the in-memory neighborhood with the contents of a
// census file. On failure the current neighborhood is kept.
func (s *RegistryService) ImportFile(path string) error {
	hood, err := codec.LoadFile(path)
	if err != nil {
		return fmt.Errorf("failed to import census file: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hood = hood
	return nil
}

// ExportFile writes the in-memory neighborhood to a census file.
func (s *RegistryService) ExportFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := codec.SaveFile(path, s.hood); err != nil {
		return fmt.Errorf("failed to export census file: %w", err)
	}
	return nil
}

// SaveToDatabase replaces the SQL snapshot with the in-memory
// neighborhood.
func (s *RegistryService) SaveToDatabase() error {
	if s.repo == nil {
		return ErrNoDatabase
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SaveSnapshot(s.hood); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadFromDatabase replaces the in-memory neighborhood with the SQL
// snapshot. On failure the current neighborhood is kept.
func (s *RegistryService) LoadFromDatabase() error {
	if s.repo == nil {
		return ErrNoDatabase
	}

	hood, err := s.repo.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hood = hood
	return nil
}
