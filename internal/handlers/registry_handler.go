package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"neighborly/internal/codec"
	"neighborly/internal/models"
	"neighborly/internal/service"
)

// RegistryHandler exposes the registry operations over JSON. It holds no
// business rules; every decision is delegated to the service.
type RegistryHandler struct {
	registry *service.RegistryService
	reports  *service.ReportService
}

// NewRegistryHandler creates a new registry handler
func NewRegistryHandler(registry *service.RegistryService, reports *service.ReportService) *RegistryHandler {
	return &RegistryHandler{
		registry: registry,
		reports:  reports,
	}
}

// statusForError maps domain failures onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrDuplicateID), errors.Is(err, models.ErrDuplicateHouseNumber):
		return http.StatusConflict
	case errors.Is(err, models.ErrHouseholdNotFound), errors.Is(err, service.ErrPersonNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrEmptyField), errors.Is(err, models.ErrOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, codec.ErrMalformedRecord):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrNoDatabase):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ListHouseholds returns every household in insertion order.
func (h *RegistryHandler) ListHouseholds(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, newHouseholdViews(h.registry.Households()))
}

type createHouseholdRequest struct {
	HouseNumber int    `json:"houseNumber"`
	Address     string `json:"address"`
}

// CreateHousehold registers a new, empty household.
func (h *RegistryHandler) CreateHousehold(w http.ResponseWriter, r *http.Request) {
	var req createHouseholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	household, err := h.registry.CreateHousehold(req.HouseNumber, req.Address)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error(), "Error creating household", err)
		return
	}

	respondJSON(w, http.StatusCreated, newHouseholdView(household))
}

// GetHousehold returns a single household by number.
func (h *RegistryHandler) GetHousehold(w http.ResponseWriter, r *http.Request) {
	houseNumber, err := strconv.Atoi(r.PathValue("number"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid house number", "", err)
		return
	}

	household, err := h.registry.Household(houseNumber)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error(), "", nil)
		return
	}

	respondJSON(w, http.StatusOK, newHouseholdView(household))
}

// DeleteHousehold removes a household and everyone in it.
func (h *RegistryHandler) DeleteHousehold(w http.ResponseWriter, r *http.Request) {
	houseNumber, err := strconv.Atoi(r.PathValue("number"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid house number", "", err)
		return
	}

	if !h.registry.RemoveHousehold(houseNumber) {
		respondWithError(w, http.StatusNotFound, "Household not found", "", nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RankedHouseholds returns the households tying the extremal member count.
func (h *RegistryHandler) RankedHouseholds(w http.ResponseWriter, r *http.Request) {
	var households []*models.Household
	switch r.URL.Query().Get("by") {
	case "most", "":
		households = h.registry.MostPopulated()
	case "fewest":
		households = h.registry.LeastPopulated()
	default:
		respondWithError(w, http.StatusBadRequest, "Parameter 'by' must be 'most' or 'fewest'", "", nil)
		return
	}

	respondJSON(w, http.StatusOK, newHouseholdViews(households))
}

type addResidentRequest struct {
	Kind        string `json:"kind"`
	FullName    string `json:"fullName"`
	Age         int    `json:"age"`
	DateOfBirth string `json:"dateOfBirth"`

	// Adult fields
	Occupation string `json:"occupation"`
	IDNumber   string `json:"idNumber"`

	// Child fields
	School                 string `json:"school"`
	Grade                  int    `json:"grade"`
	BirthCertificateNumber string `json:"birthCertificateNumber"`
}

// AddResident registers an adult or child into a household.
func (h *RegistryHandler) AddResident(w http.ResponseWriter, r *http.Request) {
	houseNumber, err := strconv.Atoi(r.PathValue("number"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid house number", "", err)
		return
	}

	var req addResidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	dateOfBirth, err := time.Parse(dateOfBirthFormat, req.DateOfBirth)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid date of birth; expected YYYY-MM-DD", "", err)
		return
	}

	var person models.Person
	switch req.Kind {
	case string(models.KindAdult):
		person, err = h.registry.RegisterAdult(houseNumber, req.FullName, req.Age, req.Occupation, req.IDNumber, dateOfBirth)
	case string(models.KindChild):
		person, err = h.registry.RegisterChild(houseNumber, req.FullName, req.Age, req.Grade, req.School, req.BirthCertificateNumber, dateOfBirth)
	default:
		respondWithError(w, http.StatusBadRequest, "Kind must be 'Adult' or 'Child'", "", nil)
		return
	}
	if err != nil {
		respondWithError(w, statusForError(err), err.Error(), "Error registering resident", err)
		return
	}

	respondJSON(w, http.StatusCreated, newPersonView(person))
}

// DeleteResident removes a resident from a household.
func (h *RegistryHandler) DeleteResident(w http.ResponseWriter, r *http.Request) {
	houseNumber, err := strconv.Atoi(r.PathValue("number"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid house number", "", err)
		return
	}

	removed, err := h.registry.EvictResident(houseNumber, r.PathValue("id"))
	if err != nil {
		respondWithError(w, statusForError(err), err.Error(), "", nil)
		return
	}
	if !removed {
		respondWithError(w, http.StatusNotFound, "Resident not found", "", nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetResident performs the global person search across all households.
func (h *RegistryHandler) GetResident(w http.ResponseWriter, r *http.Request) {
	resident, err := h.registry.FindResident(r.PathValue("id"))
	if err != nil {
		respondWithError(w, statusForError(err), err.Error(), "", nil)
		return
	}

	respondJSON(w, http.StatusOK, ResidentView{
		HouseNumber: resident.HouseNumber,
		Person:      newPersonView(resident.Person),
	})
}

// ListResidents returns every resident stable-sorted by age.
func (h *RegistryHandler) ListResidents(w http.ResponseWriter, r *http.Request) {
	order := r.URL.Query().Get("order")
	if order != "" && order != "asc" && order != "desc" {
		respondWithError(w, http.StatusBadRequest, "Parameter 'order' must be 'asc' or 'desc'", "", nil)
		return
	}

	respondJSON(w, http.StatusOK, newResidentViews(h.registry.ResidentsByAge(order != "desc")))
}

type statsResponse struct {
	Households      int `json:"households"`
	TotalPopulation int `json:"totalPopulation"`
	TotalAdults     int `json:"totalAdults"`
	TotalChildren   int `json:"totalChildren"`
}

func newStatsResponse(stats service.Stats) statsResponse {
	return statsResponse{
		Households:      stats.Households,
		TotalPopulation: stats.TotalPopulation,
		TotalAdults:     stats.TotalAdults,
		TotalChildren:   stats.TotalChildren,
	}
}

// Stats returns the recomputed aggregate counts.
func (h *RegistryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, newStatsResponse(h.registry.CensusStats()))
}

type fileRequest struct {
	Path string `json:"path"`
}

// ImportCensusFile replaces the registry with the contents of a census
// file on the server's filesystem.
func (h *RegistryHandler) ImportCensusFile(w http.ResponseWriter, r *http.Request) {
	var req fileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		respondWithError(w, http.StatusBadRequest, "A file path is required", "", err)
		return
	}

	if err := h.registry.ImportFile(req.Path); err != nil {
		respondWithError(w, statusForError(err), err.Error(), "Error importing census file", err)
		return
	}

	respondJSON(w, http.StatusOK, newStatsResponse(h.registry.CensusStats()))
}

// ExportCensusFile writes the registry to a census file on the server's
// filesystem.
func (h *RegistryHandler) ExportCensusFile(w http.ResponseWriter, r *http.Request) {
	var req fileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		respondWithError(w, http.StatusBadRequest, "A file path is required", "", err)
		return
	}

	if err := h.registry.ExportFile(req.Path); err != nil {
		respondWithError(w, statusForError(err), err.Error(), "Error exporting census file", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SaveSnapshot writes the registry to the SQL snapshot store.
func (h *RegistryHandler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.SaveToDatabase(); err != nil {
		respondWithError(w, statusForError(err), err.Error(), "Error saving snapshot", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RestoreSnapshot replaces the registry with the SQL snapshot.
func (h *RegistryHandler) RestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.LoadFromDatabase(); err != nil {
		respondWithError(w, statusForError(err), err.Error(), "Error restoring snapshot", err)
		return
	}
	respondJSON(w, http.StatusOK, newStatsResponse(h.registry.CensusStats()))
}

type reportRequest struct {
	ToEmail string `json:"toEmail"`
}

// SendCensusReport mails the census summary to the given address.
func (h *RegistryHandler) SendCensusReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ToEmail == "" {
		respondWithError(w, http.StatusBadRequest, "A destination email is required", "", err)
		return
	}

	if !h.reports.IsEnabled() {
		respondWithError(w, http.StatusServiceUnavailable, "Report mailing is not configured", "", nil)
		return
	}

	if err := h.reports.SendCensusReport(r.Context(), req.ToEmail); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to send report", "Error sending census report", err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
