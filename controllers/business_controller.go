package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"adspot_server/services"
)

// BusinessController handles HTTP requests for businesses and tags
type BusinessController struct {
	BusinessService *services.BusinessService
}

// NewBusinessController creates a new BusinessController instance
func NewBusinessController(businessService *services.BusinessService) *BusinessController {
	return &BusinessController{BusinessService: businessService}
}

// HandleCreateBusiness registers a business for the acting user.
func (bc *BusinessController) HandleCreateBusiness(w http.ResponseWriter, r *http.Request) {
	var input services.CreateBusinessInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if input.OwnerID == "" {
		http.Error(w, `{"error": "missing acting user id"}`, http.StatusUnauthorized)
		return
	}

	business, err := bc.BusinessService.CreateBusiness(r.Context(), input)
	if err != nil {
		log.Printf("❌ Failed to create business for %s: %v", input.OwnerID, err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, business)
}

// HandleListBusinesses lists all businesses with their listings.
func (bc *BusinessController) HandleListBusinesses(w http.ResponseWriter, r *http.Request) {
	businesses, err := bc.BusinessService.ListBusinesses(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, businesses)
}

// HandleGetOwnBusiness returns the caller's business, null when none.
func (bc *BusinessController) HandleGetOwnBusiness(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "missing acting user id"}`, http.StatusUnauthorized)
		return
	}

	business, err := bc.BusinessService.GetOwnBusiness(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, business)
}

// HandleListTags lists the available business tags.
func (bc *BusinessController) HandleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := bc.BusinessService.ListTags(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tags)
}

// HandleGeocode proxies forward geocoding for addresses.
func (bc *BusinessController) HandleGeocode(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		http.Error(w, `{"error": "address is required"}`, http.StatusBadRequest)
		return
	}

	results, err := bc.BusinessService.Geocode(r.Context(), address)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}
