package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"adspot_server/services"

	"github.com/gorilla/mux"
)

// AdspaceController handles HTTP requests for listings
type AdspaceController struct {
	AdspaceService *services.AdspaceService
}

// NewAdspaceController creates a new AdspaceController instance
func NewAdspaceController(adspaceService *services.AdspaceService) *AdspaceController {
	return &AdspaceController{AdspaceService: adspaceService}
}

// HandleCreateAdspace adds a listing under the caller's business.
func (ac *AdspaceController) HandleCreateAdspace(w http.ResponseWriter, r *http.Request) {
	var input services.CreateAdspaceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if input.OwnerID == "" {
		http.Error(w, `{"error": "missing acting user id"}`, http.StatusUnauthorized)
		return
	}

	adspace, err := ac.AdspaceService.CreateAdspace(r.Context(), input)
	if err != nil {
		log.Printf("❌ Failed to create adspace for %s: %v", input.OwnerID, err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, adspace)
}

// HandleListAdspaces lists every listing with its business.
func (ac *AdspaceController) HandleListAdspaces(w http.ResponseWriter, r *http.Request) {
	adspaces, err := ac.AdspaceService.ListAdspaces(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, adspaces)
}

// HandleListOwnAdspaces lists the caller's listings.
func (ac *AdspaceController) HandleListOwnAdspaces(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "missing acting user id"}`, http.StatusUnauthorized)
		return
	}

	adspaces, err := ac.AdspaceService.ListByOwner(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, adspaces)
}

// HandleGetAdspace returns one listing by id, null when missing.
func (ac *AdspaceController) HandleGetAdspace(w http.ResponseWriter, r *http.Request) {
	adspaceID := mux.Vars(r)["id"]
	if adspaceID == "" {
		http.Error(w, `{"error": "adspace id is required"}`, http.StatusBadRequest)
		return
	}

	adspace, err := ac.AdspaceService.GetAdspace(r.Context(), adspaceID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, adspace)
}

// HandleListTypes lists the listing categories.
func (ac *AdspaceController) HandleListTypes(w http.ResponseWriter, r *http.Request) {
	adspaceTypes, err := ac.AdspaceService.ListTypes(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, adspaceTypes)
}
