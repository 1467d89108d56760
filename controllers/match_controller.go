package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"adspot_server/services"
)

// MatchController handles HTTP requests for the swipe deck
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController creates a new MatchController instance
func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{MatchService: matchService}
}

// HandleGetNextCandidate returns the next business card for the swipe
// deck, or null when the eligible pool is exhausted.
func (mc *MatchController) HandleGetNextCandidate(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "missing acting user id"}`, http.StatusUnauthorized)
		return
	}

	card, err := mc.MatchService.GetNextCandidate(r.Context(), userID)
	if err != nil {
		log.Printf("❌ Failed to pick next candidate for %s: %v", userID, err)
		writeServiceError(w, err)
		return
	}

	// card is nil when nothing is left to show; that is a normal outcome
	writeJSON(w, http.StatusOK, card)
}

// HandleSwipe records a swipe decision and reports whether it matched.
func (mc *MatchController) HandleSwipe(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID           string `json:"userId"`
		TargetBusinessID string `json:"targetBusinessId"`
		Direction        string `json:"direction"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.UserID == "" {
		http.Error(w, `{"error": "missing acting user id"}`, http.StatusUnauthorized)
		return
	}
	if request.TargetBusinessID == "" || request.Direction == "" {
		http.Error(w, `{"error": "targetBusinessId and direction are required"}`, http.StatusBadRequest)
		return
	}

	result, err := mc.MatchService.RecordSwipe(r.Context(), request.UserID, request.TargetBusinessID, request.Direction)
	if err != nil {
		log.Printf("❌ Failed to record swipe by %s on %s: %v", request.UserID, request.TargetBusinessID, err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
