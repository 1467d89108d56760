package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"adspot_server/services"
)

// HealthCheckHandler provides a basic health check
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// WelcomeHandler provides a welcome message
func WelcomeHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the AdSpot API"})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeServiceError maps service sentinels onto HTTP statuses: missing
// identity is an authorization failure, absence of required entities is
// a 404, everything else is a server error.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrMissingUserID):
		http.Error(w, `{"error": "missing acting user id"}`, http.StatusUnauthorized)
	case errors.Is(err, services.ErrNotParticipant):
		http.Error(w, `{"error": "user is not a participant of this chat"}`, http.StatusForbidden)
	case errors.Is(err, services.ErrItemNotFound):
		http.Error(w, `{"error": "not found"}`, http.StatusNotFound)
	case errors.Is(err, services.ErrInvalidDirection),
		errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrNoBusiness),
		errors.Is(err, services.ErrEmailTaken):
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
	default:
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
	}
}
