package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"adspot_server/services"

	"github.com/gorilla/mux"
)

// UserController handles HTTP requests for accounts
type UserController struct {
	UserService *services.UserService
}

// NewUserController creates a new UserController instance
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{UserService: userService}
}

// HandleRegister creates an account.
func (uc *UserController) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	user, err := uc.UserService.Register(r.Context(), input)
	if err != nil {
		log.Printf("❌ Failed to register %s: %v", input.Email, err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// HandleGetUser fetches an account by id.
func (uc *UserController) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	user, err := uc.UserService.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
