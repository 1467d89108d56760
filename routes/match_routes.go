package routes

import (
	"adspot_server/controllers"
	"adspot_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for swipe-deck operations under /api/match
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewMatchController(matchService)

	matchRouter := r.PathPrefix("/api/match").Subrouter()

	matchRouter.HandleFunc("/next", controller.HandleGetNextCandidate).Methods("GET")
	matchRouter.HandleFunc("/swipe", controller.HandleSwipe).Methods("POST")
}
