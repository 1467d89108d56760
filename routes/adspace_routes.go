package routes

import (
	"adspot_server/controllers"
	"adspot_server/services"

	"github.com/gorilla/mux"
)

// RegisterAdspaceRoutes sets up routes for listing operations under /api/adspace
func RegisterAdspaceRoutes(r *mux.Router, adspaceService *services.AdspaceService) {
	controller := controllers.NewAdspaceController(adspaceService)

	adspaceRouter := r.PathPrefix("/api/adspace").Subrouter()

	adspaceRouter.HandleFunc("", controller.HandleCreateAdspace).Methods("POST")
	adspaceRouter.HandleFunc("/list", controller.HandleListAdspaces).Methods("GET")
	adspaceRouter.HandleFunc("/mine", controller.HandleListOwnAdspaces).Methods("GET")
	adspaceRouter.HandleFunc("/types", controller.HandleListTypes).Methods("GET")
	adspaceRouter.HandleFunc("/{id}", controller.HandleGetAdspace).Methods("GET")
}
