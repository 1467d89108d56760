package routes

import (
	"adspot_server/controllers"
	"adspot_server/services"

	"github.com/gorilla/mux"
)

// RegisterBusinessRoutes sets up routes for business operations under /api/business
func RegisterBusinessRoutes(r *mux.Router, businessService *services.BusinessService) {
	controller := controllers.NewBusinessController(businessService)

	businessRouter := r.PathPrefix("/api/business").Subrouter()

	businessRouter.HandleFunc("", controller.HandleCreateBusiness).Methods("POST")
	businessRouter.HandleFunc("/list", controller.HandleListBusinesses).Methods("GET")
	businessRouter.HandleFunc("/mine", controller.HandleGetOwnBusiness).Methods("GET")
	businessRouter.HandleFunc("/tags", controller.HandleListTags).Methods("GET")
	businessRouter.HandleFunc("/geocode", controller.HandleGeocode).Methods("GET")
}
