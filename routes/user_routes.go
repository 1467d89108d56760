package routes

import (
	"adspot_server/controllers"
	"adspot_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserRoutes sets up routes for account operations under /api/user
func RegisterUserRoutes(r *mux.Router, userService *services.UserService) {
	controller := controllers.NewUserController(userService)

	userRouter := r.PathPrefix("/api/user").Subrouter()

	userRouter.HandleFunc("/register", controller.HandleRegister).Methods("POST")
	userRouter.HandleFunc("/{id}", controller.HandleGetUser).Methods("GET")
}
