package main

import (
	"log"
	"net/http"
	"os"

	"adspot_server/controllers"
	"adspot_server/routes"
	"adspot_server/services"
	"adspot_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Initialize Services
	userService := &services.UserService{Dynamo: dynamoService}
	businessService := &services.BusinessService{Dynamo: dynamoService}
	adspaceService := &services.AdspaceService{Dynamo: dynamoService}
	matchService := &services.MatchService{Dynamo: dynamoService}
	chatService := services.NewChatService(dynamoService)

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	r.HandleFunc("/", controllers.WelcomeHandler).Methods("GET")
	r.HandleFunc("/health", controllers.HealthCheckHandler).Methods("GET")

	// Register routes
	routes.RegisterUserRoutes(r, userService)
	routes.RegisterBusinessRoutes(r, businessService)
	routes.RegisterAdspaceRoutes(r, adspaceService)
	routes.RegisterMatchRoutes(r, matchService)
	routes.RegisterChatRoutes(r, chatService)
	routes.RegisterS3Routes(r)

	// Realtime chat fan-out
	socketServer := socket.NewSocketServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Printf("❌ Socket server error: %v", err)
		}
	}()
	defer socketServer.Close()
	r.Handle("/socket.io/", socketServer)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
