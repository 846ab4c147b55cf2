package rest

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"surveywizard/internal/service"
	"surveywizard/internal/transport/rest/handler"
	"surveywizard/internal/transport/rest/middleware"
	"surveywizard/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	QuestionService *service.QuestionService
	ResponseService *service.ResponseService
	WSHub           *ws.Hub

	// IdentityTTL is the visitor cookie lifetime. Zero means the
	// middleware default.
	IdentityTTL time.Duration
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	questionHandler := handler.NewQuestionHandler(c.QuestionService)
	responseHandler := handler.NewResponseHandler(c.ResponseService)

	// CORS first, then the visitor cookie
	r.Use(corsMiddleware)
	r.Use(middleware.Identity(c.IdentityTTL))

	r.HandleFunc("/get-questions", questionHandler.Get).Methods("GET", "OPTIONS")
	r.HandleFunc("/add-question", questionHandler.Add).Methods("POST", "OPTIONS")
	r.HandleFunc("/submit-survey", responseHandler.Submit).Methods("POST", "OPTIONS")
	r.HandleFunc("/seed-questions", questionHandler.Seed).Methods("GET", "OPTIONS")

	// Change feed for connected wizard clients
	if c.WSHub != nil {
		wsHandler := ws.NewHandler(c.WSHub)
		r.HandleFunc("/ws", wsHandler.Serve).Methods("GET")
	}

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
