package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fortuna/scorebot/internal/teams"
	"github.com/gorilla/mux"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, commands CommandHandler, dir *teams.Directory, cache HealthChecker, timeout time.Duration) *Server {
	handler := NewHandler(commands, dir, cache, timeout)

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%s", port),
			Handler:           NewRouter(handler),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// NewRouter wires the routes and middleware for handler
func NewRouter(handler *Handler) *mux.Router {
	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/commands", handler.HandleCommand).Methods("POST")
	api.HandleFunc("/teams", handler.GetTeams).Methods("GET")
	api.HandleFunc("/teams/{abbreviation}", handler.GetTeam).Methods("GET")

	// Preflight; CORSMiddleware writes the response
	router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	return router
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
