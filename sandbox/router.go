package sandbox

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hairizuanbinnoorazman/bizadmin/client"
	"github.com/hairizuanbinnoorazman/bizadmin/logger"
	"github.com/hairizuanbinnoorazman/bizadmin/project"
	"github.com/hairizuanbinnoorazman/bizadmin/session"
	"github.com/hairizuanbinnoorazman/bizadmin/user"
	"github.com/rs/cors"
)

// DefaultBasePath is where the project collection is mounted.
const DefaultBasePath = "/api/projects"

// Config holds router configuration.
type Config struct {
	BasePath       string
	AllowedOrigins []string
}

// Deps are the stores and services the handlers use.
type Deps struct {
	Projects project.Store
	Clients  client.Store
	Users    user.Store
	Sessions *session.Manager
	Tokens   *session.TokenCodec
	Logger   logger.Logger
}

// NewRouter builds the sandbox HTTP handler: routes, auth, panic recovery
// and CORS.
func NewRouter(cfg Config, deps Deps) http.Handler {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = DefaultBasePath
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router := mux.NewRouter()

	// Health check endpoint (public)
	router.HandleFunc("/health", HealthHandler).Methods(http.MethodGet)

	authHandler := NewAuthHandler(deps.Users, deps.Sessions, deps.Tokens, deps.Logger)
	authMiddleware := NewAuthMiddleware(deps.Sessions, deps.Tokens, deps.Logger)

	router.HandleFunc("/api/auth/login", authHandler.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	router.Handle("/api/auth/verify", authMiddleware.Handler(http.HandlerFunc(authHandler.Verify))).Methods(http.MethodGet)

	projectHandler := NewProjectHandler(deps.Projects, deps.Clients, deps.Logger)

	projectRouter := router.PathPrefix(basePath).Subrouter()
	projectRouter.Use(authMiddleware.Handler, WriteRoleMiddleware)

	for _, root := range []string{"", "/"} {
		projectRouter.HandleFunc(root, projectHandler.List).Methods(http.MethodGet)
		projectRouter.HandleFunc(root, projectHandler.Create).Methods(http.MethodPost)
	}
	// Fixed paths before /{id}.
	projectRouter.HandleFunc("/stats", projectHandler.Stats).Methods(http.MethodGet)
	projectRouter.HandleFunc("/clients", projectHandler.Clients).Methods(http.MethodGet)
	projectRouter.HandleFunc("/client/{clientId}", projectHandler.ByClient).Methods(http.MethodGet)
	projectRouter.HandleFunc("/{id}", projectHandler.GetByID).Methods(http.MethodGet)
	projectRouter.HandleFunc("/{id}", projectHandler.Update).Methods(http.MethodPut)
	projectRouter.HandleFunc("/{id}/status", projectHandler.UpdateStatus).Methods(http.MethodPatch)
	projectRouter.HandleFunc("/{id}", projectHandler.Delete).Methods(http.MethodDelete)

	var handler http.Handler = router
	handler = Recovery(deps.Logger)(handler)

	// CORS wraps everything so pre-flight requests never reach auth.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "accessToken"},
		AllowCredentials: true,
	})
	return corsHandler.Handler(handler)
}
