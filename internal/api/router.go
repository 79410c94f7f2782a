package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/goodluckfit/fitauth/internal/api/handler"
	apimiddleware "github.com/goodluckfit/fitauth/internal/api/middleware"
	"github.com/goodluckfit/fitauth/internal/middleware"
	"github.com/goodluckfit/fitauth/internal/services/auth"
	"github.com/goodluckfit/fitauth/internal/token"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	AuthService *auth.Service
	TokenIssuer *token.Issuer
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(cfg.AuthService)

	authMiddleware := apimiddleware.Auth(cfg.TokenIssuer)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// Auth subrouter with common middleware
	authRoutes := r.PathPrefix("/auth").Subrouter()
	authRoutes.Use(recoveryMiddleware)
	authRoutes.Use(loggingMiddleware)

	// Public routes
	authRoutes.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", authHandler.LoginPreflight).Methods(http.MethodOptions)
	authRoutes.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)

	// Protected routes (valid token required before handler logic runs)
	protected := authRoutes.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/profile", authHandler.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/change_password", authHandler.ChangePassword).Methods(http.MethodPut)
	protected.HandleFunc("/update_simple_profile", authHandler.UpdateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/refresh", authHandler.Refresh).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	authRoutes.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
