package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/goodluckfit/fitauth/internal/dependencies/clock"
	"github.com/goodluckfit/fitauth/internal/services/auth"
	"github.com/goodluckfit/fitauth/internal/storage"
	"github.com/goodluckfit/fitauth/internal/storage/memory"
	redisstorage "github.com/goodluckfit/fitauth/internal/storage/redis"
	"github.com/goodluckfit/fitauth/internal/token"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// DefaultTokenTTL is the token lifetime used when none is configured
const DefaultTokenTTL = 24 * time.Hour

// App contains all wired application components
type App struct {
	Storage     storage.Storage
	Clock       clock.Clock
	TokenIssuer *token.Issuer
	AuthService *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// TokenSecret signs session tokens (required)
	TokenSecret []byte
	// TokenTTL is the token lifetime (optional)
	// If zero, defaults to DefaultTokenTTL
	TokenTTL time.Duration
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	if len(cfg.TokenSecret) == 0 {
		return nil, errors.New("TokenSecret is required")
	}

	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	ttl := cfg.TokenTTL
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}

	clk := clock.New()

	return newWithDependencies(store, clk, cfg.TokenSecret, ttl, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, secret []byte, ttl time.Duration, logger *slog.Logger) *App {
	issuer := token.New(secret, ttl, clk)
	authService := auth.New(store, issuer, clk, logger)

	return &App{
		Storage:     store,
		Clock:       clk,
		TokenIssuer: issuer,
		AuthService: authService,
	}
}
