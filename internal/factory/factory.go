// Package factory wires application components together.
package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mpetrie/geohunt/internal/dependencies/clock"
	"github.com/mpetrie/geohunt/internal/dependencies/random"
	"github.com/mpetrie/geohunt/internal/geo"
	"github.com/mpetrie/geohunt/internal/services/auth"
	"github.com/mpetrie/geohunt/internal/services/game"
	"github.com/mpetrie/geohunt/internal/services/solver"
	"github.com/mpetrie/geohunt/internal/storage"
	"github.com/mpetrie/geohunt/internal/storage/memory"
	redisstorage "github.com/mpetrie/geohunt/internal/storage/redis"
	"github.com/mpetrie/geohunt/internal/streetview"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock    clock.Clock
	Random   random.Random
	Provider streetview.Provider

	// Services
	Sampler        geo.Sampler
	Solver         *solver.Service
	GameController *game.Controller
	AuthService    *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// StreetView holds imagery provider settings
	// If the zero value, defaults are used; an API key is still required to talk to Google
	StreetView streetview.Config
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
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

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	svCfg := cfg.StreetView
	if svCfg.BaseURL == "" {
		key := svCfg.APIKey
		svCfg = streetview.DefaultConfig()
		svCfg.APIKey = key
	}
	provider := streetview.New(svCfg)

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, provider, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	provider streetview.Provider,
	authCfg auth.Config,
	logger *slog.Logger,
) *App {
	sampler := geo.NewDiskSampler(rnd)
	solverService := solver.New(sampler, provider, logger)
	gameController := game.NewController(store, solverService, clk, rnd, logger)
	authService := auth.New(store, clk, authCfg, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		Provider:       provider,
		Sampler:        sampler,
		Solver:         solverService,
		GameController: gameController,
		AuthService:    authService,
	}
}
