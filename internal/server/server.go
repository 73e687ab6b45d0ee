package server

import (
	"fmt"
	"net/http"
	"time"

	"techmarket/internal/config"
	"techmarket/internal/database"
	custommiddleware "techmarket/internal/middleware"
	"techmarket/internal/repository"
	"techmarket/internal/service"
	"techmarket/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config      *config.Config
	logger      *zap.Logger
	db          database.Service
	redisClient *redis.Client
}

// NewServer wires repositories, services and handlers onto one router.
// redisClient may be nil, in which case login is not rate limited.
func NewServer(cfg *config.Config, logger *zap.Logger, db database.Service, redisClient *redis.Client) *Server {
	router := chi.NewRouter()

	for _, mw := range custommiddleware.DefaultMiddlewareStack(logger) {
		router.Use(mw)
	}
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, !cfg.Server.IsProduction()))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := db.Health(r.Context())
		status := http.StatusOK
		if health["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		custommiddleware.RespondWithJSON(w, status, health)
	})

	// Initialize repositories
	productRepo := repository.NewProductRepository(db.DB(), cfg.Database.QueryTimeout)
	adminRepo := repository.NewAdminRepository(db.DB(), cfg.Database.QueryTimeout)

	// Initialize services
	productService := service.NewProductService(productRepo, cfg.Store.DefaultCategory, logger)
	accessService := service.NewAccessService(adminRepo, service.AccessConfig{
		JWTSecret:          cfg.JWT.Secret,
		TokenTTL:           time.Duration(cfg.JWT.AccessExpiry) * time.Minute,
		PlaintextPasswords: cfg.Auth.PlaintextPasswords,
	}, logger)

	var loginLimiter func(http.Handler) http.Handler
	if redisClient != nil && cfg.RateLimit.Enabled {
		loginLimiter = custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "techmarket:login",
		}, logger)
	}

	// Register routes
	transport.NewAccessHandler(accessService, logger).RegisterRoutes(router, loginLimiter)
	transport.NewProductHandler(productService, cfg.Store.CardLineWidth, logger).RegisterRoutes(router,
		custommiddleware.AdminAuth(cfg.JWT.Secret, logger),
		custommiddleware.RequireRole([]string{service.RoleAdmin}, logger),
	)

	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:      cfg,
		logger:      logger,
		db:          db,
		redisClient: redisClient,
	}
}

// Close releases the database pool and the Redis client.
func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
