package config

import (
	"ShopAssistant/database/postgres"
	authHandler "ShopAssistant/internal/api/auth/handler"
	authRepository "ShopAssistant/internal/api/auth/repository"
	authService "ShopAssistant/internal/api/auth/service"
	chatbotHandler "ShopAssistant/internal/api/chatbot/handler"
	chatbotRepository "ShopAssistant/internal/api/chatbot/repository"
	chatbotService "ShopAssistant/internal/api/chatbot/service"
	productHandler "ShopAssistant/internal/api/product/handler"
	productRepository "ShopAssistant/internal/api/product/repository"
	productService "ShopAssistant/internal/api/product/service"
	"ShopAssistant/internal/middleware"
	"ShopAssistant/pkg/assistant"
	"ShopAssistant/pkg/bcrypt"
	"ShopAssistant/pkg/metrics"
	"ShopAssistant/pkg/redis"
	"ShopAssistant/pkg/s3"
	"ShopAssistant/pkg/utils"
	"context"
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"os"
	"time"
)

const (
	defaultTokenTTL         = 24 * time.Hour
	defaultCategoryCacheTTL = 10 * time.Minute
)

type ServerOption func(*Server) error

type Server struct {
	engine           *fiber.App
	db               *sqlx.DB
	log              *logrus.Logger
	middleware       middleware.Middleware
	validator        *validator.Validate
	utils            utils.IUtils
	bcryptUtils      bcrypt.IBcrypt
	handlers         []handler
	redisServer      redis.IRedis
	s3Client         s3.ItfS3
	metrics          *metrics.Metrics
	tokenTTL         time.Duration
	categoryCacheTTL time.Duration
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{
		tokenTTL:         defaultTokenTTL,
		categoryCacheTTL: defaultCategoryCacheTTL,
	}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if server.redisServer == nil {
		return nil, fmt.Errorf("redis is required")
	}
	if server.middleware == nil {
		return nil, fmt.Errorf("middleware is required")
	}
	if server.validator == nil {
		server.validator = NewValidator()
	}
	if server.utils == nil {
		server.utils = utils.New()
	}
	if server.bcryptUtils == nil {
		server.bcryptUtils = bcrypt.New()
	}
	if server.metrics == nil {
		server.metrics = metrics.New(prometheus.NewRegistry())
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

// WithDatabase connects using the environment and, when DB_AUTO_MIGRATE is
// "true", creates the schema.
func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}

		if os.Getenv("DB_AUTO_MIGRATE") == "true" {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := postgres.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return err
			}
		}

		s.db = db
		return nil
	}
}

// WithDB uses an already opened pool.
func WithDB(db *sqlx.DB) ServerOption {
	return func(s *Server) error {
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

// WithMiddleware must come after WithLogger and WithRedisServer. The chat
// rate limit is read from CHAT_RATE_LIMIT and CHAT_RATE_BURST.
func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}

		var opts []middleware.Option
		if reqRate, burst := envFloat("CHAT_RATE_LIMIT"), envInt("CHAT_RATE_BURST"); reqRate > 0 && burst > 0 {
			opts = append(opts, middleware.WithRateLimit(reqRate, burst))
		}

		s.middleware = middleware.New(s.log, s.redisServer, opts...)
		return nil
	}
}

// WithS3Client enables presigned product images. Missing AWS settings only
// disable presigning.
func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if errors.Is(err, s3.ErrNotConfigured) {
			if s.log != nil {
				s.log.Warn("S3 is not configured, product image URLs are served as stored")
			}
			return nil
		}
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

// WithMetrics registers the application and Go runtime collectors on reg.
func WithMetrics(reg *prometheus.Registry) ServerOption {
	return func(s *Server) error {
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		s.metrics = metrics.New(reg)
		return nil
	}
}

func WithTokenTTL(ttl time.Duration) ServerOption {
	return func(s *Server) error {
		if ttl <= 0 {
			return fmt.Errorf("token lifetime must be positive")
		}
		s.tokenTTL = ttl
		return nil
	}
}

func WithCategoryCacheTTL(ttl time.Duration) ServerOption {
	return func(s *Server) error {
		s.categoryCacheTTL = ttl
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Auth Domain
	authRepo := authRepository.New(s.db, s.log)
	authServices := authService.New(s.log, authRepo, s.redisServer, s.bcryptUtils, s.utils, s.tokenTTL)
	authHandlers := authHandler.New(s.log, authServices, s.validator, s.middleware)

	// Product Domain
	productRepo := productRepository.New(s.db, s.log)
	productServices := productService.NewProductService(s.log, productRepo, s.s3Client)
	productHandlers := productHandler.New(s.log, s.validator, s.middleware, productServices)

	// Chatbot Domain
	catalog := productService.NewCatalog(s.log, productRepo, s.redisServer, s.categoryCacheTTL)
	chatbotRepo := chatbotRepository.New(s.db, s.log)
	chatbotServices := chatbotService.NewChatbotService(s.log, chatbotRepo, assistant.New(catalog), s.utils, s.metrics)
	chatbotHandlers := chatbotHandler.New(s.log, s.validator, s.middleware, chatbotServices)

	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	s.setupHealthCheck()
	s.engine.Get("/metrics", s.metrics.Handler())

	router := s.engine.Group("/api/v1")
	s.handlers = append(s.handlers, authHandlers, productHandlers, chatbotHandlers)
	for _, h := range s.handlers {
		h.Start(router)
	}
}

func (s *Server) Run() error {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown stops accepting requests, waits up to timeout for in-flight ones
// and closes the database pool.
func (s *Server) Shutdown(timeout time.Duration) error {
	err := s.engine.ShutdownWithTimeout(timeout)
	if closeErr := s.db.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})

	s.engine.Get("/health", func(ctx *fiber.Ctx) error {
		c, cancel := context.WithTimeout(ctx.UserContext(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(c); err != nil {
			s.log.WithFields(logrus.Fields{
				"error": err.Error(),
			}).Error("Database health check failed")
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unhealthy",
				"database": "unreachable",
			})
		}

		return ctx.JSON(fiber.Map{
			"status":   "healthy",
			"database": "ok",
		})
	})
}
