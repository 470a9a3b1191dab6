// Package server defines the Server struct that composes the gateway's
// shared dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool
//   - redis client and background job worker (both optional)
//   - PropMix and Google Sheets clients
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/homeauctiondeals/gateway/internal/config"
	"github.com/homeauctiondeals/gateway/internal/database"
	"github.com/homeauctiondeals/gateway/internal/lib/email"
	"github.com/homeauctiondeals/gateway/internal/lib/job"
	"github.com/homeauctiondeals/gateway/internal/lib/propmix"
	"github.com/homeauctiondeals/gateway/internal/lib/sheets"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/homeauctiondeals/gateway/internal/logger"
)

// RedisPingTimeout bounds the startup Redis check.
const RedisPingTimeout = 5 * time.Second

// Server is the application container. It is not the HTTP server itself.
//
// Redis and Job are nil when REDIS_ADDRESS is empty; Job is also nil when
// notification emails are not configured.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	DB    *database.Database
	Redis *redis.Client
	Job   *job.JobService

	PropMix *propmix.Client
	Sheets  *sheets.Client

	httpServer *http.Server
}

// New constructs a Server and initializes every client. Nothing listens
// until SetupHTTPServer and Start are called.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	sheetsClient, err := sheets.NewClient(ctx, cfg.Sheets)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	s := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		PropMix:       propmix.NewClient(cfg.PropMix),
		Sheets:        sheetsClient,
	}

	if cfg.Redis.Enabled() {
		s.Redis = newRedisClient(cfg, logger, loggerService)

		if cfg.Integration.NotificationsEnabled() {
			if err := s.startJobs(); err != nil {
				_ = s.close()
				return nil, err
			}
		} else {
			logger.Info().Msg("enquiry notifications disabled, RESEND_API_KEY or ENQUIRY_NOTIFY_TO not set")
		}
	} else {
		logger.Warn().Msg("REDIS_ADDRESS not set, running without Redis: background jobs off, rate limits are per instance")
	}

	return s, nil
}

func newRedisClient(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) *redis.Client {
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService != nil && loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), RedisPingTimeout)
	defer cancel()

	// Redis only backs optional features, so an outage is logged, not fatal.
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("failed to connect to Redis, continuing without it")
	}

	return redisClient
}

func (s *Server) startJobs() error {
	mailer, err := email.NewClient(s.Config, s.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize email client: %w", err)
	}

	jobService := job.NewJobService(s.Logger, s.Config, mailer)
	if err := jobService.Start(); err != nil {
		return fmt.Errorf("failed to start job server: %w", err)
	}

	s.Job = jobService
	return nil
}

// SetupHTTPServer configures the internal net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops and returns
// nil after a graceful Shutdown.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones until ctx is
// done and then closes every client.
func (s *Server) Shutdown(ctx context.Context) error {
	var errList []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errList = append(errList, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if err := s.close(); err != nil {
		errList = append(errList, err)
	}

	return errors.Join(errList...)
}

// close releases clients in reverse order of creation.
func (s *Server) close() error {
	var errList []error

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errList = append(errList, fmt.Errorf("failed to close redis client: %w", err))
		}
	}

	if s.PropMix != nil {
		s.PropMix.Close()
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			errList = append(errList, fmt.Errorf("failed to close database connection: %w", err))
		}
	}

	return errors.Join(errList...)
}
