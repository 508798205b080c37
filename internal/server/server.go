// Package server defines the Server struct that composes the app's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool
//
// Commands build one Server, hand it to the repository layer, and shut it
// down when they finish.
package server

import (
	"context"
	"fmt"

	"github.com/deppfellow/jobly/internal/config"
	"github.com/deppfellow/jobly/internal/database"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/jobly/internal/logger"
)

// Server is the application container that holds shared resources.
type Server struct {
	// Config holds all environment/config values for the app.
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application instance.
	// If New Relic is disabled, this may exist but contain nil nrApp.
	LoggerService *loggerPkg.LoggerService

	// DB holds the PostgreSQL pool wrapper.
	DB *database.Database
}

// New constructs a Server and initializes its dependencies.
//
// Steps:
//  1. Create the database pool (with tracing wired from config and the
//     optional New Relic service).
//  2. Assemble the Server struct around the shared config and logger.
//
// The pool is pinged before New returns, so a Server always has a live
// database behind it. Repositories are built on top of it by the caller
// (see repository.NewRepositories).
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
	}, nil
}

// Shutdown gracefully releases the Server's resources.
//
// Order:
//  1. Close the database pool, waiting for in-flight queries.
//  2. Flush and stop the New Relic agent, so the last queries' traces
//     are still shipped.
//
// ctx bounds the whole shutdown; when it expires Shutdown returns without
// waiting for the remaining steps.
func (s *Server) Shutdown(ctx context.Context) error {
	done := make(chan error, 1)

	go func() {
		if err := s.DB.Close(); err != nil {
			done <- fmt.Errorf("failed to close database connection: %w", err)
			return
		}
		s.LoggerService.Shutdown()
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown interrupted: %w", ctx.Err())
	}
}
