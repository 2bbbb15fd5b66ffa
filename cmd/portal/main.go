// Command portal is the entry point for the CivicFlow portal server.
//
// Startup order: logger, configuration, Redis, MongoDB (optional), backend
// client, audit dispatcher, router, then the HTTP listener with graceful
// shutdown. No business logic lives here.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/civicflow/civic-portal/internal/api"
	"github.com/civicflow/civic-portal/internal/core/ports"
	"github.com/civicflow/civic-portal/internal/infrastructure/backend"
	mongodb "github.com/civicflow/civic-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/civicflow/civic-portal/internal/infrastructure/db/redis"
	"github.com/civicflow/civic-portal/internal/infrastructure/queue"
	"github.com/civicflow/civic-portal/internal/pkg/config"
	"github.com/civicflow/civic-portal/pkg/logger"
)

// @title        CivicFlow Portal API
// @version      1.0
// @description  Session-aware portal for reporting and tracking civic issues.
// @host         localhost:8080
// @BasePath     /
func main() {
	cfg := config.Load()

	log := logger.Setup(logger.Options{
		Level: cfg.LogLevel,
		Env:   cfg.Env,
	})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("portal starting")

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Redis backs the profile cache. Hard dependency: without it every
	// page load would hit the backend for identity resolution.
	rdb, err := redisdb.Connect(startupCtx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if cerr := rdb.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("redis close error")
		}
	}()

	// Mongo stores the session audit trail. Soft dependency: when it is
	// down the portal still serves traffic, just without auditing.
	var audit ports.AuditRecorder = ports.NoopAudit{}
	var auditDB *mongo.Database
	if cfg.Audit.Enabled {
		mongoClient, db, merr := mongodb.Connect(startupCtx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if merr != nil {
			log.Warn().Err(merr).Msg("mongo unavailable, session auditing disabled")
		} else {
			defer func() {
				disconnectCtx, dcancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer dcancel()
				if cerr := mongoClient.Disconnect(disconnectCtx); cerr != nil {
					log.Error().Err(cerr).Msg("mongo disconnect error")
				}
			}()

			dispatcher := queue.NewDispatcher(
				cfg.Audit.Workers,
				mongodb.NewAuditRepository(db),
				logger.For("audit"),
			)
			dispatcher.Start(context.Background())
			audit = dispatcher
			auditDB = db
		}
	}

	// The backend client resolves identities and serves all civic data.
	// The 401 interceptor only logs here: each request carries its own
	// session, and the session store evicts its token when a profile
	// fetch is rejected.
	client := backend.New(cfg.Backend.URL,
		backend.WithLogger(logger.For("backend")),
		backend.WithHTTPClient(&http.Client{Timeout: cfg.Backend.Timeout}),
		backend.OnUnauthorized(func() {
			log.Debug().Msg("backend rejected a bearer token")
		}),
	)

	cache := redisdb.NewProfileCache(rdb, cfg.Session.ProfileTTL)
	auth := redisdb.NewCachedAuthAPI(client, cache, logger.For("cache"))

	e := api.NewRouter(api.Dependencies{
		Auth:         auth,
		Issues:       client,
		Users:        client,
		Admin:        client,
		Ngo:          client,
		Audit:        audit,
		CookieName:   cfg.Session.CookieName,
		SecureCookie: cfg.Session.SecureCookie,
		Redis:        rdb,
		Mongo:        auditDB,
		Logger:       log,
	})

	go func() {
		if serr := e.Start(":" + cfg.Port); serr != nil && serr != http.ErrServerClosed {
			log.Fatal().Err(serr).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutdown signal received")

	shutdownCtx, scancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer scancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
		os.Exit(1)
	}
	log.Info().Msg("portal stopped cleanly")
}
