// Package main initializes and starts the admissions HTTP server,
// setting up configuration, logging, database connections, repositories,
// services, handlers and graceful shutdown.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/AdmissionDesk/internal/config"
	"github.com/atinyakov/AdmissionDesk/internal/db"
	"github.com/atinyakov/AdmissionDesk/internal/logger"
	"github.com/atinyakov/AdmissionDesk/internal/repository"
	"github.com/atinyakov/AdmissionDesk/internal/server/handler/http"
	"github.com/atinyakov/AdmissionDesk/internal/service"
	"github.com/atinyakov/AdmissionDesk/internal/session"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Parse command-line, config file and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	if options.GeneratedSessionKey {
		zapLogger.Warn("no session key configured, generated a random one; logins will not survive a restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer func() { _ = postgresDB.Close() }()

	db.StartSessionCleaner(ctx, postgresDB, time.Hour, zapLogger)

	// Repositories.
	inquiryRepo := repository.NewPostgresInquiryRepository(postgresDB)
	credentialRepo := repository.NewPostgresCredentialRepository(postgresDB)
	sessionRepo := repository.NewPostgresSessionRepository(postgresDB)

	// Business-logic services.
	authService := service.NewAuthService(credentialRepo)
	inquiryService := service.NewInquiryService(inquiryRepo)
	sessionService := service.NewSessionService(sessionRepo, options.SessionTTL)

	if options.AdminUsername != "" {
		created, err := authService.EnsureAdmin(ctx, options.AdminUsername, options.AdminPassword)
		if err != nil {
			zapLogger.Fatal("failed to provision admin", zap.Error(err))
		}
		if created {
			zapLogger.Info("provisioned admin account", zap.String("username", options.AdminUsername))
		}
	}

	// HTTP handlers.
	authHandler := &http.AuthHandler{
		AuthService: authService,
		Sessions:    sessionService,
		Cookies:     session.NewCookies(options.SessionKey, options.SessionTTL, options.SecureCookies),
		Logger:      zapLogger,
	}
	inquiryHandler := &http.InquiryHandler{Inquiries: inquiryService, Logger: zapLogger}
	pageHandler := http.NewPageHandler(options.WebRoot)

	router := http.NewRouter(authHandler, inquiryHandler, pageHandler, zapLogger)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Error("server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		zapLogger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}
