package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/veritaslogistics/veritas-api/internal/http/handlers"
	authmw "github.com/veritaslogistics/veritas-api/internal/http/middleware"
	"github.com/veritaslogistics/veritas-api/internal/platform/mailer"
	"github.com/veritaslogistics/veritas-api/internal/store"
	"github.com/veritaslogistics/veritas-api/pkg/config"
	"github.com/veritaslogistics/veritas-api/pkg/events"
	"github.com/veritaslogistics/veritas-api/pkg/logger"
	mw "github.com/veritaslogistics/veritas-api/pkg/middleware"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	storage, err := buildStorage(ctx, cfg)
	if err != nil {
		logger.Error("failed to open record store", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
	userStore := store.New(storage)

	bus := buildEventBus(cfg)
	defer bus.Close()

	mail := buildMailer(cfg)

	authHandler := handlers.NewAuthHandler(userStore, bus, mail, cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	bookingsHandler := handlers.NewBookingsHandler(userStore, bus)
	quotesHandler := handlers.NewQuotesHandler(userStore, bus)
	notificationsHandler := handlers.NewNotificationsHandler(userStore)
	dashboardHandler := handlers.NewDashboardHandler(userStore)
	profileHandler := handlers.NewProfileHandler(userStore)
	trackingHandler := handlers.NewTrackingHandler(userStore)
	contactHandler := handlers.NewContactHandler(mail, cfg.Email.ContactInbox)

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("api"))
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(authmw.SessionGuard(userStore, cfg.Auth.JWTSecret, cfg.Auth.PublicPaths))

	r.Mount("/v1/auth", authHandler.Routes())
	r.Mount("/v1/bookings", bookingsHandler.Routes())
	r.Mount("/v1/quotes", quotesHandler.Routes())
	r.Mount("/v1/notifications", notificationsHandler.Routes())
	r.Mount("/v1/dashboard", dashboardHandler.Routes())
	r.Mount("/v1/profile", profileHandler.Routes())
	r.Mount("/v1/tracking", trackingHandler.Routes())
	r.Mount("/v1/contact", contactHandler.Routes())

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	logger.Info("starting api", "port", cfg.Server.Port, "storage", cfg.Storage.Backend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func buildStorage(ctx context.Context, cfg *config.Config) (store.Storage, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return store.NewMemoryStorage(), nil
	case "file":
		return store.NewFileStorage(cfg.Storage.FileDir)
	case "redis":
		return store.NewRedisStorage(cfg.Storage.RedisURL)
	case "postgres":
		return store.NewPostgresStorage(ctx, cfg.Storage.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func buildEventBus(cfg *config.Config) events.Publisher {
	if cfg.NATS.URL == "" {
		return events.Noop{}
	}
	bus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Warn("NATS unavailable, events disabled", "error", err)
		return events.Noop{}
	}
	return bus
}

func buildMailer(cfg *config.Config) mailer.Service {
	if cfg.Email.DevMode {
		return mailer.NewDevMailer()
	}
	if cfg.Email.MailerSendKey != "" {
		m, err := mailer.NewMailerSendMailer(cfg.Email.MailerSendKey, "Veritas Logistics", cfg.Email.SMTPFrom)
		if err == nil {
			return m
		}
		logger.Warn("mailersend misconfigured, falling back to SMTP", "error", err)
	}
	return mailer.NewSMTPMailer(cfg.Email.SMTPHost, cfg.Email.SMTPPort,
		cfg.Email.SMTPFrom, cfg.Email.SMTPUser, cfg.Email.SMTPPass, cfg.Email.SMTPUseTLS)
}
