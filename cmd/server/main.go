package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/event-tickets/internal/auth"
	"github.com/gdg-garage/event-tickets/internal/clock"
	"github.com/gdg-garage/event-tickets/internal/config"
	"github.com/gdg-garage/event-tickets/internal/database"
	"github.com/gdg-garage/event-tickets/internal/handlers"
	"github.com/gdg-garage/event-tickets/internal/i18n"
	"github.com/gdg-garage/event-tickets/internal/notifier"
	"github.com/gdg-garage/event-tickets/internal/tickets"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.AppEnv != "production" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	i18n.SetLocale(cfg.Locale)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	var discordNotifier notifier.Notifier
	if cfg.DiscordBotToken != "" {
		session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			log.Warn("discord notifier not initialized", zap.Error(err))
		} else {
			discordNotifier = notifier.NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID, log.Named("notifier"))
		}
	}

	svc := tickets.NewService(db, log.Named("tickets"), clock.NewSystem(), cfg.Attendee.DefaultFields)
	authHandler := auth.NewAuthHandler(cfg, db, log.Named("auth"))

	r := chi.NewRouter()
	handlers.RegisterRoutes(r, cfg, log, handlers.Handlers{
		Auth:       authHandler,
		Events:     handlers.NewEventHandler(svc, authHandler, log),
		Attendees:  handlers.NewAttendeeHandler(svc, authHandler, discordNotifier, log, cfg.BaseURL),
		Fields:     handlers.NewFieldHandler(svc, authHandler, log),
		SiteConfig: handlers.NewSiteConfigHandler(svc, authHandler, log),
		APIKeys:    handlers.NewAPIKeyHandler(db, authHandler, log),
		Public:     handlers.NewPublicHandler(svc, log),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
