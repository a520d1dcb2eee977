package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Kerhoff/storehouse/internal/api"
	"github.com/Kerhoff/storehouse/internal/config"
	"github.com/Kerhoff/storehouse/internal/metrics"
	"github.com/Kerhoff/storehouse/internal/repository/postgres"
	"github.com/Kerhoff/storehouse/internal/service"
	"github.com/Kerhoff/storehouse/internal/telegram"
	"github.com/Kerhoff/storehouse/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l := logger.New(cfg.LogLevel, cfg.LogFormat)
	l.Info("Starting Storehouse Manager...")

	// Database
	db, err := config.NewDatabase(cfg.DatabaseURL, l)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(cfg.MigrationsPath); err != nil {
		return err
	}

	// Repositories
	repos := service.Repositories{
		Users:                  postgres.NewUserRepository(db.DB),
		Agencies:               postgres.NewAgencyRepository(db.DB),
		Families:               postgres.NewFamilyRepository(db.DB),
		Items:                  postgres.NewItemRepository(db.DB),
		Inventory:              postgres.NewInventoryRepository(db.DB),
		WeeklyRequirements:     postgres.NewWeeklyRequirementRepository(db.DB),
		PackingLists:           postgres.NewPackingListRepository(db.DB),
		PackingListItems:       postgres.NewPackingListItemRepository(db.DB),
		PackingSessions:        postgres.NewPackingSessionRepository(db.DB),
		VolunteerAssignments:   postgres.NewVolunteerAssignmentRepository(db.DB),
		FoodBoxes:              postgres.NewFoodBoxRepository(db.DB),
		Orders:                 postgres.NewOrderRepository(db.DB),
		OrderItems:             postgres.NewOrderItemRepository(db.DB),
		Rotas:                  postgres.NewRotaRepository(db.DB),
		RotaAssignments:        postgres.NewRotaAssignmentRepository(db.DB),
		Communications:         postgres.NewCommunicationRepository(db.DB),
		CommunicationTemplates: postgres.NewCommunicationTemplateRepository(db.DB),
	}

	notifier, err := newNotifier(cfg, l)
	if err != nil {
		return err
	}

	svc := service.New(l, repos, notifier, service.AuthConfig{
		Secret:    cfg.JWTSecret,
		Algorithm: cfg.JWTAlgorithm,
		TokenTTL:  cfg.TokenTTL,
	})

	m := metrics.New()
	apiServer := api.NewServer(svc, l, m, api.Options{
		AllowedOrigin:  cfg.AllowedOrigin,
		EnforceRoles:   cfg.EnforceRoles,
		LoginRateLimit: cfg.LoginRateLimit,
		LoginRateBurst: cfg.LoginRateBurst,
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	metricsServer := &http.Server{
		Addr:              ":" + cfg.PrometheusPort,
		Handler:           m.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 2)
	listen := func(name string, srv *http.Server) {
		l.Infof("%s listening on %s", name, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("%s: %w", name, err)
		}
	}
	go listen("HTTP server", httpServer)
	go listen("Metrics server", metricsServer)

	l.Info("Storehouse Manager started successfully")

	var result *multierror.Error
	select {
	case <-ctx.Done():
		l.Info("Received shutdown signal...")
	case err := <-serveErr:
		result = multierror.Append(result, err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	l.Info("Shutting down HTTP servers...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		result = multierror.Append(result, fmt.Errorf("HTTP server shutdown: %w", err))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		result = multierror.Append(result, fmt.Errorf("metrics server shutdown: %w", err))
	}

	l.Info("Storehouse Manager stopped")
	return result.ErrorOrNil()
}

// newNotifier picks the Telegram notifier when a bot token is configured and
// falls back to logging otherwise.
func newNotifier(cfg *config.Config, l *logrus.Logger) (service.Notifier, error) {
	if cfg.TelegramToken == "" {
		l.Info("TELEGRAM_TOKEN not set, communications will only be logged")
		return service.NewLogNotifier(l), nil
	}

	n, err := telegram.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID, l)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram notifier: %w", err)
	}
	return n, nil
}
