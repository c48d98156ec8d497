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
	_ "time/tzdata"

	"bellezza-backend/cache"
	"bellezza-backend/config"
	"bellezza-backend/controllers"
	"bellezza-backend/middleware"
	"bellezza-backend/models"
	"bellezza-backend/realtime"
	"bellezza-backend/repository"
	"bellezza-backend/routes"
	"bellezza-backend/services"
	"bellezza-backend/storage"
	"bellezza-backend/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		utils.Log.WithError(err).Fatal("server stopped")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	utils.InitLogger(cfg.Env, cfg.LogLevel)
	log := utils.Log
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		return err
	}
	if err := models.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	store, err := newCacheStore(ctx, cfg)
	if err != nil {
		return err
	}

	photos, err := storage.NewPhotoStorage(cfg.MediaRoot, cfg.MaxUploadMB)
	if err != nil {
		return err
	}

	hub := realtime.NewHub(log)
	utils.SafeGo(log, func() { hub.Run(ctx) })

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)

	catalogRepo := repository.NewCatalogRepository(db)
	clientRepo := repository.NewClientRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	userRepo := repository.NewUserRepository(db)
	reminderLogRepo := repository.NewReminderLogRepository(db)

	catalogService := services.NewCatalogService(catalogRepo, cache.NewCatalog(store, cfg.CatalogCacheTTL, log), log)
	appointmentService := services.NewAppointmentService(appointmentRepo, catalogService, clientRepo, hub, cfg.Location, log)
	reviewService := services.NewReviewService(reviewRepo, appointmentRepo, clientRepo, log)
	clientService := services.NewClientService(clientRepo, log)
	authService := services.NewAuthService(userRepo, tokens, log)
	reminderService := services.NewReminderService(appointmentRepo, reminderLogRepo, notifiers(cfg), services.ReminderSchedule{
		Reminders:     cfg.ReminderSchedule,
		Purge:         cfg.PurgeSchedule,
		RetentionDays: cfg.RetentionDays,
	}, cfg.Location, log)

	if err := reminderService.Start(ctx); err != nil {
		return fmt.Errorf("reminder scheduler: %w", err)
	}
	defer reminderService.Stop()

	controllers.DefaultPageSize = cfg.DefaultPageSize
	catalogController := controllers.NewCatalogController(catalogService, appointmentService)
	router := routes.SetupRouter(routes.Handlers{
		Auth:         controllers.NewAuthController(authService),
		Catalog:      catalogController,
		Clients:      controllers.NewClientController(clientService),
		Appointments: controllers.NewAppointmentController(appointmentService),
		Reviews:      controllers.NewReviewController(reviewService),
		Media:        controllers.NewMediaController(catalogService, photos, log),
		Reminders:    controllers.NewReminderController(reminderService),
		Stream:       controllers.NewStreamController(hub, cfg.AllowedOrigins, log),
	}, routes.Options{
		Tokens:         tokens,
		ResponseCache:  middleware.NewResponseCache(store, cfg.ResponseCacheTTL, middleware.PrincipalURIKey, log),
		AllowedOrigins: cfg.AllowedOrigins,
		AuthRateLimit:  cfg.AuthRateLimit,
		AuthRatePeriod: cfg.AuthRatePeriod,
		MediaRoot:      cfg.MediaRoot,
		Log:            log,
	})
	if !cfg.IsProduction() {
		printRoutes(router)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newCacheStore(ctx context.Context, cfg *config.Config) (cache.Store, error) {
	switch cfg.CacheBackend {
	case "redis":
		store, err := cache.NewRedisStore(ctx, cfg.RedisURL, "bellezza")
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return store, nil
	case "none":
		return cache.NoopStore{}, nil
	default:
		return cache.NewMemoryStore(time.Minute), nil
	}
}

// notifiers returns the reminder channels that are configured.
func notifiers(cfg *config.Config) []services.Notifier {
	var out []services.Notifier
	if cfg.EmailEnabled() {
		out = append(out, services.NewEmailNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.FromEmail))
	}
	if cfg.SMSEnabled() {
		out = append(out, services.NewSMSNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber))
	}
	if len(out) == 0 {
		utils.Log.Warn("no reminder channel configured, reminders will only be logged")
	}
	return out
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Fprintf(os.Stdout, "%-6s %s\n", route.Method, route.Path)
	}
}
