// Command api runs the Tastebase HTTP API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tastebase/tastebase/internal/cache"
	"github.com/tastebase/tastebase/internal/config"
	"github.com/tastebase/tastebase/internal/gateway"
	"github.com/tastebase/tastebase/internal/handler"
	"github.com/tastebase/tastebase/internal/media"
	"github.com/tastebase/tastebase/internal/metrics"
	"github.com/tastebase/tastebase/internal/middleware"
	"github.com/tastebase/tastebase/internal/repository"
	"github.com/tastebase/tastebase/internal/server"
	"github.com/tastebase/tastebase/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := initLogger(cfg)
	slog.SetDefault(logger)

	logger.Info("starting tastebase api",
		slog.String("env", cfg.AppEnv),
		slog.Int("port", cfg.AppPort),
		slog.String("database", redactURL(cfg.DatabaseURL)),
		slog.String("redis", redactURL(cfg.RedisURL)),
	)

	ctx := context.Background()

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", sanitizeError(err, cfg.DatabaseURL))
	}

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		repo.Close()
		return fmt.Errorf("failed to connect to redis: %w", sanitizeError(err, cfg.RedisURL))
	}

	gw := gateway.New(gateway.Config{
		BaseURL:        cfg.AuthURL,
		AnonKey:        cfg.AuthAnonKey,
		ServiceRoleKey: cfg.AuthServiceRoleKey,
		Timeout:        cfg.AuthTimeout,
	})

	uploader, err := media.New(media.Config{
		Endpoint:      cfg.MediaEndpoint,
		AccessKey:     cfg.MediaAccessKey,
		SecretKey:     cfg.MediaSecretKey,
		Bucket:        cfg.MediaBucket,
		UseSSL:        cfg.MediaUseSSL,
		PublicBaseURL: cfg.MediaPublicBaseURL,
	})
	if err != nil {
		cacheClient.Close()
		repo.Close()
		return fmt.Errorf("failed to create media uploader: %w", err)
	}

	recorder := metrics.NewInMemory()

	userService := service.NewUserService(repo, gw, uploader, logger)
	recipeService := service.NewRecipeService(repo, cacheClient, uploader, recorder, logger)
	adminService := service.NewAdminService(repo, gw, logger)

	router := setupRouter(cfg, logger, routerDeps{
		repo:    repo,
		cache:   cacheClient,
		gateway: gw,
		users:   userService,
		recipes: recipeService,
		admin:   adminService,
		metrics: recorder,
	})

	srv := server.New(server.Config{
		Addr:            fmt.Sprintf(":%d", cfg.AppPort),
		Handler:         router,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Logger:          logger,
	})

	srv.OnShutdown(func(ctx context.Context) error {
		repo.Close()
		logger.Info("database pool closed")
		return nil
	})
	srv.OnShutdown(func(ctx context.Context) error {
		if err := cacheClient.Close(); err != nil {
			return fmt.Errorf("failed to close redis client: %w", err)
		}
		logger.Info("redis client closed")
		return nil
	})

	return srv.Run()
}

// routerDeps bundles everything setupRouter needs.
type routerDeps struct {
	repo    *repository.Repository
	cache   *cache.Cache
	gateway *gateway.Client
	users   *service.UserService
	recipes *service.RecipeService
	admin   *service.AdminService
	metrics metrics.Snapshotter
}

func setupRouter(cfg *config.Config, logger *slog.Logger, deps routerDeps) http.Handler {
	authHandler := handler.NewAuthHandler(deps.users, logger)
	recipeHandler := handler.NewRecipeHandler(deps.recipes, logger, cfg.MaxUploadSize)
	userHandler := handler.NewUserHandler(deps.users, logger, cfg.MaxUploadSize)
	adminHandler := handler.NewAdminHandler(deps.admin, logger)
	healthHandler := handler.NewHealthHandler(deps.repo, deps.cache, logger)
	metricsHandler := handler.NewMetricsHandler(deps.metrics)

	requireAuth := middleware.Auth(middleware.AuthConfig{
		Logger:   logger,
		Verifier: deps.gateway,
	})
	requireAdmin := middleware.RequireAdmin(middleware.AdminConfig{
		Logger: logger,
		Users:  deps.repo,
	})
	limitCredentials := middleware.RateLimitAuth(middleware.RateLimitConfig{
		Logger:  logger,
		Cache:   deps.cache,
		Enabled: cfg.RateLimitAuthEnabled,
		RPS:     cfg.RateLimitAuthRPS,
		Burst:   cfg.RateLimitAuthBurst,
	})

	corsConfig := middleware.DefaultCORSConfig()
	if origins := cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsConfig.AllowedOrigins = origins
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.CORS(corsConfig))

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	// Operator-facing counters, reachable by admins only.
	r.With(requireAuth, requireAdmin).Get("/metrics", metricsHandler.Metrics)

	r.Route("/api", func(r chi.Router) {
		// Public credential endpoints, rate limited per client IP.
		r.Group(func(r chi.Router) {
			r.Use(limitCredentials)
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/forgot_password", authHandler.ForgotPassword)
		})

		// Public reads.
		r.Get("/get_recipe/{id}", recipeHandler.Get)
		r.Get("/get_all_recipe", recipeHandler.GetAll)

		// Token introspection. Auth failures here carry an explicit
		// valid:false flag that clients branch on.
		r.With(middleware.ValidityEnvelope, requireAuth).
			Get("/validate_token", authHandler.ValidateToken)

		// Authenticated endpoints. Every request re-verifies its token
		// against the gateway.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Post("/create_recipe", recipeHandler.Create)
			r.Get("/get_my_recipe", recipeHandler.GetMine)
			r.Post("/save_recipe", recipeHandler.Save)
			r.Get("/get_save_recipe", recipeHandler.GetSaved)
			r.Put("/update_recipe", recipeHandler.Update)
			r.Post("/delete_recipe", recipeHandler.Delete)
			r.Post("/create_comment", recipeHandler.CreateComment)
			r.Post("/report_recipe", recipeHandler.Report)

			r.Get("/profile", userHandler.Profile)
			r.Put("/update_profile", userHandler.UpdateProfile)
			r.Post("/upload_profile_pic", userHandler.UploadProfilePic)
			r.Post("/change_password", userHandler.ChangePassword)
			r.Post("/reset_password", userHandler.ResetPassword)
			r.Post("/contact", userHandler.Contact)

			// Moderation, gated on the caller's admin flag.
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)

				r.Get("/get_all_users", adminHandler.GetAllUsers)
				r.Get("/get_user/{id}", adminHandler.GetUser)
				r.Delete("/remove_user/{id}", adminHandler.RemoveUser)
				r.Post("/search_user", adminHandler.SearchUser)
				r.Get("/get_contact_messages", adminHandler.GetContactMessages)
				r.Delete("/remove_contact/{id}", adminHandler.RemoveContact)
				r.Get("/get_report_messages", adminHandler.GetReportMessages)
				r.Delete("/remove_report/{id}", adminHandler.RemoveReport)
			})
		})
	})

	return r
}

// initLogger creates the application logger from config.
func initLogger(cfg *config.Config) *slog.Logger {
	level := parseLogLevel(cfg.LogLevel)

	var h slog.Handler
	if cfg.LogFormat == "text" {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	return slog.New(h)
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// redactURL masks the password in a connection URL for logging.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparseable>"
	}
	if u.User != nil {
		if _, has := u.User.Password(); has {
			u.User = url.UserPassword(u.User.Username(), "xxxxx")
		}
	}
	return u.String()
}

// sanitizeError replaces any occurrence of a secret-bearing URL inside
// an error message with its redacted form.
func sanitizeError(err error, rawURL string) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, rawURL) {
		msg = strings.ReplaceAll(msg, rawURL, redactURL(rawURL))
		return fmt.Errorf("%s", msg)
	}
	return err
}
