// @title         portfolio-optimiser API
// @version       1.0
// @description   Turns an uploaded résumé PDF into a themed static portfolio site.
// @BasePath      /
// @schemes       http
// @host          localhost:8000
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Accepts "Bearer <JWT>" or a bare "<JWT>".
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	swagger "github.com/gofiber/swagger"

	_ "github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/docs"

	httpapi "github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/api/http"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/api/http/handlers"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/api/http/middleware"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/api/http/presenter"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/annotator"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/auth"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/config"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/extractor"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/health"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/health/checkers"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/llm"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/llm/gemini"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/llm/openrouter"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/logger"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/portfolio"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/repository/memory"
	pgrepo "github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/repository/postgres"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/security/jwt"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/site"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/storage/postgres"
)

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}

func main() {
	// Load configuration from env/.env
	cfg := config.Load()
	logger.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Default themes and output directory
	if err := portfolio.Seed(cfg.TemplatesDir); err != nil {
		fatal("seed templates", err)
	}
	for _, dir := range []string{cfg.OutputDir, cfg.StaticDir, cfg.PagesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatal("create directory "+dir, err)
		}
	}

	// Repositories: PostgreSQL when configured, process memory otherwise
	var (
		jobRepo  site.Repository
		userRepo auth.UserRepository
		checks   = []health.Checker{
			checkers.NewTemplatesChecker(cfg.TemplatesDir),
			checkers.NewOutputChecker(cfg.OutputDir),
		}
	)
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL, "portfolio-optimiser")
		if err != nil {
			fatal("postgres connect", err)
		}
		defer pool.Close()

		pgJobs, err := pgrepo.NewJobRepository(pool)
		if err != nil {
			fatal("init job repo", err)
		}
		pgUsers, err := pgrepo.NewUserRepository(pool)
		if err != nil {
			fatal("init user repo", err)
		}
		jobRepo, userRepo = pgJobs, pgUsers
		checks = append(checks, checkers.NewPostgresChecker(pool))
	} else {
		slog.Warn("DATABASE_URL not set, job history and accounts are kept in memory")
		jobRepo, userRepo = memory.NewJobRepository(), memory.NewUserRepository()
	}

	an, closeModel, err := newAnnotator(ctx, cfg)
	if err != nil {
		fatal("init language model", err)
	}
	defer closeModel()

	renderer := portfolio.NewRenderer(cfg.TemplatesDir, cfg.OutputDir)
	siteUC := site.NewService(extractor.NewPDFExtractor(), an, renderer, jobRepo)

	// Token generator and verifier
	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	verifier := jwt.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer)
	authUC := auth.NewAuthService(userRepo, jwtGen)

	readiness := health.NewService(checks...)
	if err := readiness.Ready(ctx); err != nil {
		slog.Warn("service starting while not ready", "error", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "portfolio-optimiser",
		BodyLimit:    int(cfg.MaxUploadBytes()) + 1<<20,
		ErrorHandler: presenter.ErrorHandler,
	})
	app.Use(middleware.RequestID(), middleware.Logger(), middleware.Recover())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS,HEAD",
		AllowHeaders: "*",
	}))
	app.Static("/static", cfg.StaticDir)

	// Register routes
	httpapi.Register(app, httpapi.Handlers{
		Site:   handlers.NewSiteHandler(siteUC, cfg.MaxUploadBytes(), cfg.PagesDir),
		Jobs:   handlers.NewJobsHandler(siteUC),
		Themes: handlers.NewThemesHandler(renderer),
		Auth:   handlers.NewAuthHandler(authUC),
		Health: handlers.NewHealthHandler(readiness),
	}, verifier.Required(), verifier.Optional())

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	go func() {
		<-ctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			slog.Error("shutdown", "error", err)
		}
	}()

	// Start server
	slog.Info("HTTP server listening", "port", cfg.Port, "provider", cfg.LLMProvider)
	if err := app.Listen(":" + cfg.Port); err != nil {
		fatal("server stopped", err)
	}
}

// newAnnotator picks the tagging and summarization backends from LLM_PROVIDER.
// Without a key for the chosen provider it falls back to the local heuristics.
func newAnnotator(ctx context.Context, cfg config.Config) (annotator.UseCase, func(), error) {
	noop := func() {}
	if cfg.UseLocalModels() {
		if cfg.LLMProvider != "local" {
			slog.Warn("no API key for provider, using local models", "provider", cfg.LLMProvider)
		}
		return annotator.NewService(annotator.NewLocalTagger(), annotator.NewLocalSummarizer()), noop, nil
	}

	var (
		model   llm.ChatModel
		name    string
		closeFn = noop
	)
	switch cfg.LLMProvider {
	case "gemini":
		c, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, err
		}
		model, name = c, c.ModelName()
		closeFn = func() {
			if err := c.Close(); err != nil {
				slog.Warn("close gemini client", "error", err)
			}
		}
	case "openrouter", "":
		c := openrouter.New(
			cfg.OpenRouterAPIKey,
			cfg.OpenRouterBase,
			cfg.OpenRouterModel,
			cfg.OpenRouterAppTitle,
			cfg.OpenRouterReferer,
		)
		model, name = c, c.ModelName()
	default:
		return nil, nil, errors.New("unknown LLM_PROVIDER " + cfg.LLMProvider)
	}
	slog.Info("language model configured", "provider", cfg.LLMProvider, "model", name)
	return annotator.NewService(annotator.NewLLMTagger(model), annotator.NewLLMSummarizer(model)), closeFn, nil
}
