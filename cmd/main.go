// cmd/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"go_5_hanzi_drill/internal/config"
	"go_5_hanzi_drill/internal/handlers"
	"go_5_hanzi_drill/internal/middleware"
	"go_5_hanzi_drill/internal/model"
	"go_5_hanzi_drill/internal/repository"
	"go_5_hanzi_drill/internal/scheduler"
	"go_5_hanzi_drill/internal/service"
)

func main() {
	// 設定読み込み前の一時ロガー
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	slog.Info("Application starting...", slog.String("app", config.AppName), slog.String("version", config.AppVersion))

	db, err := repository.NewDB(cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	if err := db.AutoMigrate(
		&model.Word{},
		&model.Translation{},
		&model.Category{},
		&model.LearningProgress{},
		&model.PinyinSynonym{},
	); err != nil {
		slog.Error("Error migrating database schema", slog.Any("error", err))
		os.Exit(1)
	}

	// Dependency Injection
	wordRepo := repository.NewGormWordRepository()
	progressRepo := repository.NewGormProgressRepository()
	synonymRepo := repository.NewGormSynonymRepository()
	categoryRepo := repository.NewGormCategoryRepository()
	trIndex := repository.NewTranslationIndex(db)

	wordService := service.NewWordService(db, wordRepo, progressRepo, categoryRepo, trIndex)
	practiceService := service.NewPracticeService(db, wordRepo, progressRepo, synonymRepo, trIndex, cfg)
	authService := service.NewAuthService(cfg)
	mailer := service.NewMailer(cfg)
	reminderService := service.NewReminderService(db, progressRepo, mailer, cfg)

	wordHandler := handlers.NewWordHandler(wordService, logger)
	practiceHandler := handlers.NewPracticeHandler(practiceService, logger)
	categoryHandler := handlers.NewCategoryHandler(wordService, logger)
	authHandler := handlers.NewAuthHandler(authService, logger)

	// 定期ジョブ
	jobScheduler := scheduler.New(reminderService, cfg, logger)
	jobScheduler.Start()
	defer jobScheduler.Stop()

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.Post("/auth/login", authHandler.Login)

		// --- Protected routes (auth.enabled が true のときだけ検証される) ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuthMiddleware(cfg))

			r.Route("/words", func(r chi.Router) {
				r.Post("/", wordHandler.PostWord)
				r.Get("/", wordHandler.GetWords)
				r.Post("/import", wordHandler.ImportWords)
				r.Get("/hanzi/{hanzi}", wordHandler.GetWordByHanzi)
				r.Get("/{word_id}", wordHandler.GetWord)
				r.Patch("/{word_id}", wordHandler.PatchWord)
				r.Delete("/{word_id}", wordHandler.DeleteWord)
				r.Delete("/{word_id}/progress", wordHandler.DeleteProgress)
			})

			r.Route("/practice", func(r chi.Router) {
				r.Post("/sessions", practiceHandler.PostSession)
				r.Post("/answers", practiceHandler.PostAnswer)
				r.Post("/completions", practiceHandler.PostCompletion)
				r.Post("/synonyms", practiceHandler.PostSynonym)
			})

			r.Get("/categories", categoryHandler.GetCategories)
		})
	})

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := sqlDB.PingContext(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	slog.Info("Server exiting")
}

// newLogger は設定に応じたハンドラで slog ロガーを組み立てます。
// 開発環境 (APP_ENV=dev) では tint のカラー出力、それ以外はJSONです。
func newLogger(cfg *config.Config) *slog.Logger {
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", cfg.Log.Level))
	}

	var handler slog.Handler
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" || cfg.Log.Format == "text" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}
	return slog.New(handler)
}
