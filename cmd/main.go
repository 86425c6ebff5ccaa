// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"go_flashdeck_keep/internal/config"
	"go_flashdeck_keep/internal/handlers"
	"go_flashdeck_keep/internal/middleware"
	"go_flashdeck_keep/internal/model"
	"go_flashdeck_keep/internal/repository"
	"go_flashdeck_keep/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	// Configを読み込み
	if err := config.LoadConfig("./configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
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
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	// 開発時は tint のカラー出力、それ以外はJSONの構造化ログ
	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	// 2. Initialize Database Connection (GORM)
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
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

	// スキーマのマイグレーション
	if err := db.AutoMigrate(&model.Deck{}, &model.Card{}, &model.ReviewState{}, &model.ReviewLog{}); err != nil {
		slog.Error("Error migrating database schema", slog.Any("error", err))
		os.Exit(1)
	}

	// 3. Dependency Injection
	deckRepo := repository.NewGormDeckRepository()
	cardRepo := repository.NewGormCardRepository()
	reviewRepo := repository.NewGormReviewRepository()

	wordHelperService := service.NewWordHelperService(config.Cfg.WordHelper)
	deckService := service.NewDeckService(db, deckRepo, cardRepo)
	cardService := service.NewCardService(db, deckRepo, cardRepo, wordHelperService)
	reviewService := service.NewReviewService(db, cardRepo, reviewRepo)

	deckHandler := handlers.NewDeckHandler(deckService, logger)
	cardHandler := handlers.NewCardHandler(cardService, logger)
	reviewHandler := handlers.NewReviewHandler(reviewService, logger)
	wordHelperHandler := handlers.NewWordHelperHandler(wordHelperService, logger)

	// 4. Setup Router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewStructuredLogger(logger))

	// CORS 設定と適用 (設定ファイルから読み込んだ値を使用)
	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
		Debug:            false,
	}
	corsHandler := cors.New(corsOptions)
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Deck routes
		r.Route("/decks", func(r chi.Router) {
			r.Post("/", deckHandler.PostDeck)
			r.Get("/", deckHandler.GetDecks)
			r.Get("/{deck_id}", deckHandler.GetDeck)
			r.Put("/{deck_id}", deckHandler.PutDeck)
			r.Delete("/{deck_id}", deckHandler.DeleteDeck)

			// デッキスコープのカード・キュー操作
			r.Post("/{deck_id}/cards", cardHandler.PostCard)
			r.Get("/{deck_id}/cards", reviewHandler.GetFullQueue)
			r.Get("/{deck_id}/review-queue", reviewHandler.GetTodayQueue)
			r.Get("/{deck_id}/review-counts", reviewHandler.GetCounts)
			r.Post("/{deck_id}/import", cardHandler.ImportCSV)
			r.Post("/{deck_id}/import-words", cardHandler.ImportWords)
		})

		// Card routes (グローバルスコープ)
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", reviewHandler.GetFullQueue)
			r.Get("/{card_id}", cardHandler.GetCard)
			r.Put("/{card_id}", cardHandler.PatchCard)
			r.Patch("/{card_id}", cardHandler.PatchCard)
			r.Delete("/{card_id}", cardHandler.DeleteCard)
		})

		// Review routes
		r.Get("/review-queue", reviewHandler.GetTodayQueue)
		r.Get("/review-counts", reviewHandler.GetCounts)
		r.Post("/reviews", reviewHandler.PostReview)

		// Word helper
		r.Post("/word-helper", wordHelperHandler.PostWordHelper)
	})

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		// DB接続チェック
		ctx := r.Context()
		if err := sqlDB.PingContext(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// 5. Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
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

	log.Println("Server exiting")
}
