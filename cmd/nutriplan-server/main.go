package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nutriplan/internal/config"
	"nutriplan/internal/database"
	"nutriplan/internal/httpapi"
	"nutriplan/internal/importer"
	"nutriplan/internal/llm"
	"nutriplan/internal/logger"
	"nutriplan/internal/metrics"
	"nutriplan/internal/planner"
	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
	"nutriplan/internal/shopping"
	"nutriplan/internal/storage"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger.Init()
	defer logger.Close()
	zlog := logger.L()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	corpus, err := recipe.LoadSeedCorpus()
	if err != nil {
		log.Fatalf("Failed to load recipe corpus: %v", err)
	}

	cache, err := storage.NewPlanCache(cfg.PlanCachePath)
	if err != nil {
		log.Fatalf("Failed to initialize plan cache: %v", err)
	}

	recipeRepo := recipe.NewRepository(db.SQL)

	// The importer's LLM fallback is optional; without a key only
	// structured (JSON-LD) pages can be imported.
	var textGen llm.TextGenerator
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		if closer, ok := gemini.(llm.Closer); ok {
			defer closer.Close()
		}
		textGen = gemini
	} else {
		zlog.Info("GEMINI_API_KEY not set; recipe import limited to structured pages")
	}

	server := httpapi.NewServer(httpapi.Options{
		Profiles:  profile.NewRepository(db.SQL),
		Recipes:   recipeRepo,
		Plans:     planner.NewPlanRepository(db.SQL),
		ShopLists: shopping.NewRepository(db.SQL),
		Corpus:    corpus,
		Cache:     cache,
		Metrics:   metrics.NewStore(db.SQL),
		Importer:  importer.NewImporter(recipeRepo, textGen),
		JWTSecret: cfg.JWTSecret,
		DataPath:  cfg.PlanCachePath,
		Logger:    zlog,
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.Router(),
	}

	go func() {
		zlog.Info("API server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	zlog.Info("Server exiting")
}
