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
	"nutriplan/internal/importer"
	"nutriplan/internal/llm"
	"nutriplan/internal/metrics"
	"nutriplan/internal/planner"
	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
	"nutriplan/internal/storage"
	"nutriplan/internal/telegram"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.TelegramBotToken == "" || cfg.TelegramWebhookURL == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN and TELEGRAM_WEBHOOK_URL are required for the bot")
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

	var textGen llm.TextGenerator
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		if closer, ok := gemini.(llm.Closer); ok {
			defer closer.Close()
		}
		textGen = gemini
	}

	bot, err := telegram.NewBot(
		cfg,
		profile.NewRepository(db.SQL),
		recipeRepo,
		planner.NewPlanRepository(db.SQL),
		cache,
		metrics.NewStore(db.SQL),
		importer.NewImporter(recipeRepo, textGen),
		corpus,
	)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
