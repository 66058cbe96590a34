package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"nutriplan/internal/config"
	"nutriplan/internal/database"
	"nutriplan/internal/metrics"
	"nutriplan/internal/recipe"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed-recipes":
		if err := seedRecipes(ctx, db); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := metrics.NewStore(db.SQL).Cleanup(ctx, *days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// seedRecipes copies the embedded seed corpus into the recipe table so
// imported and seed recipes can be browsed through one store.
func seedRecipes(ctx context.Context, db *database.DB) error {
	corpus, err := recipe.LoadSeedCorpus()
	if err != nil {
		return err
	}

	repo := recipe.NewRepository(db.SQL)
	count := 0
	for _, mt := range recipe.MealTypes {
		for _, rec := range corpus.ByMealType(mt) {
			if err := repo.Save(ctx, rec); err != nil {
				return fmt.Errorf("failed to save %s: %w", rec.ID, err)
			}
			count++
		}
	}
	fmt.Printf("Seeded %d recipes.\n", count)
	return nil
}

func printUsage() {
	fmt.Println("Usage: nutriplan-admin <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  seed-recipes       Copy the embedded recipe corpus into the database")
	fmt.Println("  metrics-cleanup    Remove old generation metric records")
}
