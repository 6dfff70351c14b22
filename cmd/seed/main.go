package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"time"

	"github.com/joho/godotenv"

	"conversa/internal/config"
	"conversa/internal/logging"
	"conversa/internal/repository"
	"conversa/internal/repository/postgres"
	"conversa/internal/seed"
	"conversa/internal/service"
)

func main() {
	file := flag.String("file", "fixtures/exemplo.yaml", "Fixture file to load")
	check := flag.Bool("check", false, "Only parse and validate the fixture, don't write anything")
	dropTables := flag.Bool("drop-tables", false, "Drop the postgres tables before seeding (fresh start)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	fixture, err := seed.LoadFixture(*file)
	if err != nil {
		log.Fatalf("Invalid fixture: %v", err)
	}
	log.Printf("📄 Fixture %s: %d conversations", *file, len(fixture.Conversations))

	if *check {
		log.Println("✅ Fixture is valid (check mode)")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// SAFETY: Seeding writes into whatever store is configured
	if cfg.IsProduction() {
		log.Fatalf("🚫 BLOCKED: Cannot seed in production environment")
	}

	if *dropTables && cfg.StoreBackend != config.BackendPostgres {
		log.Fatalf("--drop-tables only applies to the postgres backend (got %s)", cfg.StoreBackend)
	}

	logger, closeLog, err := logging.New(logging.Options{
		Environment: cfg.Environment,
		Name:        "seed",
		LogDir:      cfg.LogDir,
		MaxFiles:    cfg.LogMaxFiles,
	})
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer closeLog()

	log.Printf("🌱 Seeding %s store (environment: %s, prefix: %s)", cfg.StoreBackend, cfg.Environment, cfg.TablePrefix)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if *dropTables {
		log.Println("🗑️  Dropping tables...")
		if err := dropPostgresTables(ctx, cfg, logger); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Open recreates the schema
	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	seeder := seed.NewSeeder(
		service.NewStructureService(store.Structure, logger),
		service.NewHistoryService(store.Messages, logger),
		logger,
	)

	result, err := seeder.Seed(ctx, fixture)
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	log.Printf("✅ Seeded %d conversations, %d messages (structure saved: %t)",
		result.Conversations, result.Messages, result.StructureSaved)
}

func dropPostgresTables(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	return postgres.DropSchema(ctx, &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	})
}
