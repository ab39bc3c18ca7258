package main

import (
	"log"

	"github.com/joho/godotenv"

	"eventlist/config"
)

// Migrates the schema and seeds the default taxonomies. The surrounding
// application links the services packages directly.
func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("no .env file, relying on environment: %v", err)
	}

	logger := config.NewLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if _, err := cfg.Location(); err != nil {
		log.Fatalf("invalid TIME_ZONE %q: %v", cfg.TimeZone, err)
	}

	if _, err := config.InitDatabase(cfg); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	logger.Info("schema migrated", "database", cfg.DBName, "time_zone", cfg.TimeZone)
}
