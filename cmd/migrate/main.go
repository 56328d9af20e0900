// Command migrate applies scripts/schema.sql to the configured database.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"bookstreak/pkg/config"
	"bookstreak/pkg/database"
)

func main() {
	configPath := flag.String("config", "./configs/development.yaml", "path to config file")
	schemaPath := flag.String("schema", "./scripts/schema.sql", "path to schema file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	schema, err := os.ReadFile(*schemaPath)
	if err != nil {
		log.Fatalf("Failed to read schema file: %v", err)
	}

	db, err := database.NewDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	log.Println("Schema applied successfully")
}
