// Command seed fills the database with demo posts.
package main

import (
	"flag"
	"log"

	"digitalpen/internal/config"
	"digitalpen/internal/database"
	"digitalpen/internal/seed"
)

func main() {
	count := flag.Int("count", 20, "number of posts to create")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	factory := seed.NewFactory(db)
	if _, err := factory.CreatePosts(*count); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
