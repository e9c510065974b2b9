//cmd/seeder/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/unclebandit/mailpulse-backend/internal/config"
	"github.com/unclebandit/mailpulse-backend/internal/db"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := db.InitSchema(ctx, conn); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}

	seedFiles := []string{
		"seed/subscribers.sql",
		"seed/campaigns.sql",
	}

	for _, file := range seedFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("failed to read %s: %v", file, err)
		}

		if _, err := conn.ExecContext(ctx, string(content)); err != nil {
			log.Fatalf("failed to execute %s: %v", file, err)
		}
		fmt.Printf("Seeded: %s\n", file)
	}

	fmt.Println("Database seeding completed successfully!")
}
