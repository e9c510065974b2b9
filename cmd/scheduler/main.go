// cmd/scheduler/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/unclebandit/mailpulse-backend/internal/config"
	"github.com/unclebandit/mailpulse-backend/internal/db"
	"github.com/unclebandit/mailpulse-backend/internal/provider"
	"github.com/unclebandit/mailpulse-backend/internal/repository"
	"github.com/unclebandit/mailpulse-backend/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Fail fast when the store is unreachable.
	conn, err := db.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	defer conn.Close()

	if err := db.InitSchema(ctx, conn); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}

	sender, err := provider.New(cfg)
	if err != nil {
		log.Fatalf("failed to build delivery provider: %v", err)
	}
	log.Printf("Using %q delivery provider", cfg.Provider.Kind)

	subscriberRepo := &repository.SubscriberRepository{DB: conn}
	campaignRepo := &repository.CampaignRepository{DB: conn}

	dispatcher := &service.Dispatcher{
		CampaignRepo:   campaignRepo,
		SubscriberRepo: subscriberRepo,
		Provider:       sender,
		SendTimeout:    cfg.Scheduler.SendTimeout,
	}

	poller := &service.Poller{
		CampaignRepo: campaignRepo,
		Dispatcher:   dispatcher,
		Interval:     cfg.Scheduler.PollInterval,
	}

	log.Println("Starting Email Automation Engine...")
	if err := poller.Start(); err != nil {
		log.Fatalf("failed to start poller: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	poller.Stop()
}
