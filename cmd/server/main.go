// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/unclebandit/mailpulse-backend/internal/config"
	"github.com/unclebandit/mailpulse-backend/internal/controller"
	"github.com/unclebandit/mailpulse-backend/internal/db"
	"github.com/unclebandit/mailpulse-backend/internal/handler"
	"github.com/unclebandit/mailpulse-backend/internal/repository"
	"github.com/unclebandit/mailpulse-backend/internal/service"
)

func main() {
	ctx := context.Background()

	// Load .env
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

	subscriberRepo := &repository.SubscriberRepository{DB: conn}
	campaignRepo := &repository.CampaignRepository{DB: conn}

	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
	}

	campaignController := &controller.CampaignController{
		CampaignService: campaignService,
	}

	subscriberHandler := &handler.SubscriberHandler{
		Repo: subscriberRepo,
	}

	r := chi.NewRouter()

	// Subscriber routes
	r.Post("/api/subscribers", subscriberHandler.CreateSubscriber)
	r.Get("/api/subscribers", subscriberHandler.ListSubscribers)

	// Campaign routes
	r.Post("/api/campaigns", campaignController.CreateCampaign)
	r.Get("/api/campaigns", campaignController.ListCampaigns)
	r.Delete("/api/campaigns/{id}", campaignController.DeleteCampaign)

	// Operational endpoints
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"mailpulse"}`))
	})
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		if err := conn.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"error","message":"postgres unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","postgres":"connected"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("🚀 Server running on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
