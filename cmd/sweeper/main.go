package main

import (
	"FlowVault/config"
	"FlowVault/internal/dto"
	"FlowVault/internal/mq"
	"FlowVault/internal/repo"
	"FlowVault/internal/storage"
	"FlowVault/internal/worker"
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// main runs the expiry sweeper: a RabbitMQ consumer for on-demand
// triggers plus a ticker that enqueues a periodic sweep.
func main() {
	config.InitConfig()
	repo.InitMysql()
	repo.InitRedis()
	storage.InitMinio()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go runScheduler(ctx)

	log.Println("cleanup worker started")
	if err := worker.RunCleanupWorker(ctx); err != nil {
		log.Fatalf("cleanup worker stopped: %v", err)
	}
}

func runScheduler(ctx context.Context) {
	interval := config.AppConfig.SweepInterval
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			trigger := dto.CleanupTrigger{
				Reason:      "schedule",
				RequestedAt: time.Now().Unix(),
			}
			body, err := json.Marshal(trigger)
			if err != nil {
				log.Printf("sweeper: marshal trigger failed: %v", err)
				continue
			}
			publisher, err := mq.GetPublisher()
			if err != nil {
				log.Printf("sweeper: publisher unavailable: %v", err)
				continue
			}
			if err := publisher.PublishCleanup(ctx, body); err != nil {
				log.Printf("sweeper: publish trigger failed: %v", err)
			}
		}
	}
}
