package worker

import (
	"FlowVault/config"
	"FlowVault/internal/dto"
	"FlowVault/internal/mq"
	"FlowVault/internal/repo"
	"FlowVault/internal/service"
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const maxCleanupAttempts = 3

var retryDelays = []time.Duration{30 * time.Second, 2 * time.Minute, 10 * time.Minute}

type cleanupMessage struct {
	dto.CleanupTrigger
	Attempt int `json:"attempt"`
}

type dlqMessage struct {
	Reason   string    `json:"reason"`
	Attempt  int       `json:"attempt"`
	Error    string    `json:"error"`
	FailedAt time.Time `json:"failed_at"`
}

// RunCleanupWorker consumes sweep triggers from RabbitMQ. Each
// trigger runs one locked sweep; a busy lock just means another
// process already swept, so the message is acknowledged.
func RunCleanupWorker(ctx context.Context) error {
	client, err := mq.Dial()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.DeclareTopology(); err != nil {
		return err
	}

	prefetch := config.AppConfig.RabbitMQPrefetch
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := client.Channel.Qos(prefetch, 0, false); err != nil {
		return err
	}

	deliveries, err := client.Channel.Consume(
		mq.QueueCleanup,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("cleanup worker: delivery channel closed")
			}
			handleCleanupMessage(ctx, client, delivery)
		}
	}
}

func handleCleanupMessage(ctx context.Context, client *mq.Client, delivery amqp.Delivery) {
	var msg cleanupMessage
	if err := json.Unmarshal(delivery.Body, &msg); err != nil {
		log.Printf("cleanup worker: invalid message: %v", err)
		_ = delivery.Ack(false)
		return
	}

	summary, err := service.CleanupWithLock(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			_ = delivery.Nack(false, true)
			return
		}
		if errors.Is(err, repo.ErrLockBusy) {
			log.Println("cleanup worker: sweep already running, skipping trigger")
			_ = delivery.Ack(false)
			return
		}
		if err := scheduleRetry(ctx, client, msg, err); err != nil {
			log.Printf("cleanup worker: retry schedule failed: %v", err)
			_ = delivery.Nack(false, true)
			return
		}
		_ = delivery.Ack(false)
		return
	}

	log.Printf("cleanup worker: sweep done, processed=%d deleted=%d errors=%d",
		summary.ProcessedCount, summary.DeletedCount, summary.ErrorCount)
	_ = delivery.Ack(false)
}

func scheduleRetry(ctx context.Context, client *mq.Client, msg cleanupMessage, procErr error) error {
	nextAttempt := msg.Attempt + 1
	if nextAttempt > maxCleanupAttempts {
		return markFailed(ctx, client, msg, procErr)
	}

	delay := pickRetryDelay(nextAttempt)
	msg.Attempt = nextAttempt
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return client.PublishRetry(ctx, body, delay)
}

func markFailed(ctx context.Context, client *mq.Client, msg cleanupMessage, procErr error) error {
	dlq := dlqMessage{
		Reason:   msg.Reason,
		Attempt:  msg.Attempt,
		Error:    procErr.Error(),
		FailedAt: time.Now(),
	}
	body, err := json.Marshal(dlq)
	if err != nil {
		return err
	}
	if err := client.PublishDLQ(ctx, body); err != nil {
		log.Printf("cleanup worker: dlq publish failed: %v", err)
	}
	return nil
}

func pickRetryDelay(attempt int) time.Duration {
	index := attempt - 1
	if index < 0 {
		index = 0
	}
	if index >= len(retryDelays) {
		return retryDelays[len(retryDelays)-1]
	}
	return retryDelays[index]
}
