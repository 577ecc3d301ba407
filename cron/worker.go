package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"courtbot/config"
	"courtbot/models"
	"courtbot/services/notification"
)

// InitAnnounceWorker runs the async announcement worker in background. It
// drains the announce queue and delivers each entry to the shared group
// chat, so a Telegram hiccup retries at the queue layer instead of losing
// the broadcast.
func InitAnnounceWorker(api *notification.TelegramClient, groupChatID int64) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeAnnounce, handleAnnounceTask(api, groupChatID))

	// Start async worker with retry logic
	go func() {
		log.Println("[AnnounceWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[AnnounceWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[AnnounceWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleAnnounceTask(api *notification.TelegramClient, groupChatID int64) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.AnnouncePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[AnnounceWorker] invalid payload: %v", err)
			return err
		}

		if err := api.SendToChat(ctx, groupChatID, p.Text); err != nil {
			log.Printf("[AnnounceWorker] failed to deliver announcement: %v", err)
			return err
		}
		return nil
	}
}

// NewAnnounceQueueClient returns the enqueue side of the announce queue.
func NewAnnounceQueueClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
}
