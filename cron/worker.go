package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"carematch/config"
	"carematch/models"
	"carematch/services/notification"

	"github.com/hibiken/asynq"
)

// InitDispatchWorker runs the async notice worker in the background.
func InitDispatchWorker(notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeDispatchNotice, handleDispatchNotice(notifSvc))

	go func() {
		log.Println("[DispatchWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[DispatchWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[DispatchWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleDispatchNotice(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.DispatchNoticePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[DispatchWorker] invalid payload: %v", err)
			return err
		}

		data := map[string]string{
			"requestId": p.RequestID,
			"kind":      p.Kind,
		}
		if err := notifSvc.NotifyProvider(ctx, p.ProviderID, p.Title, p.Body, data); err != nil {
			log.Printf("[DispatchWorker] failed to deliver notice: %v", err)
			return err
		}
		return nil
	}
}
