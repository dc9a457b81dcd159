package cron

import (
	"context"
	"log"
	"time"

	"clinibook/config"
	"clinibook/services/reminder"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeReminderScan = "reminder:scan"

// InitReminderWorker starts the async worker and registers the periodic
// reminder scan on the configured cron spec.
func InitReminderWorker(reminderSvc reminder.ReminderService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
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
	mux.HandleFunc(TypeReminderScan, handleReminderScan(reminderSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()

	// Schedule the periodic scan.
	go func() {
		scheduler := asynq.NewScheduler(redisOpts, nil)
		spec := config.AppConfig.ReminderCronSpec
		if spec == "" {
			spec = "*/15 * * * *"
		}
		if _, err := scheduler.Register(spec, asynq.NewTask(TypeReminderScan, nil)); err != nil {
			log.Fatalf("[ReminderScheduler] failed to register scan task: %v", err)
		}
		if err := scheduler.Run(); err != nil {
			log.Fatalf("[ReminderScheduler] scheduler stopped: %v", err)
		}
	}()
}

func handleReminderScan(reminderSvc reminder.ReminderService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		sent, err := reminderSvc.Scan(ctx, time.Now())
		if err != nil {
			log.Printf("[ReminderHandler] scan failed: %v", err)
			return err
		}
		if sent > 0 {
			log.Printf("[ReminderHandler] wrote %d reminder(s)", sent)
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
