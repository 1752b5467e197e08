package cron

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"growthquest/config"
	"growthquest/monitoring"
	"growthquest/services/checkout"
	"growthquest/services/holdsession"
	"growthquest/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeHoldExpire = "hold:expire"

type holdExpirePayload struct {
	SessionID string `json:"sessionId"`
}

// AsynqExpiryScheduler schedules a hold-expiry task at the hold's expiry
// instant. Implements checkout.ExpiryScheduler.
type AsynqExpiryScheduler struct {
	client *asynq.Client
}

func NewAsynqExpiryScheduler() *AsynqExpiryScheduler {
	return &AsynqExpiryScheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}),
	}
}

func (s *AsynqExpiryScheduler) ScheduleExpiry(sessionID string, at time.Time) error {
	payload, err := json.Marshal(holdExpirePayload{SessionID: sessionID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeHoldExpire, payload)
	_, err = s.client.Enqueue(task, asynq.ProcessAt(at))
	return err
}

// InitExpiryWorker runs the async worker consuming hold-expiry tasks in the
// background. A task firing after the session was already confirmed or swept
// is a no-op.
func InitExpiryWorker(resolver checkout.Resolver) {
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
	mux.HandleFunc(TypeHoldExpire, handleHoldExpireTask(resolver))

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting hold-expiry worker")
		if err := srv.Run(mux); err != nil {
			logger.Fatal("hold-expiry worker failed to start", zap.Error(err))
		}
	}()
}

func handleHoldExpireTask(resolver checkout.Resolver) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p holdExpirePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid hold-expiry payload", zap.Error(err))
			return err
		}

		err := resolver.Expire(p.SessionID)
		switch {
		case err == nil:
			monitoring.TrackExpiry()
			utils.GetLogger().Info("hold expired by task", zap.String("sessionId", p.SessionID))
			return nil
		case errors.Is(err, holdsession.ErrHoldExpired),
			errors.Is(err, holdsession.ErrInvalidState),
			errors.Is(err, holdsession.ErrSessionNotFound):
			// Session already confirmed, swept, or gone.
			return nil
		default:
			return err
		}
	}
}

// StartExpirySweeper periodically ticks the session manager so overdue holds
// are always observed as expired even if their scheduled task was lost. This
// sweep is the authoritative expiry check.
func StartExpirySweeper(ctx context.Context, mgr *holdsession.Manager, clock holdsession.Clock, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				expired := mgr.Tick(clock.Now())
				for _, id := range expired {
					monitoring.TrackExpiry()
					utils.GetLogger().Info("hold expired by sweep", zap.String("sessionId", id))
				}
			}
		}
	}()
}
