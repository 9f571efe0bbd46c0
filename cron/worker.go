package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"rentora/config"
	"rentora/models"
	"rentora/services/coupon"
	"rentora/services/notification"
	"rentora/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// InitAlertWorker runs the async alert worker in background.
func InitAlertWorker() {
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
	mux.HandleFunc(notification.TypeNegativeBalance, handleAlertTask)
	mux.HandleFunc(notification.TypeBookingStatus, handleAlertTask)

	go func() {
		log.Println("[AlertWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[AlertWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[AlertWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleAlertTask delivers an alert to the target's FCM topic. With no FCM
// client configured, delivery degrades to the log line only.
func handleAlertTask(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()

	var p models.AlertPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		logger.Error("alert worker: invalid payload", zap.String("type", task.Type()), zap.Error(err))
		return err
	}

	logger.Info("alert",
		zap.String("type", task.Type()),
		zap.String("target", p.Target),
		zap.String("id", p.ID),
		zap.String("title", p.Title),
		zap.String("body", p.Body),
	)

	if utils.FCMClient == nil {
		return nil
	}

	data := map[string]string{
		"title": p.Title,
		"body":  p.Body,
	}
	if p.BookingID != "" {
		data["bookingId"] = p.BookingID
	}

	_, err := utils.FCMClient.Send(ctx, &messaging.Message{
		Topic: p.Target + "-" + p.ID,
		Notification: &messaging.Notification{
			Title: p.Title,
			Body:  p.Body,
		},
		Data: data,
	})
	if err != nil {
		logger.Error("alert worker: push delivery failed",
			zap.String("target", p.Target), zap.String("id", p.ID), zap.Error(err))
	}
	return err
}

// StartCouponReconciler schedules the periodic coupon usage reconciliation.
// The schedule comes from COUPON_RECONCILE_CRON.
func StartCouponReconciler(svc coupon.CouponService) *cron.Cron {
	logger := utils.GetLogger()

	c := cron.New()
	_, err := c.AddFunc(config.AppConfig.CouponReconcileCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := svc.Reconcile(ctx); err != nil {
			logger.Error("coupon reconciliation failed", zap.Error(err))
		}
	})
	if err != nil {
		logger.Sugar().Fatalf("cron: invalid coupon reconcile schedule %q: %v",
			config.AppConfig.CouponReconcileCron, err)
	}
	c.Start()
	return c
}
