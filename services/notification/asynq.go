package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"rentora/models"
	"rentora/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Asynq task types consumed by the worker in cron/worker.go.
const (
	TypeNegativeBalance = "alert:negative_balance"
	TypeBookingStatus   = "alert:booking_status"
)

// AsynqPublisher enqueues alert tasks onto the Redis-backed queue. Enqueue
// failures are logged and swallowed so a down queue can never fail or block
// the transaction that triggered the alert.
type AsynqPublisher struct {
	Client *asynq.Client
}

func NewAsynqPublisher(client *asynq.Client) *AsynqPublisher {
	return &AsynqPublisher{Client: client}
}

func (p *AsynqPublisher) enqueue(taskType string, payload models.AlertPayload) {
	logger := utils.GetLogger()
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("alert payload marshal failed", zap.String("type", taskType), zap.Error(err))
		return
	}
	if _, err := p.Client.Enqueue(asynq.NewTask(taskType, data)); err != nil {
		logger.Error("alert enqueue failed", zap.String("type", taskType), zap.Error(err))
	}
}

func (p *AsynqPublisher) NegativeBalance(ctx context.Context, ownerID string, balance float64) {
	p.enqueue(TypeNegativeBalance, models.AlertPayload{
		Target: "owner",
		ID:     ownerID,
		Title:  "Balance below zero",
		Body:   fmt.Sprintf("A cancellation left your pending balance at %.2f. We will reconcile it against upcoming earnings.", balance),
		Amount: balance,
	})
}

func (p *AsynqPublisher) BookingStatus(ctx context.Context, b *models.Booking, status string) {
	p.enqueue(TypeBookingStatus, models.AlertPayload{
		Target:    "user",
		ID:        b.UserID,
		BookingID: b.ID,
		Title:     "Booking " + status,
		Body:      fmt.Sprintf("Your booking for %s to %s is now %s.", b.StartDate, b.EndDate, status),
	})
}
