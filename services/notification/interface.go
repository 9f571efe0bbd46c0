package notification

import (
	"context"

	"rentora/models"
)

// AlertPublisher decouples booking transactions from alert delivery. All
// methods are fire-and-forget: implementations log failures and never return
// them into the financial path.
type AlertPublisher interface {
	// NegativeBalance alerts an owner that a cancellation drove their pending
	// balance below zero.
	NegativeBalance(ctx context.Context, ownerID string, balance float64)

	// BookingStatus informs a user that their booking changed state.
	BookingStatus(ctx context.Context, b *models.Booking, status string)
}
