// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"

	"rentora/database"
	"rentora/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository is the booking ledger: the single source of truth for
// per-booking lifecycle state. Status writes are always conditional on the
// expected prior status so a lost race surfaces as ErrStatusChanged instead
// of silently double-applying a transition.
type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)

	// UpdateStatus flips status from -> to in one conditional write. Returns
	// ErrStatusChanged when the booking no longer holds the expected status.
	UpdateStatus(ctx context.Context, id, from, to string) error

	// SetPaymentStatus records the payment collaborator's verdict.
	SetPaymentStatus(ctx context.Context, id, paymentStatus string) error

	// ApplyDiscount writes the coupon price breakdown exactly once. Returns
	// ErrCouponAttached when the booking already carries a coupon.
	ApplyDiscount(ctx context.Context, bookingID, couponID, couponCode string, original, discount, total float64) error

	// ListPendingOverlapping returns other pending bookings on the listing
	// whose ranges overlap [start, end] (advisory pre-check only).
	ListPendingOverlapping(ctx context.Context, listingID, listingType, start, end, excludeID string) ([]models.Booking, error)

	// CountActiveByUser counts the user's pending + confirmed bookings
	// (admission control input).
	CountActiveByUser(ctx context.Context, userID string) (int64, error)

	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)

	EnsureIndexes(ctx context.Context) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs the MongoDB-backed booking ledger.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
