package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when no booking matches the given id.
	ErrNotFound = errors.New("booking not found")
	// ErrStatusChanged is returned when a conditional status write matched
	// nothing because the booking's status moved concurrently.
	ErrStatusChanged = errors.New("booking status changed concurrently")
	// ErrCouponAttached is returned when a discount write finds a coupon
	// already applied to the booking.
	ErrCouponAttached = errors.New("coupon already attached to booking")
	// ErrNotPending is returned when a discount write finds the booking no
	// longer pending.
	ErrNotPending = errors.New("booking is no longer pending")
)

func (repo *mongoBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	if _, err := repo.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (repo *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", id, err)
	}
	return &b, nil
}

func (repo *mongoBookingRepo) UpdateStatus(ctx context.Context, id, from, to string) error {
	res, err := repo.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("update booking %s status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrStatusChanged
	}
	return nil
}

func (repo *mongoBookingRepo) SetPaymentStatus(ctx context.Context, id, paymentStatus string) error {
	res, err := repo.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"payment_status": paymentStatus, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("update booking %s payment status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ApplyDiscount is conditional on the booking still being pending with no
// coupon attached, so both a second redemption attempt and a redemption racing
// an approval match nothing. On a miss the booking is re-read to report which
// condition failed.
func (repo *mongoBookingRepo) ApplyDiscount(ctx context.Context, bookingID, couponID, couponCode string, original, discount, total float64) error {
	filter := bson.M{
		"id":     bookingID,
		"status": models.BookingStatusPending,
		"$or": []bson.M{
			{"coupon_id": bson.M{"$exists": false}},
			{"coupon_id": ""},
		},
	}
	update := bson.M{"$set": bson.M{
		"coupon_id":       couponID,
		"coupon_code":     couponCode,
		"original_price":  original,
		"discount_amount": discount,
		"total_price":     total,
		"updated_at":      time.Now(),
	}}

	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("apply discount to booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		cur, err := repo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if cur.Status != models.BookingStatusPending {
			return ErrNotPending
		}
		return ErrCouponAttached
	}
	return nil
}

func (repo *mongoBookingRepo) ListPendingOverlapping(ctx context.Context, listingID, listingType, start, end, excludeID string) ([]models.Booking, error) {
	filter := bson.M{
		"listing_id":   listingID,
		"listing_type": listingType,
		"status":       models.BookingStatusPending,
		"id":           bson.M{"$ne": excludeID},
		"start_date":   bson.M{"$lte": end},
		"end_date":     bson.M{"$gte": start},
	}
	cur, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list overlapping pending bookings: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Booking
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode overlapping pending bookings: %w", err)
	}
	return out, nil
}

func (repo *mongoBookingRepo) CountActiveByUser(ctx context.Context, userID string) (int64, error) {
	n, err := repo.coll.CountDocuments(ctx, bson.M{
		"user_id": userID,
		"status": bson.M{"$in": []string{
			models.BookingStatusPending,
			models.BookingStatusConfirmed,
		}},
	})
	if err != nil {
		return 0, fmt.Errorf("count active bookings for user %s: %w", userID, err)
	}
	return n, nil
}

func (repo *mongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	cur, err := repo.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("list bookings for user %s: %w", userID, err)
	}
	defer cur.Close(ctx)

	var out []models.Booking
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode bookings for user %s: %w", userID, err)
	}
	return out, nil
}
