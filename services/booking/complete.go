package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "rentora/database/repository/booking"
	"rentora/models"
)

// CompleteBooking performs confirmed -> completed (system or admin only,
// payment must be confirmed). The status write and the conversion of pending
// balance into realized earnings history commit as one transaction.
func (s *DefaultBookingService) CompleteBooking(ctx context.Context, bookingID string, role Role) error {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if stErr := ValidateTransition(b, models.BookingStatusCompleted, role); stErr != nil {
		return stErr
	}

	today := time.Now().Format(models.DateLayout)
	err = s.Txn(ctx, func(ctx context.Context) error {
		// Re-read inside the transaction so the converted amount and the
		// payment guard reflect the booking as it commits, not as it was
		// loaded.
		cur, err := s.Bookings.GetByID(ctx, b.ID)
		if err != nil {
			return err
		}
		if stErr := ValidateTransition(cur, models.BookingStatusCompleted, role); stErr != nil {
			return stErr
		}

		if err := s.Bookings.UpdateStatus(ctx, cur.ID, models.BookingStatusConfirmed, models.BookingStatusCompleted); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				return &StateError{
					Reason:  ReasonInvalidTransition,
					From:    models.BookingStatusConfirmed,
					To:      models.BookingStatusCompleted,
					Message: "booking status changed concurrently",
				}
			}
			return err
		}
		_, err = s.Balances.ApplyCompletion(ctx, cur.OwnerID, cur.TotalPrice, today)
		return err
	})
	if err != nil {
		return wrapTransient(err)
	}

	s.Alerts.BookingStatus(ctx, b, models.BookingStatusCompleted)
	return nil
}
