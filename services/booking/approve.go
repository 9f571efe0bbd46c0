package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "rentora/database/repository/booking"
	intervalRepo "rentora/database/repository/interval"
	"rentora/models"
)

// ApproveBooking performs pending -> confirmed. The interval conflict check,
// the interval insert, the status write and the pending-balance credit all
// commit or roll back as one transaction; this is the single place the whole
// system relies on multi-document atomicity.
func (s *DefaultBookingService) ApproveBooking(ctx context.Context, bookingID, callerID string, role Role) error {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if role == RoleOwner && b.OwnerID != callerID {
		return &AuthorizationError{Message: "only the listing owner may approve this booking"}
	}
	if stErr := ValidateTransition(b, models.BookingStatusConfirmed, role); stErr != nil {
		return stErr
	}
	if err := models.ValidateDateRange(b.StartDate, b.EndDate); err != nil {
		return NewValidationError("invalid_date_range", err.Error())
	}

	err = s.Txn(ctx, func(ctx context.Context) error {
		// Re-read inside the transaction: a coupon may have committed onto the
		// pending booking since the initial load, and the credited amount must
		// be the amount the confirmed booking carries.
		cur, err := s.Bookings.GetByID(ctx, b.ID)
		if err != nil {
			return err
		}

		conflict, err := s.Intervals.FindConflict(ctx, cur.ListingID, cur.ListingType, cur.StartDate, cur.EndDate)
		if err != nil {
			return err
		}
		if conflict != nil {
			return &DateConflictError{ConflictingBookingID: conflict.BookingID}
		}

		iv := models.BlockedInterval{
			BookingID: cur.ID,
			Start:     cur.StartDate,
			End:       cur.EndDate,
			CreatedAt: time.Now(),
		}
		if err := s.Intervals.Insert(ctx, cur.ListingID, cur.ListingType, iv); err != nil {
			if errors.Is(err, intervalRepo.ErrIntervalConflict) {
				// The conditional insert lost to a calendar that changed
				// under us; report the winner.
				winner, findErr := s.Intervals.FindConflict(ctx, cur.ListingID, cur.ListingType, cur.StartDate, cur.EndDate)
				if findErr == nil && winner != nil {
					return &DateConflictError{ConflictingBookingID: winner.BookingID}
				}
				return &DateConflictError{}
			}
			return err
		}

		if err := s.Bookings.UpdateStatus(ctx, cur.ID, models.BookingStatusPending, models.BookingStatusConfirmed); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				return &StateError{
					Reason:  ReasonInvalidTransition,
					From:    models.BookingStatusPending,
					To:      models.BookingStatusConfirmed,
					Message: "booking status changed concurrently",
				}
			}
			return err
		}

		_, err = s.Balances.AddPending(ctx, cur.OwnerID, cur.TotalPrice)
		return err
	})
	if err != nil {
		return wrapTransient(err)
	}

	s.Alerts.BookingStatus(ctx, b, models.BookingStatusConfirmed)
	return nil
}
