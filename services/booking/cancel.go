package booking

import (
	"context"
	"errors"

	bookingRepo "rentora/database/repository/booking"
	"rentora/models"
)

// RejectBooking performs pending -> cancelled by the listing owner (or an
// admin). A pending booking never acquired an interval or balance, so the
// status write is the whole effect.
func (s *DefaultBookingService) RejectBooking(ctx context.Context, bookingID, callerID string, role Role) error {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if role == RoleOwner && b.OwnerID != callerID {
		return &AuthorizationError{Message: "only the listing owner may reject this booking"}
	}
	if role == RoleUser {
		return &AuthorizationError{Message: "use cancel to withdraw your own booking"}
	}
	if stErr := ValidateTransition(b, models.BookingStatusCancelled, role); stErr != nil {
		return stErr
	}
	if b.Status != models.BookingStatusPending {
		return &StateError{
			Reason:  ReasonInvalidTransition,
			From:    b.Status,
			To:      models.BookingStatusCancelled,
			Message: "only a pending booking can be rejected",
		}
	}

	if err := s.Bookings.UpdateStatus(ctx, b.ID, models.BookingStatusPending, models.BookingStatusCancelled); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusChanged) {
			return &StateError{
				Reason:  ReasonInvalidTransition,
				From:    b.Status,
				To:      models.BookingStatusCancelled,
				Message: "booking status changed concurrently",
			}
		}
		return err
	}

	s.Alerts.BookingStatus(ctx, b, models.BookingStatusCancelled)
	return nil
}

// CancelBooking cancels a non-terminal booking. Cancelling a confirmed
// booking atomically removes its blocked interval and returns the promised
// funds out of the owner's pending balance; the balance is allowed to go
// negative — cancellation always succeeds and a deficit is alerted
// out-of-band, never blocked on.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID, callerID string, role Role) (bool, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return false, err
	}

	switch role {
	case RoleUser:
		if b.UserID != callerID {
			return false, &AuthorizationError{Message: "only the requesting user may cancel this booking"}
		}
	case RoleOwner:
		if b.OwnerID != callerID {
			return false, &AuthorizationError{Message: "only the listing owner may cancel this booking"}
		}
	}

	if stErr := ValidateTransition(b, models.BookingStatusCancelled, role); stErr != nil {
		return false, stErr
	}

	wasConfirmed := b.Status == models.BookingStatusConfirmed
	if !wasConfirmed {
		// Pending: status write only, nothing else ever existed.
		if err := s.Bookings.UpdateStatus(ctx, b.ID, b.Status, models.BookingStatusCancelled); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				return false, &StateError{
					Reason:  ReasonInvalidTransition,
					From:    b.Status,
					To:      models.BookingStatusCancelled,
					Message: "booking status changed concurrently",
				}
			}
			return false, err
		}
		s.Alerts.BookingStatus(ctx, b, models.BookingStatusCancelled)
		return false, nil
	}

	var after *models.Balance
	err = s.Txn(ctx, func(ctx context.Context) error {
		if err := s.Bookings.UpdateStatus(ctx, b.ID, models.BookingStatusConfirmed, models.BookingStatusCancelled); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				return &StateError{
					Reason:  ReasonInvalidTransition,
					From:    models.BookingStatusConfirmed,
					To:      models.BookingStatusCancelled,
					Message: "booking status changed concurrently",
				}
			}
			return err
		}
		if err := s.Intervals.RemoveByBooking(ctx, b.ID); err != nil {
			return err
		}
		bal, err := s.Balances.AddPending(ctx, b.OwnerID, -b.TotalPrice)
		if err != nil {
			return err
		}
		after = bal
		return nil
	})
	if err != nil {
		return false, wrapTransient(err)
	}

	if after != nil && after.PendingBalance < 0 {
		s.Alerts.NegativeBalance(ctx, b.OwnerID, after.PendingBalance)
	}
	s.Alerts.BookingStatus(ctx, b, models.BookingStatusCancelled)
	return true, nil
}
