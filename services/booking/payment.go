package booking

import (
	"context"

	"rentora/models"
)

// RecordPayment stores the payment collaborator's verdict for a booking.
// Payment collection itself happens outside this system; only the recorded
// status matters here, as the completion guard reads it.
func (s *DefaultBookingService) RecordPayment(ctx context.Context, bookingID, paymentStatus string, role Role) error {
	if role != RoleSystem && role != RoleAdmin {
		return &AuthorizationError{Message: "only the payment collaborator may record payment status"}
	}
	switch paymentStatus {
	case models.PaymentStatusPending, models.PaymentStatusPaid, models.PaymentStatusRefunded:
	default:
		return NewValidationError("missing_fields", "unknown payment status "+paymentStatus)
	}

	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.IsTerminal() {
		return &StateError{
			Reason:  ReasonInvalidTransition,
			From:    b.Status,
			To:      b.Status,
			Message: "payment status of a terminal booking is immutable",
		}
	}
	return s.Bookings.SetPaymentStatus(ctx, b.ID, paymentStatus)
}
