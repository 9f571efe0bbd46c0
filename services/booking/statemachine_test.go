package booking

import (
	"testing"

	"rentora/models"

	"github.com/stretchr/testify/assert"
)

func bookingIn(status, paymentStatus string) *models.Booking {
	return &models.Booking{
		ID:            "bk-1",
		UserID:        "user-1",
		OwnerID:       "owner-1",
		Status:        status,
		PaymentStatus: paymentStatus,
	}
}

func TestValidateTransitionAllowed(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		payment string
		to      string
		role    Role
	}{
		{"owner approves pending", models.BookingStatusPending, models.PaymentStatusPending, models.BookingStatusConfirmed, RoleOwner},
		{"admin approves pending", models.BookingStatusPending, models.PaymentStatusPending, models.BookingStatusConfirmed, RoleAdmin},
		{"system approves pending", models.BookingStatusPending, models.PaymentStatusPending, models.BookingStatusConfirmed, RoleSystem},
		{"user cancels pending", models.BookingStatusPending, models.PaymentStatusPending, models.BookingStatusCancelled, RoleUser},
		{"owner cancels pending", models.BookingStatusPending, models.PaymentStatusPending, models.BookingStatusCancelled, RoleOwner},
		{"user cancels confirmed", models.BookingStatusConfirmed, models.PaymentStatusPaid, models.BookingStatusCancelled, RoleUser},
		{"owner cancels confirmed", models.BookingStatusConfirmed, models.PaymentStatusPending, models.BookingStatusCancelled, RoleOwner},
		{"system completes paid confirmed", models.BookingStatusConfirmed, models.PaymentStatusPaid, models.BookingStatusCompleted, RoleSystem},
		{"admin completes paid confirmed", models.BookingStatusConfirmed, models.PaymentStatusPaid, models.BookingStatusCompleted, RoleAdmin},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTransition(bookingIn(tc.from, tc.payment), tc.to, tc.role)
			assert.Nil(t, err)
		})
	}
}

func TestValidateTransitionRejected(t *testing.T) {
	tests := []struct {
		name       string
		from       string
		payment    string
		to         string
		role       Role
		wantReason string
	}{
		{"same state is never a no-op", models.BookingStatusPending, models.PaymentStatusPending, models.BookingStatusPending, RoleAdmin, ReasonSameState},
		{"pending cannot complete", models.BookingStatusPending, models.PaymentStatusPaid, models.BookingStatusCompleted, RoleSystem, ReasonInvalidTransition},
		{"completed is terminal", models.BookingStatusCompleted, models.PaymentStatusPaid, models.BookingStatusCancelled, RoleAdmin, ReasonInvalidTransition},
		{"cancelled is terminal", models.BookingStatusCancelled, models.PaymentStatusPending, models.BookingStatusConfirmed, RoleAdmin, ReasonInvalidTransition},
		{"cancelled cannot complete", models.BookingStatusCancelled, models.PaymentStatusPaid, models.BookingStatusCompleted, RoleSystem, ReasonInvalidTransition},
		{"user may not approve", models.BookingStatusPending, models.PaymentStatusPending, models.BookingStatusConfirmed, RoleUser, ReasonUnauthorizedRole},
		{"system may not cancel pending", models.BookingStatusPending, models.PaymentStatusPending, models.BookingStatusCancelled, RoleSystem, ReasonUnauthorizedRole},
		{"user may not complete", models.BookingStatusConfirmed, models.PaymentStatusPaid, models.BookingStatusCompleted, RoleUser, ReasonUnauthorizedRole},
		{"owner may not complete", models.BookingStatusConfirmed, models.PaymentStatusPaid, models.BookingStatusCompleted, RoleOwner, ReasonUnauthorizedRole},
		{"system may not cancel confirmed", models.BookingStatusConfirmed, models.PaymentStatusPaid, models.BookingStatusCancelled, RoleSystem, ReasonUnauthorizedRole},
		{"unpaid booking cannot complete", models.BookingStatusConfirmed, models.PaymentStatusPending, models.BookingStatusCompleted, RoleSystem, ReasonPreconditionFailed},
		{"refunded booking cannot complete", models.BookingStatusConfirmed, models.PaymentStatusRefunded, models.BookingStatusCompleted, RoleAdmin, ReasonPreconditionFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTransition(bookingIn(tc.from, tc.payment), tc.to, tc.role)
			if assert.NotNil(t, err) {
				assert.Equal(t, tc.wantReason, err.Reason)
				assert.Equal(t, tc.from, err.From)
				assert.Equal(t, tc.to, err.To)
			}
		})
	}
}

func TestValidateTransitionUnknownRole(t *testing.T) {
	err := ValidateTransition(bookingIn(models.BookingStatusPending, models.PaymentStatusPending), models.BookingStatusConfirmed, Role("intruder"))
	if assert.NotNil(t, err) {
		assert.Equal(t, ReasonUnauthorizedRole, err.Reason)
	}
}
