package booking

import (
	"context"

	"rentora/database"
	balanceRepo "rentora/database/repository/balance"
	bookingRepo "rentora/database/repository/booking"
	intervalRepo "rentora/database/repository/interval"
	listingRepo "rentora/database/repository/listing"
	"rentora/models"
	"rentora/services/coupon"
	"rentora/services/notification"

	"github.com/go-redis/redis/v8"
)

// BookingService orchestrates the booking lifecycle: creation, the
// role-gated state transitions with their atomic side effects, and the
// read-only availability views.
type BookingService interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	ApproveBooking(ctx context.Context, bookingID, callerID string, role Role) error
	RejectBooking(ctx context.Context, bookingID, callerID string, role Role) error
	// CancelBooking reports whether the cancelled booking had been confirmed
	// (and therefore released an interval and pending funds).
	CancelBooking(ctx context.Context, bookingID, callerID string, role Role) (wasConfirmed bool, err error)
	CompleteBooking(ctx context.Context, bookingID string, role Role) error
	// RecordPayment stores the external payment collaborator's verdict.
	RecordPayment(ctx context.Context, bookingID, paymentStatus string, role Role) error
	CheckOverlap(ctx context.Context, bookingID, callerID string) (*OverlapReport, error)
	ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error)
	ListBlockedDates(ctx context.Context, listingID, listingType, from, to string) (*BlockedDates, error)
	// OwnerBalance returns the owner's balance ledger, including the rolling
	// earnings history.
	OwnerBalance(ctx context.Context, ownerID string) (*models.Balance, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Bookings  bookingRepo.BookingRepository
	Intervals intervalRepo.IntervalRepository
	Balances  balanceRepo.BalanceRepository
	Listings  listingRepo.ListingRepository
	Coupons   coupon.CouponService
	Alerts    notification.AlertPublisher
	Cache     *redis.Client
	Txn       database.TxnRunner

	// Admission-control knobs (0 disables the respective check).
	MaxActiveBookingsPerUser int64
	CooldownSeconds          int
}

// CreateBookingRequest carries the external inputs of createBooking.
type CreateBookingRequest struct {
	UserID     string          `json:"userId"`
	Asset      models.AssetRef `json:"asset"`
	StartDate  string          `json:"startDate"`
	EndDate    string          `json:"endDate"`
	CouponCode string          `json:"couponCode,omitempty"`
}

// OverlapReport is the advisory pre-approval view of competing pending
// bookings. It holds no locks and must never be treated as authoritative;
// only the transactional check at approval time is.
type OverlapReport struct {
	HasOverlap          bool             `json:"hasOverlap"`
	OverlappingBookings []models.Booking `json:"overlappingBookings"`
}

// BlockedDates is the read-only calendar view for a listing.
type BlockedDates struct {
	Intervals     []models.BlockedInterval `json:"intervals"`
	ExpandedDates []string                 `json:"expandedDates"`
}

// wrapTransient converts a post-retry transient storage failure into the
// caller-facing TransientError; business errors pass through untouched.
func wrapTransient(err error) error {
	if err == nil {
		return nil
	}
	if database.IsTransient(err) {
		return &TransientError{Err: err}
	}
	return err
}
