package booking

import (
	"context"
	"errors"
	"time"

	listingRepo "rentora/database/repository/listing"
	"rentora/models"

	"github.com/google/uuid"
)

// CreateBooking validates the request, resolves the listing's owner and unit
// price, and persists the booking in pending. Creation touches neither the
// interval store nor any balance: those move only on confirmation.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	if req.UserID == "" {
		return nil, NewValidationError("missing_fields", "userId is required")
	}
	if err := req.Asset.Validate(); err != nil {
		return nil, NewValidationError("missing_fields", err.Error())
	}
	if err := models.ValidateDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, NewValidationError("invalid_date_range", err.Error())
	}

	ownerID, err := s.Listings.OwnerOf(ctx, req.Asset)
	if err != nil {
		if errors.Is(err, listingRepo.ErrNotFound) {
			return nil, NewValidationError("asset_not_found", "referenced listing does not exist")
		}
		return nil, err
	}
	if ownerID == req.UserID {
		return nil, NewValidationError("missing_fields", "cannot book your own listing")
	}
	unitPrice, err := s.Listings.PriceOf(ctx, req.Asset)
	if err != nil {
		return nil, err
	}

	if err := s.admit(ctx, req.UserID); err != nil {
		return nil, err
	}

	price := unitPrice * float64(models.DaysInclusive(req.StartDate, req.EndDate))
	now := time.Now()
	b := &models.Booking{
		ID:            uuid.New().String(),
		UserID:        req.UserID,
		OwnerID:       ownerID,
		ListingID:     req.Asset.ID,
		ListingType:   req.Asset.Type,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		OriginalPrice: price,
		TotalPrice:    price,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// An unusable coupon fails creation before anything is persisted; a race
	// on the last slot is caught again by ApplyCoupon's conditional
	// increment below.
	if req.CouponCode != "" {
		res, err := s.Coupons.ValidateCoupon(ctx, req.CouponCode, req.UserID, b.OriginalPrice, b.ListingType)
		if err != nil {
			return nil, err
		}
		if !res.Valid {
			return nil, NewValidationError(res.Reason, "coupon cannot be applied to this booking")
		}
	}

	if err := s.Bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	if req.CouponCode != "" {
		if _, err := s.Coupons.ApplyCoupon(ctx, b.ID, req.CouponCode, req.UserID); err != nil {
			// The booking exists but the discount lost its race; hand the
			// pending booking back unpriced rather than silently absorbing
			// the coupon failure.
			return nil, err
		}
		return s.Bookings.GetByID(ctx, b.ID)
	}
	return b, nil
}
