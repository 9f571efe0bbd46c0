package coupon

import (
	"context"
	"errors"
	"time"

	bookingRepo "rentora/database/repository/booking"
	couponRepo "rentora/database/repository/coupon"
	"rentora/models"

	"github.com/google/uuid"
)

// ApplyCoupon redeems a coupon onto a pending booking. Inside one storage
// transaction it (a) conditionally increments used_count — the cap check
// lives in that update's filter, so concurrent redemptions cannot oversell;
// (b) writes the discount onto the booking, conditional on it still being
// pending with no coupon attached; (c) records the redemption, whose unique (coupon, booking)
// index is the backstop against double discounts; (d) retires the coupon in
// the same transaction if this redemption consumed the last slot.
func (s *DefaultCouponService) ApplyCoupon(ctx context.Context, bookingID, code, userID string) (*ApplyResult, error) {
	c, err := s.Coupons.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, couponRepo.ErrNotFound) {
			return nil, NewCouponError(CodeInvalidCoupon, "no such coupon")
		}
		return nil, err
	}

	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, NewCouponError(CodeNotEligible, "booking belongs to another user")
	}
	if b.Status != models.BookingStatusPending {
		return nil, NewCouponError(CodeNotEligible, "coupon can only be applied to a pending booking")
	}
	if b.CouponID != "" {
		return nil, NewCouponError(CodeAlreadyApplied, "booking already carries a coupon")
	}

	if reason, err := s.check(ctx, c, userID, b.OriginalPrice, b.ListingType, Now); err != nil {
		return nil, err
	} else if reason != "" {
		return nil, NewCouponError(reason, "coupon not applicable")
	}

	discount := ComputeDiscount(c, b.OriginalPrice)
	final := b.OriginalPrice - discount

	err = s.Txn(ctx, func(ctx context.Context) error {
		if err := s.Coupons.IncrementUsage(ctx, c.ID); err != nil {
			if errors.Is(err, couponRepo.ErrCapReached) {
				return NewCouponError(CodeExhausted, "coupon usage cap reached")
			}
			return err
		}
		if err := s.Bookings.ApplyDiscount(ctx, b.ID, c.ID, c.Code, b.OriginalPrice, discount, final); err != nil {
			if errors.Is(err, bookingRepo.ErrCouponAttached) {
				return NewCouponError(CodeAlreadyApplied, "booking already carries a coupon")
			}
			if errors.Is(err, bookingRepo.ErrNotPending) {
				return NewCouponError(CodeNotEligible, "coupon can only be applied to a pending booking")
			}
			return err
		}
		redemption := &models.CouponRedemption{
			ID:        uuid.New().String(),
			CouponID:  c.ID,
			BookingID: b.ID,
			UserID:    userID,
			Discount:  discount,
			CreatedAt: time.Now(),
		}
		if err := s.Coupons.InsertRedemption(ctx, redemption); err != nil {
			if errors.Is(err, couponRepo.ErrDuplicateRedemption) {
				return NewCouponError(CodeAlreadyApplied, "coupon already redeemed for this booking")
			}
			return err
		}
		return s.Coupons.RetireIfExhausted(ctx, c.ID)
	})
	if err != nil {
		return nil, err
	}

	return &ApplyResult{
		OriginalPrice:  b.OriginalPrice,
		DiscountAmount: discount,
		FinalPrice:     final,
	}, nil
}
