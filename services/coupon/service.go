package coupon

import (
	"context"

	"rentora/database"
	bookingRepo "rentora/database/repository/booking"
	couponRepo "rentora/database/repository/coupon"
	"rentora/models"
)

// CouponService validates and redeems discount coupons. Redemption enforces
// the global and per-user caps with conditional atomic updates; validation is
// read-only and suitable for UI previews.
type CouponService interface {
	CreateCoupon(ctx context.Context, req CreateCouponRequest) (*models.Coupon, error)
	ValidateCoupon(ctx context.Context, code, userID string, amount float64, assetType string) (*ValidationResult, error)
	ApplyCoupon(ctx context.Context, bookingID, code, userID string) (*ApplyResult, error)
	// Reconcile recomputes every coupon's used_count from its redemption
	// records, correcting drift. Diagnostic self-healing, not a hot path.
	Reconcile(ctx context.Context) error
}

// DefaultCouponService is the production implementation.
type DefaultCouponService struct {
	Coupons  couponRepo.CouponRepository
	Bookings bookingRepo.BookingRepository
	Txn      database.TxnRunner
}

// ValidationResult is the read-only preview of a coupon against an amount.
type ValidationResult struct {
	Valid           bool    `json:"valid"`
	Reason          string  `json:"reason,omitempty"`
	DiscountPreview float64 `json:"discountPreview"`
}

// ApplyResult is the price breakdown after a successful redemption.
type ApplyResult struct {
	OriginalPrice  float64 `json:"originalPrice"`
	DiscountAmount float64 `json:"discountAmount"`
	FinalPrice     float64 `json:"finalPrice"`
}

// check runs every read-only eligibility rule. It returns a failure code, or
// "" when the coupon is usable by the user for the amount and asset type.
func (s *DefaultCouponService) check(ctx context.Context, c *models.Coupon, userID string, amount float64, assetType string, now timeSource) (string, error) {
	if !c.Active {
		return CodeInvalidCoupon, nil
	}
	t := now()
	if t.Before(c.ValidFrom) || t.After(c.ValidUntil) {
		return CodeInvalidCoupon, nil
	}
	if c.MaxUses != nil && c.UsedCount >= *c.MaxUses {
		return CodeExhausted, nil
	}
	if amount < c.MinAmount {
		return CodeNotEligible, nil
	}
	if c.AppliesTo != models.CouponAppliesAny && c.AppliesTo != assetType {
		return CodeNotEligible, nil
	}
	if !c.EligibleUser(userID) {
		return CodeNotEligible, nil
	}
	if c.MaxUsesPerUser > 0 {
		used, err := s.Coupons.CountRedemptionsByUser(ctx, c.ID, userID)
		if err != nil {
			return "", err
		}
		if used >= int64(c.MaxUsesPerUser) {
			return CodeNotEligible, nil
		}
	}
	return "", nil
}
