package coupon

import (
	"context"
	"errors"
	"time"

	couponRepo "rentora/database/repository/coupon"
)

type timeSource func() time.Time

// Now is overridable in tests; production uses the wall clock.
var Now timeSource = time.Now

// ValidateCoupon previews a coupon against an amount without mutating
// anything. A coupon that fails a rule yields Valid=false with the failure
// code, not an error; errors are reserved for storage trouble.
func (s *DefaultCouponService) ValidateCoupon(ctx context.Context, code, userID string, amount float64, assetType string) (*ValidationResult, error) {
	c, err := s.Coupons.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, couponRepo.ErrNotFound) {
			return &ValidationResult{Valid: false, Reason: CodeInvalidCoupon}, nil
		}
		return nil, err
	}

	reason, err := s.check(ctx, c, userID, amount, assetType, Now)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		return &ValidationResult{Valid: false, Reason: reason}, nil
	}
	return &ValidationResult{
		Valid:           true,
		DiscountPreview: ComputeDiscount(c, amount),
	}, nil
}
