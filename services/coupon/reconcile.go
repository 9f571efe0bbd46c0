package coupon

import (
	"context"

	"rentora/utils"

	"go.uber.org/zap"
)

// Reconcile recounts every coupon's redemption records and rewrites
// used_count where the counter drifted. Redemption records are the ground
// truth; the counter is a performance artifact.
func (s *DefaultCouponService) Reconcile(ctx context.Context) error {
	logger := utils.GetLogger()

	coupons, err := s.Coupons.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, c := range coupons {
		n, err := s.Coupons.CountRedemptions(ctx, c.ID)
		if err != nil {
			return err
		}
		if int64(c.UsedCount) == n {
			continue
		}
		logger.Warn("coupon used_count drift",
			zap.String("couponId", c.ID),
			zap.Int("usedCount", c.UsedCount),
			zap.Int64("redemptions", n),
		)
		if err := s.Coupons.SetUsedCount(ctx, c.ID, int(n)); err != nil {
			return err
		}
	}
	return nil
}
