package coupon

import (
	"math"

	"rentora/models"
)

// ComputeDiscount returns the discount a coupon grants on the given amount.
// Percentage discounts are floored, then capped by the coupon's
// maxDiscountAmount when set; every discount is finally capped by the amount
// itself so the price can never go negative.
func ComputeDiscount(c *models.Coupon, amount float64) float64 {
	var discount float64
	switch c.Type {
	case models.CouponTypePercentage:
		discount = math.Floor(amount * c.Value / 100)
		if c.MaxDiscountAmount != nil && discount > *c.MaxDiscountAmount {
			discount = *c.MaxDiscountAmount
		}
	case models.CouponTypeFixed:
		discount = c.Value
	default:
		return 0
	}
	if discount > amount {
		discount = amount
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}
