package models

import "time"

// Coupon discount types.
const (
	CouponTypePercentage = "percentage"
	CouponTypeFixed      = "fixed"
)

// Coupon asset-type applicability.
const (
	CouponAppliesAny      = "any"
	CouponAppliesProperty = ListingTypeProperty
	CouponAppliesVehicle  = ListingTypeVehicle
)

// Coupon is a discount voucher with global and per-user usage caps.
// UsedCount never exceeds MaxUses (when set): the cap is enforced by a
// conditional atomic increment at the storage layer, not by read-then-write.
type Coupon struct {
	ID                string    `bson:"id" json:"id"`
	Code              string    `bson:"code" json:"code"`
	Type              string    `bson:"type" json:"type"` // "percentage" or "fixed"
	Value             float64   `bson:"value" json:"value"`
	MaxDiscountAmount *float64  `bson:"max_discount_amount,omitempty" json:"max_discount_amount,omitempty"`
	MinAmount         float64   `bson:"min_amount" json:"min_amount"`
	ValidFrom         time.Time `bson:"valid_from" json:"valid_from"`
	ValidUntil        time.Time `bson:"valid_until" json:"valid_until"`
	MaxUses           *int      `bson:"max_uses,omitempty" json:"max_uses,omitempty"` // nil = unlimited
	UsedCount         int       `bson:"used_count" json:"used_count"`
	MaxUsesPerUser    int       `bson:"max_uses_per_user" json:"max_uses_per_user"`
	AppliesTo         string    `bson:"applies_to" json:"applies_to"` // "any", "property" or "vehicle"
	AllowedUserIDs    []string  `bson:"allowed_user_ids,omitempty" json:"allowed_user_ids,omitempty"` // empty = public
	Active            bool      `bson:"active" json:"active"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
}

// EligibleUser reports whether the coupon is public or lists the user.
func (c *Coupon) EligibleUser(userID string) bool {
	if len(c.AllowedUserIDs) == 0 {
		return true
	}
	for _, id := range c.AllowedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// CouponRedemption is the immutable audit record of one coupon applied to one
// booking. The unique (coupon_id, booking_id) index is the backstop against
// double discounts.
type CouponRedemption struct {
	ID        string    `bson:"id" json:"id"`
	CouponID  string    `bson:"coupon_id" json:"coupon_id"`
	BookingID string    `bson:"booking_id" json:"booking_id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Discount  float64   `bson:"discount" json:"discount"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
