package coupon

import "fmt"

// Machine-readable coupon failure codes.
const (
	CodeInvalidCoupon  = "invalid_coupon"
	CodeNotEligible    = "not_eligible"
	CodeExhausted      = "exhausted"
	CodeAlreadyApplied = "already_applied"
)

// CouponError reports a business-level redemption failure.
type CouponError struct {
	Code    string
	Message string
}

func (e *CouponError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewCouponError builds a CouponError.
func NewCouponError(code, msg string) error {
	return &CouponError{Code: code, Message: msg}
}
