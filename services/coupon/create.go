package coupon

import (
	"context"
	"errors"
	"time"

	couponRepo "rentora/database/repository/coupon"
	"rentora/models"

	"github.com/google/uuid"
)

// CreateCouponRequest carries the external inputs of coupon creation.
type CreateCouponRequest struct {
	Code              string   `json:"code"`
	Type              string   `json:"type"`
	Value             float64  `json:"value"`
	MaxDiscountAmount *float64 `json:"maxDiscountAmount,omitempty"`
	MinAmount         float64  `json:"minAmount"`
	ValidFrom         string   `json:"validFrom"` // "YYYY-MM-DD"
	ValidUntil        string   `json:"validUntil"`
	MaxUses           *int     `json:"maxUses,omitempty"`
	MaxUsesPerUser    int      `json:"maxUsesPerUser"`
	AppliesTo         string   `json:"appliesTo"`
	AllowedUserIDs    []string `json:"allowedUserIds,omitempty"`
}

// CreateCoupon registers a new coupon. Admin-only at the edge; the unique code
// index is the backstop against racing duplicate codes.
func (s *DefaultCouponService) CreateCoupon(ctx context.Context, req CreateCouponRequest) (*models.Coupon, error) {
	if req.Code == "" {
		return nil, NewCouponError(CodeInvalidCoupon, "code is required")
	}
	if req.Type != models.CouponTypePercentage && req.Type != models.CouponTypeFixed {
		return nil, NewCouponError(CodeInvalidCoupon, "type must be percentage or fixed")
	}
	if req.Value <= 0 {
		return nil, NewCouponError(CodeInvalidCoupon, "value must be positive")
	}
	if req.Type == models.CouponTypePercentage && req.Value > 100 {
		return nil, NewCouponError(CodeInvalidCoupon, "percentage value cannot exceed 100")
	}
	if err := models.ValidateDateRange(req.ValidFrom, req.ValidUntil); err != nil {
		return nil, NewCouponError(CodeInvalidCoupon, err.Error())
	}
	if req.MaxUses != nil && *req.MaxUses <= 0 {
		return nil, NewCouponError(CodeInvalidCoupon, "maxUses must be positive when set")
	}

	appliesTo := req.AppliesTo
	if appliesTo == "" {
		appliesTo = models.CouponAppliesAny
	}
	switch appliesTo {
	case models.CouponAppliesAny, models.CouponAppliesProperty, models.CouponAppliesVehicle:
	default:
		return nil, NewCouponError(CodeInvalidCoupon, "appliesTo must be any, property or vehicle")
	}

	from, _ := time.Parse(models.DateLayout, req.ValidFrom)
	until, _ := time.Parse(models.DateLayout, req.ValidUntil)
	// The coupon stays usable through the whole final day.
	until = until.Add(24*time.Hour - time.Second)

	c := &models.Coupon{
		ID:                uuid.New().String(),
		Code:              req.Code,
		Type:              req.Type,
		Value:             req.Value,
		MaxDiscountAmount: req.MaxDiscountAmount,
		MinAmount:         req.MinAmount,
		ValidFrom:         from,
		ValidUntil:        until,
		MaxUses:           req.MaxUses,
		MaxUsesPerUser:    req.MaxUsesPerUser,
		AppliesTo:         appliesTo,
		AllowedUserIDs:    req.AllowedUserIDs,
		Active:            true,
		CreatedAt:         time.Now(),
	}
	if err := s.Coupons.Create(ctx, c); err != nil {
		if errors.Is(err, couponRepo.ErrDuplicateCode) {
			return nil, NewCouponError(CodeInvalidCoupon, "coupon code already exists")
		}
		return nil, err
	}
	return c, nil
}
