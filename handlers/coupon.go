package handlers

import (
	"net/http"

	"rentora/services/coupon"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CouponHandler exposes coupon validation and redemption over HTTP.
type CouponHandler struct {
	Svc    coupon.CouponService
	Logger *zap.Logger
}

func NewCouponHandler(svc coupon.CouponService, logger *zap.Logger) *CouponHandler {
	return &CouponHandler{Svc: svc, Logger: logger}
}

// CreateCoupon handles POST /api/coupons. Admin only.
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req coupon.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "code": "missing_fields", "details": err.Error()})
		return
	}

	created, err := h.Svc.CreateCoupon(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"coupon": created})
}

// ValidateCoupon handles POST /api/coupons/validate. Read-only preview.
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	var input struct {
		Code      string  `json:"code" binding:"required"`
		Amount    float64 `json:"amount" binding:"required"`
		AssetType string  `json:"assetType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "code": "missing_fields", "details": err.Error()})
		return
	}
	callerID, _ := caller(c)

	res, err := h.Svc.ValidateCoupon(c.Request.Context(), input.Code, callerID, input.Amount, input.AssetType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ApplyCoupon handles POST /api/bookings/:bookingID/coupon.
func (h *CouponHandler) ApplyCoupon(c *gin.Context) {
	var input struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "code": "missing_fields", "details": err.Error()})
		return
	}
	callerID, _ := caller(c)
	bookingID := c.Param("bookingID")

	res, err := h.Svc.ApplyCoupon(c.Request.Context(), bookingID, input.Code, callerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
