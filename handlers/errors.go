package handlers

import (
	"errors"
	"net/http"

	bookingRepo "rentora/database/repository/booking"
	listingRepo "rentora/database/repository/listing"
	"rentora/models"
	"rentora/services/booking"
	"rentora/services/coupon"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps a service error to a stable machine-readable
// response. Nothing internal leaks beyond the conflicting booking id, which
// the caller needs to act.
func respondServiceError(c *gin.Context, err error) {
	var vErr *booking.ValidationError
	if errors.As(err, &vErr) {
		status := http.StatusBadRequest
		if vErr.Code == "asset_not_found" {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": vErr.Message, "code": vErr.Code})
		return
	}

	var authErr *booking.AuthorizationError
	if errors.As(err, &authErr) {
		c.JSON(http.StatusForbidden, gin.H{"error": authErr.Message, "code": "unauthorized"})
		return
	}

	var stErr *booking.StateError
	if errors.As(err, &stErr) {
		code := stErr.Reason
		terminal := stErr.From == models.BookingStatusCompleted || stErr.From == models.BookingStatusCancelled
		if terminal && (stErr.Reason == booking.ReasonInvalidTransition || stErr.Reason == booking.ReasonSameState) {
			code = "already_terminal"
		}
		c.JSON(http.StatusConflict, gin.H{"error": stErr.Message, "code": code})
		return
	}

	var dcErr *booking.DateConflictError
	if errors.As(err, &dcErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":                "requested dates conflict with an existing confirmed booking",
			"code":                 "date_conflict",
			"conflictingBookingId": dcErr.ConflictingBookingID,
		})
		return
	}

	var admErr *booking.AdmissionError
	if errors.As(err, &admErr) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": admErr.Message, "code": "admission_refused"})
		return
	}

	var cpErr *coupon.CouponError
	if errors.As(err, &cpErr) {
		status := http.StatusBadRequest
		switch cpErr.Code {
		case coupon.CodeExhausted, coupon.CodeAlreadyApplied:
			status = http.StatusConflict
		case coupon.CodeNotEligible:
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": cpErr.Message, "code": cpErr.Code})
		return
	}

	var trErr *booking.TransientError
	if errors.As(err, &trErr) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporary storage contention, please retry", "code": "transient"})
		return
	}

	if errors.Is(err, bookingRepo.ErrNotFound) || errors.Is(err, listingRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "code": "not_found"})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": "internal"})
}
