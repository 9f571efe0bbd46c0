package handlers

import (
	"net/http"

	"rentora/middleware"
	"rentora/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle over HTTP. Request shaping and
// auth extraction live here; every decision belongs to the service.
type BookingHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

func caller(c *gin.Context) (string, booking.Role) {
	return c.GetString(middleware.CtxCallerID), booking.Role(c.GetString(middleware.CtxCallerRole))
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "code": "missing_fields", "details": err.Error()})
		return
	}
	callerID, _ := caller(c)
	req.UserID = callerID

	b, err := h.Svc.CreateBooking(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": b})
}

// ApproveBooking handles POST /api/bookings/:bookingID/approve.
func (h *BookingHandler) ApproveBooking(c *gin.Context) {
	callerID, role := caller(c)
	bookingID := c.Param("bookingID")

	if err := h.Svc.ApproveBooking(c.Request.Context(), bookingID, callerID, role); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "confirmed", "bookingId": bookingID})
}

// RejectBooking handles POST /api/bookings/:bookingID/reject.
func (h *BookingHandler) RejectBooking(c *gin.Context) {
	callerID, role := caller(c)
	bookingID := c.Param("bookingID")

	if err := h.Svc.RejectBooking(c.Request.Context(), bookingID, callerID, role); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled", "bookingId": bookingID})
}

// CancelBooking handles POST /api/bookings/:bookingID/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	callerID, role := caller(c)
	bookingID := c.Param("bookingID")

	wasConfirmed, err := h.Svc.CancelBooking(c.Request.Context(), bookingID, callerID, role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled", "bookingId": bookingID, "wasConfirmed": wasConfirmed})
}

// CompleteBooking handles POST /api/bookings/:bookingID/complete.
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	_, role := caller(c)
	bookingID := c.Param("bookingID")

	if err := h.Svc.CompleteBooking(c.Request.Context(), bookingID, role); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "completed", "bookingId": bookingID})
}

// RecordPayment handles POST /api/bookings/:bookingID/payment. The payment
// collaborator reports its verdict here.
func (h *BookingHandler) RecordPayment(c *gin.Context) {
	var input struct {
		PaymentStatus string `json:"paymentStatus" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "code": "missing_fields", "details": err.Error()})
		return
	}
	_, role := caller(c)
	bookingID := c.Param("bookingID")

	if err := h.Svc.RecordPayment(c.Request.Context(), bookingID, input.PaymentStatus, role); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookingId": bookingID, "paymentStatus": input.PaymentStatus})
}

// ListMyBookings handles GET /api/bookings.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	callerID, _ := caller(c)

	bookings, err := h.Svc.ListUserBookings(c.Request.Context(), callerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CheckOverlap handles GET /api/bookings/:bookingID/overlap. Advisory only.
func (h *BookingHandler) CheckOverlap(c *gin.Context) {
	callerID, _ := caller(c)
	bookingID := c.Param("bookingID")

	report, err := h.Svc.CheckOverlap(c.Request.Context(), bookingID, callerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// OwnerBalance handles GET /api/owners/me/balance.
func (h *BookingHandler) OwnerBalance(c *gin.Context) {
	callerID, _ := caller(c)

	balance, err := h.Svc.OwnerBalance(c.Request.Context(), callerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// ListBlockedDates handles GET /api/listings/:listingType/:listingID/blocked-dates.
func (h *BookingHandler) ListBlockedDates(c *gin.Context) {
	listingType := c.Param("listingType")
	listingID := c.Param("listingID")
	from := c.Query("from")
	to := c.Query("to")

	dates, err := h.Svc.ListBlockedDates(c.Request.Context(), listingID, listingType, from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dates)
}
