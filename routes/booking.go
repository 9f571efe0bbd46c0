package routes

import (
	"rentora/handlers"
	"rentora/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the endpoints for the booking lifecycle.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler, ch *handlers.CouponHandler) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.AuthMiddleware())

		bookingGroup.POST("", middleware.RequireRoles("user", "admin"), bh.CreateBooking)
		bookingGroup.GET("", bh.ListMyBookings)
		bookingGroup.GET("/:bookingID/overlap", bh.CheckOverlap)

		bookingGroup.POST("/:bookingID/approve", middleware.RequireRoles("owner", "admin", "system"), bh.ApproveBooking)
		bookingGroup.POST("/:bookingID/reject", middleware.RequireRoles("owner", "admin"), bh.RejectBooking)
		bookingGroup.POST("/:bookingID/cancel", middleware.RequireRoles("user", "owner", "admin"), bh.CancelBooking)
		bookingGroup.POST("/:bookingID/complete", middleware.RequireRoles("system", "admin"), bh.CompleteBooking)
		bookingGroup.POST("/:bookingID/payment", middleware.RequireRoles("system", "admin"), bh.RecordPayment)

		bookingGroup.POST("/:bookingID/coupon", middleware.RequireRoles("user", "admin"), ch.ApplyCoupon)
	}
}

// RegisterCouponRoutes sets up coupon management and the read-only preview.
func RegisterCouponRoutes(r *gin.Engine, ch *handlers.CouponHandler) {
	couponGroup := r.Group("/api/coupons")
	{
		couponGroup.Use(middleware.AuthMiddleware())
		couponGroup.POST("", middleware.RequireRoles("admin"), ch.CreateCoupon)
		couponGroup.POST("/validate", ch.ValidateCoupon)
	}
}

// RegisterOwnerRoutes sets up the owner-facing balance view.
func RegisterOwnerRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	ownerGroup := r.Group("/api/owners")
	{
		ownerGroup.Use(middleware.AuthMiddleware())
		ownerGroup.GET("/me/balance", middleware.RequireRoles("owner", "admin"), bh.OwnerBalance)
	}
}

// RegisterListingRoutes sets up the public listing calendar views.
func RegisterListingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	listingGroup := r.Group("/api/listings")
	{
		listingGroup.GET("/:listingType/:listingID/blocked-dates", bh.ListBlockedDates)
	}
}
