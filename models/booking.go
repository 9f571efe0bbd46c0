package models

import "time"

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Payment statuses.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// Booking represents one request to rent a listing for an inclusive date range.
type Booking struct {
	ID             string    `bson:"id" json:"id"`
	UserID         string    `bson:"user_id" json:"user_id"`                 // Requesting user
	OwnerID        string    `bson:"owner_id" json:"owner_id"`               // Owner of the listing
	ListingID      string    `bson:"listing_id" json:"listing_id"`           // Property or vehicle ID
	ListingType    string    `bson:"listing_type" json:"listing_type"`       // "property" or "vehicle"
	StartDate      string    `bson:"start_date" json:"start_date"`           // "YYYY-MM-DD", inclusive
	EndDate        string    `bson:"end_date" json:"end_date"`               // "YYYY-MM-DD", inclusive
	OriginalPrice  float64   `bson:"original_price" json:"original_price"`
	DiscountAmount float64   `bson:"discount_amount" json:"discount_amount"`
	TotalPrice     float64   `bson:"total_price" json:"total_price"`
	Status         string    `bson:"status" json:"status"`
	PaymentStatus  string    `bson:"payment_status" json:"payment_status"`
	CouponID       string    `bson:"coupon_id,omitempty" json:"coupon_id,omitempty"`
	CouponCode     string    `bson:"coupon_code,omitempty" json:"coupon_code,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// IsTerminal reports whether the booking can no longer change status.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}
