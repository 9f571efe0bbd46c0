package models

import "time"

// BlockedInterval marks a listing unavailable for an inclusive date range.
// Exactly one exists per confirmed booking.
type BlockedInterval struct {
	BookingID string    `bson:"booking_id" json:"booking_id"`
	Start     string    `bson:"start" json:"start"` // "YYYY-MM-DD"
	End       string    `bson:"end" json:"end"`     // "YYYY-MM-DD"
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// ListingCalendar is the per-listing document holding every blocked interval
// for one (listingID, listingType) pair. Keeping the intervals embedded in a
// single document lets the conflict check and the insert happen as one
// conditional update.
type ListingCalendar struct {
	ListingID   string            `bson:"listing_id" json:"listing_id"`
	ListingType string            `bson:"listing_type" json:"listing_type"`
	Intervals   []BlockedInterval `bson:"intervals" json:"intervals"`
}
