package models

// AlertPayload is the task payload for fire-and-forget owner/user alerts
// enqueued after a booking transaction commits.
type AlertPayload struct {
	Target    string  `json:"target"` // "owner" or "user"
	ID        string  `json:"id"`
	BookingID string  `json:"bookingId,omitempty"`
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	Amount    float64 `json:"amount,omitempty"`
}
