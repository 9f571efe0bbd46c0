package models

import "time"

// Rolling earnings-history window sizes.
const (
	DailyBuckets   = 30
	MonthlyBuckets = 12
	YearlyBuckets  = 5
)

// EarningsBucket is one period's realized earnings. Period is "YYYY-MM-DD"
// for daily, "YYYY-MM" for monthly and "YYYY" for yearly buckets.
type EarningsBucket struct {
	Period string  `bson:"period" json:"period"`
	Amount float64 `bson:"amount" json:"amount"`
}

// Balance holds per-owner monetary counters. Pending balance tracks money
// promised by confirmed-but-not-completed bookings; it may go transiently
// negative after a cancellation, which is alerted, never blocked.
type Balance struct {
	OwnerID          string           `bson:"owner_id" json:"owner_id"`
	PendingBalance   float64          `bson:"pending_balance" json:"pending_balance"`
	AvailableBalance float64          `bson:"available_balance" json:"available_balance"`
	TotalEarnings    float64          `bson:"total_earnings" json:"total_earnings"`
	Daily            []EarningsBucket `bson:"daily" json:"daily"`     // oldest first
	Monthly          []EarningsBucket `bson:"monthly" json:"monthly"` // oldest first
	Yearly           []EarningsBucket `bson:"yearly" json:"yearly"`   // oldest first
	UpdatedAt        time.Time        `bson:"updated_at" json:"updated_at"`
}
