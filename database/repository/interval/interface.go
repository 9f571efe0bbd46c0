// File: database/repository/interval/interface.go
package intervalRepo

import (
	"context"

	"rentora/database"
	"rentora/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// IntervalRepository is the interval store: it persists the blocked date
// ranges of each listing and answers overlap queries. All methods accept the
// caller's context, which may be a session context when running inside a
// booking transaction.
type IntervalRepository interface {
	// FindConflict returns the first blocked interval of the listing that
	// overlaps [start, end], or nil when the range is clear.
	FindConflict(ctx context.Context, listingID, listingType, start, end string) (*models.BlockedInterval, error)

	// Insert adds a blocked interval. The overlap check and the insert are a
	// single conditional update; Insert returns ErrIntervalConflict when any
	// existing interval overlaps.
	Insert(ctx context.Context, listingID, listingType string, iv models.BlockedInterval) error

	// RemoveByBooking deletes the interval created for a booking. Removing a
	// non-existent interval is not an error.
	RemoveByBooking(ctx context.Context, bookingID string) error

	// GetCalendar returns the full calendar document for a listing, or an
	// empty calendar when none exists yet.
	GetCalendar(ctx context.Context, listingID, listingType string) (*models.ListingCalendar, error)

	EnsureIndexes(ctx context.Context) error
}

type mongoIntervalRepo struct {
	coll *mongo.Collection
}

// NewMongoIntervalRepo constructs the MongoDB-backed interval store.
func NewMongoIntervalRepo() IntervalRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoIntervalRepo{
		coll: db.Collection("listing_calendars"),
	}
}
