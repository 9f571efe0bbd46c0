package intervalRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the calendar indexes. The unique listing key makes
// concurrent first-interval upserts collide instead of duplicating the
// calendar document; the unique booking_id key guarantees at most one blocked
// interval per booking.
func (repo *mongoIntervalRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "listing_id", Value: 1},
				{Key: "listing_type", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "intervals.booking_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create listing_calendars indexes: %w", err)
	}
	return nil
}
