package intervalRepo

import (
	"context"
	"errors"
	"fmt"

	"rentora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrIntervalConflict is returned when an insert would overlap an existing
// blocked interval.
var ErrIntervalConflict = errors.New("blocked interval conflict")

// overlapElem matches any stored interval overlapping [start, end]. Dates are
// "YYYY-MM-DD" strings, so BSON string comparison is chronological.
func overlapElem(start, end string) bson.M {
	return bson.M{
		"start": bson.M{"$lte": end},
		"end":   bson.M{"$gte": start},
	}
}

func (repo *mongoIntervalRepo) FindConflict(ctx context.Context, listingID, listingType, start, end string) (*models.BlockedInterval, error) {
	filter := bson.M{
		"listing_id":   listingID,
		"listing_type": listingType,
		"intervals":    bson.M{"$elemMatch": overlapElem(start, end)},
	}
	opts := options.FindOne().SetProjection(bson.M{
		"intervals.$": 1,
	})

	var doc models.ListingCalendar
	err := repo.coll.FindOne(ctx, filter, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find interval conflict: %w", err)
	}
	if len(doc.Intervals) == 0 {
		return nil, nil
	}
	return &doc.Intervals[0], nil
}

// Insert pushes the interval only if the calendar currently holds no
// overlapping interval. The filter carries the overlap predicate, so the
// check and the write are one atomic operation. When the calendar document
// does not exist yet the upsert creates it; two racing upserts collide on the
// unique (listing_id, listing_type) index and the loser reports a conflict,
// which the surrounding transaction retry turns into a proper re-check.
func (repo *mongoIntervalRepo) Insert(ctx context.Context, listingID, listingType string, iv models.BlockedInterval) error {
	filter := bson.M{
		"listing_id":   listingID,
		"listing_type": listingType,
		"intervals":    bson.M{"$not": bson.M{"$elemMatch": overlapElem(iv.Start, iv.End)}},
	}
	update := bson.M{
		"$push": bson.M{"intervals": iv},
	}

	res, err := repo.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrIntervalConflict
		}
		return fmt.Errorf("insert blocked interval: %w", err)
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrIntervalConflict
	}
	return nil
}

func (repo *mongoIntervalRepo) RemoveByBooking(ctx context.Context, bookingID string) error {
	_, err := repo.coll.UpdateMany(ctx,
		bson.M{"intervals.booking_id": bookingID},
		bson.M{"$pull": bson.M{"intervals": bson.M{"booking_id": bookingID}}},
	)
	if err != nil {
		return fmt.Errorf("remove blocked interval for booking %s: %w", bookingID, err)
	}
	return nil
}

func (repo *mongoIntervalRepo) GetCalendar(ctx context.Context, listingID, listingType string) (*models.ListingCalendar, error) {
	filter := bson.M{"listing_id": listingID, "listing_type": listingType}

	var doc models.ListingCalendar
	err := repo.coll.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return &models.ListingCalendar{ListingID: listingID, ListingType: listingType}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get listing calendar: %w", err)
	}
	return &doc, nil
}
