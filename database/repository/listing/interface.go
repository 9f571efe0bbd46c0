// File: database/repository/listing/interface.go
package listingRepo

import (
	"context"

	"rentora/database"
	"rentora/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ListingRepository resolves asset refs to their owner and unit price. It is
// the only place that knows which collection backs each listing variant; the
// booking service never branches on the type name.
type ListingRepository interface {
	OwnerOf(ctx context.Context, ref models.AssetRef) (string, error)
	PriceOf(ctx context.Context, ref models.AssetRef) (float64, error)
	GetProperty(ctx context.Context, id string) (*models.Property, error)
	GetVehicle(ctx context.Context, id string) (*models.Vehicle, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoListingRepo struct {
	propertyColl *mongo.Collection
	vehicleColl  *mongo.Collection
}

// NewMongoListingRepo constructs the MongoDB-backed listing lookup.
func NewMongoListingRepo() ListingRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoListingRepo{
		propertyColl: db.Collection("properties"),
		vehicleColl:  db.Collection("vehicles"),
	}
}
