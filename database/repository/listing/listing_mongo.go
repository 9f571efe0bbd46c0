package listingRepo

import (
	"context"
	"errors"
	"fmt"

	"rentora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when the referenced listing does not exist.
var ErrNotFound = errors.New("listing not found")

func (repo *mongoListingRepo) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	var p models.Property
	err := repo.propertyColl.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get property %s: %w", id, err)
	}
	return &p, nil
}

func (repo *mongoListingRepo) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	var v models.Vehicle
	err := repo.vehicleColl.FindOne(ctx, bson.M{"id": id}).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get vehicle %s: %w", id, err)
	}
	return &v, nil
}

func (repo *mongoListingRepo) OwnerOf(ctx context.Context, ref models.AssetRef) (string, error) {
	switch ref.Type {
	case models.ListingTypeProperty:
		p, err := repo.GetProperty(ctx, ref.ID)
		if err != nil {
			return "", err
		}
		return p.OwnerID, nil
	case models.ListingTypeVehicle:
		v, err := repo.GetVehicle(ctx, ref.ID)
		if err != nil {
			return "", err
		}
		return v.OwnerID, nil
	}
	return "", fmt.Errorf("owner of %q: unknown listing type", ref.Type)
}

func (repo *mongoListingRepo) PriceOf(ctx context.Context, ref models.AssetRef) (float64, error) {
	switch ref.Type {
	case models.ListingTypeProperty:
		p, err := repo.GetProperty(ctx, ref.ID)
		if err != nil {
			return 0, err
		}
		return p.PricePerNight, nil
	case models.ListingTypeVehicle:
		v, err := repo.GetVehicle(ctx, ref.ID)
		if err != nil {
			return 0, err
		}
		return v.PricePerDay, nil
	}
	return 0, fmt.Errorf("price of %q: unknown listing type", ref.Type)
}

func (repo *mongoListingRepo) EnsureIndexes(ctx context.Context) error {
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := repo.propertyColl.Indexes().CreateOne(ctx, idx); err != nil {
		return fmt.Errorf("create properties indexes: %w", err)
	}
	idx = mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := repo.vehicleColl.Indexes().CreateOne(ctx, idx); err != nil {
		return fmt.Errorf("create vehicles indexes: %w", err)
	}
	return nil
}
