package couponRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (repo *mongoCouponRepo) EnsureIndexes(ctx context.Context) error {
	couponIdx := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, couponIdx); err != nil {
		return fmt.Errorf("create coupons indexes: %w", err)
	}

	// One redemption per (coupon, booking): the backstop against double
	// discounts even if the conditional increment were ever bypassed.
	redemptionIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "coupon_id", Value: 1},
			{Key: "booking_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	if _, err := repo.redemptionColl.Indexes().CreateOne(ctx, redemptionIdx); err != nil {
		return fmt.Errorf("create coupon_redemptions indexes: %w", err)
	}
	return nil
}
