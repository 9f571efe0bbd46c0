package couponRepo

import (
	"context"
	"errors"
	"fmt"

	"rentora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when no coupon matches the given code.
	ErrNotFound = errors.New("coupon not found")
	// ErrCapReached is returned when the conditional usage increment found
	// the coupon inactive or already at its cap.
	ErrCapReached = errors.New("coupon usage cap reached")
	// ErrDuplicateRedemption is returned when a redemption record already
	// exists for the (coupon, booking) pair.
	ErrDuplicateRedemption = errors.New("coupon already redeemed for booking")
	// ErrDuplicateCode is returned when a coupon with the same code exists.
	ErrDuplicateCode = errors.New("coupon code already exists")
)

func (repo *mongoCouponRepo) Create(ctx context.Context, c *models.Coupon) error {
	if _, err := repo.coll.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateCode
		}
		return fmt.Errorf("insert coupon: %w", err)
	}
	return nil
}

func (repo *mongoCouponRepo) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var c models.Coupon
	err := repo.coll.FindOne(ctx, bson.M{"code": code}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get coupon by code: %w", err)
	}
	return &c, nil
}

// IncrementUsage is the compare-and-increment: the cap check lives in the
// update filter, so two racing redemptions cannot both pass a stale read.
func (repo *mongoCouponRepo) IncrementUsage(ctx context.Context, couponID string) error {
	filter := bson.M{
		"id":     couponID,
		"active": true,
		"$or": []bson.M{
			{"max_uses": bson.M{"$exists": false}},
			{"max_uses": nil},
			{"$expr": bson.M{"$lt": []interface{}{"$used_count", "$max_uses"}}},
		},
	}
	res, err := repo.coll.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"used_count": 1}})
	if err != nil {
		return fmt.Errorf("increment coupon usage: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrCapReached
	}
	return nil
}

func (repo *mongoCouponRepo) RetireIfExhausted(ctx context.Context, couponID string) error {
	filter := bson.M{
		"id":       couponID,
		"active":   true,
		"max_uses": bson.M{"$ne": nil},
		"$expr":    bson.M{"$gte": []interface{}{"$used_count", "$max_uses"}},
	}
	if _, err := repo.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"active": false}}); err != nil {
		return fmt.Errorf("retire exhausted coupon: %w", err)
	}
	return nil
}

func (repo *mongoCouponRepo) InsertRedemption(ctx context.Context, r *models.CouponRedemption) error {
	if _, err := repo.redemptionColl.InsertOne(ctx, r); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateRedemption
		}
		return fmt.Errorf("insert coupon redemption: %w", err)
	}
	return nil
}

func (repo *mongoCouponRepo) CountRedemptions(ctx context.Context, couponID string) (int64, error) {
	n, err := repo.redemptionColl.CountDocuments(ctx, bson.M{"coupon_id": couponID})
	if err != nil {
		return 0, fmt.Errorf("count redemptions: %w", err)
	}
	return n, nil
}

func (repo *mongoCouponRepo) CountRedemptionsByUser(ctx context.Context, couponID, userID string) (int64, error) {
	n, err := repo.redemptionColl.CountDocuments(ctx, bson.M{"coupon_id": couponID, "user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("count redemptions by user: %w", err)
	}
	return n, nil
}

func (repo *mongoCouponRepo) ListAll(ctx context.Context) ([]models.Coupon, error) {
	cur, err := repo.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Coupon
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode coupons: %w", err)
	}
	return out, nil
}

func (repo *mongoCouponRepo) SetUsedCount(ctx context.Context, couponID string, n int) error {
	if _, err := repo.coll.UpdateOne(ctx,
		bson.M{"id": couponID},
		bson.M{"$set": bson.M{"used_count": n}},
	); err != nil {
		return fmt.Errorf("set coupon used_count: %w", err)
	}
	return nil
}
