// File: database/repository/coupon/interface.go
package couponRepo

import (
	"context"

	"rentora/database"
	"rentora/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CouponRepository persists coupons and their redemption records. The usage
// cap lives in the conditional increment, not in application reads.
type CouponRepository interface {
	Create(ctx context.Context, c *models.Coupon) error
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)

	// IncrementUsage bumps used_count only while the coupon is active and
	// below its cap. Returns ErrCapReached when the conditional update
	// matches nothing.
	IncrementUsage(ctx context.Context, couponID string) error

	// RetireIfExhausted flips active off when used_count has reached
	// max_uses. No-op for unlimited or still-open coupons.
	RetireIfExhausted(ctx context.Context, couponID string) error

	InsertRedemption(ctx context.Context, r *models.CouponRedemption) error
	CountRedemptions(ctx context.Context, couponID string) (int64, error)
	CountRedemptionsByUser(ctx context.Context, couponID, userID string) (int64, error)

	// ListAll returns every coupon (reconciliation sweep input).
	ListAll(ctx context.Context) ([]models.Coupon, error)

	// SetUsedCount overwrites used_count. Reconciliation tooling only.
	SetUsedCount(ctx context.Context, couponID string, n int) error

	EnsureIndexes(ctx context.Context) error
}

type mongoCouponRepo struct {
	coll           *mongo.Collection
	redemptionColl *mongo.Collection
}

// NewMongoCouponRepo constructs the MongoDB-backed coupon repository.
func NewMongoCouponRepo() CouponRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoCouponRepo{
		coll:           db.Collection("coupons"),
		redemptionColl: db.Collection("coupon_redemptions"),
	}
}
