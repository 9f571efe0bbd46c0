package balanceRepo

import (
	"context"
	"fmt"
	"time"

	"rentora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (repo *mongoBalanceRepo) Get(ctx context.Context, ownerID string) (*models.Balance, error) {
	var b models.Balance
	err := repo.coll.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return &models.Balance{OwnerID: ownerID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get balance for owner %s: %w", ownerID, err)
	}
	return &b, nil
}

func (repo *mongoBalanceRepo) AddPending(ctx context.Context, ownerID string, delta float64) (*models.Balance, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	update := bson.M{
		"$inc": bson.M{"pending_balance": delta},
		"$set": bson.M{"updated_at": time.Now()},
		"$setOnInsert": bson.M{
			"owner_id":          ownerID,
			"available_balance": 0.0,
			"total_earnings":    0.0,
		},
	}

	var b models.Balance
	err := repo.coll.FindOneAndUpdate(ctx, bson.M{"owner_id": ownerID}, update, opts).Decode(&b)
	if err != nil {
		return nil, fmt.Errorf("adjust pending balance for owner %s: %w", ownerID, err)
	}
	return &b, nil
}

// ApplyCompletion reads, rolls and rewrites the ledger document. The
// read-roll-write is safe only because the caller wraps it in the completing
// transaction; concurrent completions for one owner produce a write conflict
// and the transaction runner retries.
func (repo *mongoBalanceRepo) ApplyCompletion(ctx context.Context, ownerID string, amount float64, today string) (*models.Balance, error) {
	b, err := repo.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	models.ApplyEarnings(b, amount, today)
	b.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	if _, err := repo.coll.ReplaceOne(ctx, bson.M{"owner_id": ownerID}, b, opts); err != nil {
		return nil, fmt.Errorf("apply completion for owner %s: %w", ownerID, err)
	}
	return b, nil
}
