package balanceRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (repo *mongoBalanceRepo) EnsureIndexes(ctx context.Context) error {
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := repo.coll.Indexes().CreateOne(ctx, idx); err != nil {
		return fmt.Errorf("create balances indexes: %w", err)
	}
	return nil
}
