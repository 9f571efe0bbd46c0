// File: database/repository/balance/interface.go
package balanceRepo

import (
	"context"

	"rentora/database"
	"rentora/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BalanceRepository is the per-owner balance ledger. It exposes only atomic
// deltas and the completion rollover; there is no raw "set balance" write
// outside reconciliation tooling. All mutations are meant to run inside the
// booking transaction that triggers them.
type BalanceRepository interface {
	Get(ctx context.Context, ownerID string) (*models.Balance, error)

	// AddPending applies an atomic $inc delta to the owner's pending balance
	// (creating the ledger document on first use) and returns the post-update
	// balance so callers can react to a deficit.
	AddPending(ctx context.Context, ownerID string, delta float64) (*models.Balance, error)

	// ApplyCompletion moves amount out of pending into realized earnings,
	// rolling the daily/monthly/yearly history windows to the given calendar
	// day. Must be called inside the completing transaction.
	ApplyCompletion(ctx context.Context, ownerID string, amount float64, today string) (*models.Balance, error)

	EnsureIndexes(ctx context.Context) error
}

type mongoBalanceRepo struct {
	coll *mongo.Collection
}

// NewMongoBalanceRepo constructs the MongoDB-backed balance ledger.
func NewMongoBalanceRepo() BalanceRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoBalanceRepo{
		coll: db.Collection("balances"),
	}
}
