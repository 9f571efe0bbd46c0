package database

import (
	"context"
	"errors"
	"log"
	"time"

	"rentora/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient is the global MongoDB client instance.
var MongoClient *mongo.Client

// DBName is the database all repositories operate on.
const DBName = "rentora"

// InitDB initializes the MongoDB connection.
func InitDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("failed to ping MongoDB: %v", err)
	}
	MongoClient = client
	log.Println("Connected to MongoDB successfully!")
}

// TxnRunner executes fn inside one storage transaction. Services depend on
// this narrow type instead of the driver so unit tests can substitute a
// pass-through runner.
type TxnRunner func(ctx context.Context, fn func(ctx context.Context) error) error

const (
	txnMaxAttempts = 3
	txnBackoffBase = 50 * time.Millisecond
)

// RunTransaction runs fn inside a multi-document transaction. Write conflicts
// between racing transactions surface as transient transaction errors; those
// are retried a bounded number of times with backoff before being returned.
// Business failures returned by fn abort the transaction and are never
// retried.
func RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := MongoClient.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	var lastErr error
	for attempt := 1; attempt <= txnMaxAttempts; attempt++ {
		lastErr = mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
			if err := sc.StartTransaction(); err != nil {
				return err
			}
			if err := fn(sc); err != nil {
				_ = sc.AbortTransaction(sc)
				return err
			}
			return sc.CommitTransaction(sc)
		})
		if lastErr == nil {
			return nil
		}
		if !IsTransient(lastErr) || attempt == txnMaxAttempts {
			return lastErr
		}
		time.Sleep(txnBackoffBase * time.Duration(attempt))
	}
	return lastErr
}

// IsTransient reports whether err is a retryable transaction-level failure
// (write conflict between concurrent transactions).
func IsTransient(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.HasErrorLabel("TransientTransactionError") {
		return true
	}
	var we mongo.WriteException
	if errors.As(err, &we) && we.HasErrorLabel("TransientTransactionError") {
		return true
	}
	return false
}
