package offerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carematch/database"
	"carematch/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const duplicateKeyCode = 11000

// MongoOfferRepo is the MongoDB-backed OfferRepository.
type MongoOfferRepo struct {
	coll *mongo.Collection
}

func NewMongoOfferRepo() *MongoOfferRepo {
	return &MongoOfferRepo{coll: database.DB().Collection("offers")}
}

// BulkCreateSkipDuplicates inserts offers unordered so one duplicate does not
// stop the batch. Duplicate-key collisions on (requestId, providerId) are
// counted out of the result; any other write error is surfaced.
func (r *MongoOfferRepo) BulkCreateSkipDuplicates(ctx context.Context, offers []models.Offer) (int, error) {
	if len(offers) == 0 {
		return 0, nil
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	docs := make([]interface{}, len(offers))
	for i := range offers {
		docs[i] = offers[i]
	}

	opts := options.InsertMany().SetOrdered(false)
	_, err := r.coll.InsertMany(ctxWithTimeout, docs, opts)
	if err == nil {
		return len(offers), nil
	}

	var bulkErr mongo.BulkWriteException
	if !errors.As(err, &bulkErr) {
		return 0, fmt.Errorf("error bulk inserting offers: %w", err)
	}
	duplicates := 0
	for _, we := range bulkErr.WriteErrors {
		if we.Code != duplicateKeyCode {
			return 0, fmt.Errorf("error bulk inserting offers: %w", err)
		}
		duplicates++
	}
	return len(offers) - duplicates, nil
}

func (r *MongoOfferRepo) ListByRequest(ctx context.Context, requestID string) ([]models.Offer, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := r.coll.Find(ctxWithTimeout, bson.M{"requestId": requestID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing offers for request %s: %w", requestID, err)
	}
	var out []models.Offer
	if err := cur.All(ctxWithTimeout, &out); err != nil {
		return nil, fmt.Errorf("error decoding offers: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates the necessary indexes on the offers collection.
func (r *MongoOfferRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// One proposal per provider per request; re-running dispatch is a no-op.
		{
			Keys:    bson.D{{Key: "requestId", Value: 1}, {Key: "providerId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_request_provider"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create offer indexes: %w", err)
	}
	return nil
}
