package occurrenceRepo

import (
	"context"
	"fmt"
	"time"

	"carematch/database"
	"carematch/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOccurrenceRepo is the MongoDB-backed OccurrenceRepository.
type MongoOccurrenceRepo struct {
	coll *mongo.Collection
}

func NewMongoOccurrenceRepo() *MongoOccurrenceRepo {
	return &MongoOccurrenceRepo{coll: database.DB().Collection("occurrences")}
}

func (r *MongoOccurrenceRepo) FindConflicts(ctx context.Context, providerID, date string, window models.TimeWindow) ([]models.Occurrence, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"providerId": providerID,
		"date":       date,
		"timeWindow": window,
		"status":     bson.M{"$ne": models.StatusCancelled},
	}
	cur, err := r.coll.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error querying occurrence conflicts: %w", err)
	}
	var out []models.Occurrence
	if err := cur.All(ctxWithTimeout, &out); err != nil {
		return nil, fmt.Errorf("error decoding occurrence conflicts: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates the necessary indexes on the occurrences collection.
// The unique slot index is the storage-level defense against two concurrent
// assignments claiming the same provider slot; cancelled agenda rows are
// removed downstream rather than flagged, so the index can stay plain.
func (r *MongoOccurrenceRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "date", Value: 1}, {Key: "timeWindow", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_provider_slot"),
		},
		{
			Keys:    bson.D{{Key: "parentId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("parent_date_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create occurrence indexes: %w", err)
	}
	return nil
}
