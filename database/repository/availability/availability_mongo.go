package availabilityRepo

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

// MongoAvailabilityRepo is the MongoDB-backed AvailabilityRepository.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

func NewMongoAvailabilityRepo() *MongoAvailabilityRepo {
	return &MongoAvailabilityRepo{coll: database.DB().Collection("provider_availability")}
}

func (r *MongoAvailabilityRepo) Get(ctx context.Context, providerID, date string, window models.TimeWindow) (*models.ProviderAvailability, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"providerId": providerID, "date": date, "timeWindow": window}
	var row models.ProviderAvailability
	err := r.coll.FindOne(ctxWithTimeout, filter).Decode(&row)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching availability: %w", err)
	}
	return &row, nil
}

// BulkSet upserts declared slots, one write model per row.
func (r *MongoAvailabilityRepo) BulkSet(ctx context.Context, rows []models.ProviderAvailability) error {
	if len(rows) == 0 {
		return nil
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	writes := make([]mongo.WriteModel, 0, len(rows))
	for _, row := range rows {
		filter := bson.M{"providerId": row.ProviderID, "date": row.Date, "timeWindow": row.TimeWindow}
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(filter).
			SetUpdate(bson.M{"$set": row}).
			SetUpsert(true))
	}
	if _, err := r.coll.BulkWrite(ctxWithTimeout, writes); err != nil {
		return fmt.Errorf("error bulk writing availability: %w", err)
	}
	return nil
}

// EnsureIndexes creates the necessary indexes on the provider_availability collection.
func (r *MongoAvailabilityRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "date", Value: 1}, {Key: "timeWindow", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_provider_date_window"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create availability indexes: %w", err)
	}
	return nil
}
