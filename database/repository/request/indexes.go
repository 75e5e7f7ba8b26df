package requestRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the service_requests collection.
func (r *MongoRequestRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Uniqueness guard for generated children: one child per parent per date.
		{
			Keys: bson.D{{Key: "recurringParentId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_parent_date").
				SetPartialFilterExpression(bson.M{"recurringParentId": bson.M{"$exists": true}}),
		},
		// Primary conflict-check pattern.
		{
			Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "date", Value: 1}, {Key: "timeWindow", Value: 1}},
			Options: options.Index().SetName("provider_date_window_idx"),
		},
		// Fan-out query for offer dispatch.
		{
			Keys:    bson.D{{Key: "requesterId", Value: 1}, {Key: "serviceType", Value: 1}, {Key: "status", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("requester_open_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create service request indexes: %w", err)
	}
	return nil
}
