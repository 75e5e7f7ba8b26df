package requestRepo

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

// MongoRequestRepo is the MongoDB-backed RequestRepository. It also holds the
// occurrences collection so series assignment can write both sides in one
// transaction.
type MongoRequestRepo struct {
	coll    *mongo.Collection
	occColl *mongo.Collection
}

func NewMongoRequestRepo() *MongoRequestRepo {
	db := database.DB()
	return &MongoRequestRepo{
		coll:    db.Collection("service_requests"),
		occColl: db.Collection("occurrences"),
	}
}

func (r *MongoRequestRepo) Create(ctx context.Context, req *models.ServiceRequest) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctxWithTimeout, req); err != nil {
		return fmt.Errorf("error creating service request: %w", err)
	}
	return nil
}

func (r *MongoRequestRepo) GetByID(ctx context.Context, id string) (*models.ServiceRequest, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var req models.ServiceRequest
	err := r.coll.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching service request %s: %w", id, err)
	}
	return &req, nil
}

func (r *MongoRequestRepo) FindProviderConflicts(ctx context.Context, providerID, date string, window models.TimeWindow) ([]models.ServiceRequest, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"providerId": providerID,
		"date":       date,
		"timeWindow": window,
		"status":     bson.M{"$ne": models.StatusCancelled},
		// Series headers are excluded; their children carry the occupancy.
		"isRecurring": bson.M{"$ne": true},
	}
	cur, err := r.coll.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error querying provider conflicts: %w", err)
	}
	var out []models.ServiceRequest
	if err := cur.All(ctxWithTimeout, &out); err != nil {
		return nil, fmt.Errorf("error decoding provider conflicts: %w", err)
	}
	return out, nil
}

func (r *MongoRequestRepo) ChildExists(ctx context.Context, parentID, date string) (bool, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"recurringParentId": parentID,
		"date":              date,
		"status":            bson.M{"$ne": models.StatusCancelled},
	}
	n, err := r.coll.CountDocuments(ctxWithTimeout, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error checking generated child: %w", err)
	}
	return n > 0, nil
}

func (r *MongoRequestRepo) ListOpenByRequester(ctx context.Context, requesterID string, serviceType models.ServiceType, fromDate string, limit int64) ([]models.ServiceRequest, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"requesterId": requesterID,
		"serviceType": serviceType,
		"status":      models.StatusPending,
		"providerId":  bson.M{"$in": bson.A{nil, ""}},
		"date":        bson.M{"$gte": fromDate},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "id", Value: 1}}).
		SetLimit(limit)
	cur, err := r.coll.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing open requests: %w", err)
	}
	var out []models.ServiceRequest
	if err := cur.All(ctxWithTimeout, &out); err != nil {
		return nil, fmt.Errorf("error decoding open requests: %w", err)
	}
	return out, nil
}
