package requestRepo

import (
	"context"
	"fmt"

	"carematch/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AssignRecurringBatch writes all generated children, their agenda
// occurrences and the parent's assignment as one transaction. Either every
// document becomes visible together or none does.
func (r *MongoRequestRepo) AssignRecurringBatch(
	ctx context.Context,
	parentID, providerID string,
	children []models.ServiceRequest,
	occurrences []models.Occurrence,
) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		childDocs := make([]interface{}, len(children))
		for i := range children {
			childDocs[i] = children[i]
		}
		if _, err := r.coll.InsertMany(sc, childDocs); err != nil {
			return fmt.Errorf("insert children failed: %w", err)
		}

		occDocs := make([]interface{}, len(occurrences))
		for i := range occurrences {
			occDocs[i] = occurrences[i]
		}
		if _, err := r.occColl.InsertMany(sc, occDocs); err != nil {
			return fmt.Errorf("insert occurrences failed: %w", err)
		}

		filter := bson.M{"id": parentID, "status": models.StatusPending}
		update := bson.M{"$set": bson.M{
			"status":     models.StatusAssigned,
			"providerId": providerID,
		}}
		res, err := r.coll.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("assign parent failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("parent request %s is no longer pending", parentID)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("recurring assignment transaction failed: %w", err)
	}

	return nil
}
