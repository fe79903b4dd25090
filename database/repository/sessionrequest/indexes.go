// File: database/repository/sessionrequest/indexes.go
package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the session_requests collection.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Admission lookups and per-mentor listings.
		{
			Keys: bson.D{
				{Key: "mentorId", Value: 1},
				{Key: "date", Value: 1},
				{Key: "timeSlot.startTime", Value: 1},
				{Key: "timeSlot.endTime", Value: 1},
				{Key: "status", Value: 1},
			},
			Options: options.Index().SetName("mentor_date_slot_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "menteeId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("mentee_date_idx"),
		},
		// One holder per slot: slotKey only exists on pending/approved/completed documents.
		{
			Keys: bson.D{{Key: "slotKey", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"slotKey": bson.M{"$exists": true}}).
				SetName("slot_hold_unique"),
		},
	}

	if _, err := db.Collection("session_requests").Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create session request indexes: %w", err)
	}
	return nil
}
