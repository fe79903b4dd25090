package availabilityRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mentorbook/models"
)

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo stores schedules in the "availability" collection of db.
func NewMongoAvailabilityRepo(db *mongo.Database) AvailabilityRepository {
	return &mongoAvailabilityRepo{coll: db.Collection("availability")}
}

func (r *mongoAvailabilityRepo) GetSchedule(ctx context.Context, mentorID, date string) (*models.DateSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s models.DateSchedule
	err := r.coll.FindOne(ctx, bson.M{"mentorId": mentorID, "date": date}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find schedule: %w", err)
	}
	return &s, nil
}

func (r *mongoAvailabilityRepo) ReplaceSchedule(ctx context.Context, schedule models.DateSchedule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"mentorId": schedule.MentorID, "date": schedule.Date}
	_, err := r.coll.ReplaceOne(ctx, filter, schedule, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace schedule: %w", err)
	}
	return nil
}

func (r *mongoAvailabilityRepo) DeleteSchedule(ctx context.Context, mentorID, date string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"mentorId": mentorID, "date": date}); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}

func (r *mongoAvailabilityRepo) ListFrom(ctx context.Context, mentorID, fromDate string) ([]models.DateSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"mentorId": mentorID, "date": bson.M{"$gte": fromDate}}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer cursor.Close(ctx)

	var schedules []models.DateSchedule
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, fmt.Errorf("decode schedules: %w", err)
	}
	return schedules, nil
}
