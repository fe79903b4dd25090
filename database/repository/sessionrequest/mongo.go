package sessionRepo

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

// sessionDocument adds the slot-hold key. It is present only while the request
// holds its slot, and the unique partial index on it rejects a second holder.
type sessionDocument struct {
	models.SessionRequest `bson:",inline"`
	SlotKey               string `bson:"slotKey,omitempty"`
}

type mongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo stores requests in the "session_requests" collection of db.
func NewMongoSessionRepo(db *mongo.Database) SessionRequestRepository {
	return &mongoSessionRepo{coll: db.Collection("session_requests")}
}

func (r *mongoSessionRepo) Insert(ctx context.Context, req *models.SessionRequest) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := sessionDocument{SessionRequest: *req}
	if req.Status.HoldsSlot() {
		doc.SlotKey = models.SlotKey(req.MentorID, req.Date, req.TimeSlot)
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("insert session request: %w", err)
	}
	return nil
}

func (r *mongoSessionRepo) GetByID(ctx context.Context, id string) (*models.SessionRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc sessionDocument
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session request: %w", err)
	}
	return &doc.SessionRequest, nil
}

func (r *mongoSessionRepo) UpdateStatus(ctx context.Context, id string, from, to models.SessionStatus, at time.Time) (*models.SessionRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": at}}
	if !to.HoldsSlot() {
		update["$unset"] = bson.M{"slotKey": ""}
	}

	var doc sessionDocument
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Either the id is unknown or someone moved it first.
		n, countErr := r.coll.CountDocuments(ctx, bson.M{"id": id})
		if countErr != nil {
			return nil, fmt.Errorf("recheck session request: %w", countErr)
		}
		if n == 0 {
			return nil, ErrNotFound
		}
		return nil, ErrStatusChanged
	}
	if err != nil {
		return nil, fmt.Errorf("update session request status: %w", err)
	}
	return &doc.SessionRequest, nil
}

func (r *mongoSessionRepo) FindHolding(ctx context.Context, mentorID, date string, slot models.TimeSlot) (*models.SessionRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc sessionDocument
	err := r.coll.FindOne(ctx, bson.M{"slotKey": models.SlotKey(mentorID, date, slot)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find holding request: %w", err)
	}
	return &doc.SessionRequest, nil
}

func (r *mongoSessionRepo) ListHolding(ctx context.Context, mentorID, date string) ([]models.SessionRequest, error) {
	return r.find(ctx, bson.M{
		"mentorId": mentorID,
		"date":     date,
		"status":   bson.M{"$in": statusStrings(models.HoldingStatuses)},
	})
}

func (r *mongoSessionRepo) List(ctx context.Context, f models.SessionFilter) ([]models.SessionRequest, error) {
	filter := bson.M{}
	switch f.Role {
	case models.RoleMentor:
		filter["mentorId"] = f.PartyID
	case models.RoleMentee:
		filter["menteeId"] = f.PartyID
	}
	if len(f.Statuses) > 0 {
		filter["status"] = bson.M{"$in": statusStrings(f.Statuses)}
	}
	if f.FromDate != "" {
		filter["date"] = bson.M{"$gte": f.FromDate}
	}
	return r.find(ctx, filter)
}

func (r *mongoSessionRepo) find(ctx context.Context, filter bson.M) ([]models.SessionRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "timeSlot.startTime", Value: 1},
		{Key: "createdAt", Value: 1},
	})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list session requests: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []sessionDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode session requests: %w", err)
	}
	out := make([]models.SessionRequest, len(docs))
	for i, d := range docs {
		out[i] = d.SessionRequest
	}
	return out, nil
}
