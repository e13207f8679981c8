package eventRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"motoclub/database"
	"motoclub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoEventRepo is the MongoDB implementation of EventRepository.
type MongoEventRepo struct {
	coll *mongo.Collection
}

func NewMongoEventRepo() *MongoEventRepo {
	return &MongoEventRepo{coll: database.DB().Collection("events")}
}

func (r *MongoEventRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("events_id_unique"),
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("events_slug_unique"),
		},
		{
			Keys:    bson.D{{Key: "start_time", Value: 1}},
			Options: options.Index().SetName("events_start_time"),
		},
	})
	if err != nil {
		return fmt.Errorf("events indexes: %w", err)
	}
	return nil
}

func (r *MongoEventRepo) Create(ctx context.Context, e *models.Event) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *MongoEventRepo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoEventRepo) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *MongoEventRepo) findOne(ctx context.Context, filter bson.M) (*models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var e models.Event
	if err := r.coll.FindOne(ctx, filter).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return &e, nil
}

func (r *MongoEventRepo) Update(ctx context.Context, e *models.Event) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	e.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": e.ID}, e)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoEventRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"is_active": false, "updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoEventRepo) List(ctx context.Context, activeOnly bool) ([]models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)
	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

func (r *MongoEventRepo) GetForBooking(ctx context.Context, id string) (*models.OfferingInfo, error) {
	e, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.OfferingInfo{
		ID:                 e.ID,
		Kind:               models.OfferingEvent,
		Title:              e.Title,
		Price:              e.Price,
		StartTime:          e.StartTime,
		RegistrationCutoff: e.RegistrationCutoff,
		IsActive:           e.IsActive,
		MaxSeats:           e.MaxParticipants,
		TakenSeats:         e.CurrentParticipants,
	}, nil
}

// ReserveSeats increments current_participants only when the capacity
// predicate holds, in the same update. MatchedCount == 0 means the event
// is full (or inactive); there is no check-then-increment window.
func (r *MongoEventRepo) ReserveSeats(ctx context.Context, id string, seats int) error {
	filter := bson.M{
		"id":        id,
		"is_active": true,
		"$expr": bson.M{"$lte": bson.A{
			bson.M{"$add": bson.A{"$current_participants", seats}},
			"$max_participants",
		}},
	}
	update := bson.M{
		"$inc": bson.M{"current_participants": seats},
		"$set": bson.M{"updated_at": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("reserve event seats: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrCapacityFull
	}
	return nil
}

func (r *MongoEventRepo) ReleaseSeats(ctx context.Context, id string, seats int) error {
	filter := bson.M{
		"id":                   id,
		"current_participants": bson.M{"$gte": seats},
	}
	update := bson.M{
		"$inc": bson.M{"current_participants": -seats},
		"$set": bson.M{"updated_at": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("release event seats: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("release event seats: counter underflow for event %s", id)
	}
	return nil
}
