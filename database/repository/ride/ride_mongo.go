package rideRepo

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

// MongoRideRepo is the MongoDB implementation of RideRepository.
type MongoRideRepo struct {
	upcomingColl  *mongo.Collection
	completedColl *mongo.Collection
}

func NewMongoRideRepo() *MongoRideRepo {
	return &MongoRideRepo{
		upcomingColl:  database.DB().Collection("upcoming_rides"),
		completedColl: database.DB().Collection("completed_rides"),
	}
}

func (r *MongoRideRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.upcomingColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("rides_id_unique"),
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("rides_slug_unique"),
		},
		{
			Keys:    bson.D{{Key: "is_active", Value: 1}, {Key: "end_time", Value: 1}},
			Options: options.Index().SetName("rides_active_end_time"),
		},
	})
	if err != nil {
		return fmt.Errorf("rides indexes: %w", err)
	}
	_, err = r.completedColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "source_ride_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("completed_source_unique"),
		},
	})
	if err != nil {
		return fmt.Errorf("completed rides indexes: %w", err)
	}
	return nil
}

func (r *MongoRideRepo) Create(ctx context.Context, ride *models.UpcomingRide) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := r.upcomingColl.InsertOne(ctx, ride); err != nil {
		return fmt.Errorf("insert ride: %w", err)
	}
	return nil
}

func (r *MongoRideRepo) GetByID(ctx context.Context, id string) (*models.UpcomingRide, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoRideRepo) GetBySlug(ctx context.Context, slug string) (*models.UpcomingRide, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *MongoRideRepo) findOne(ctx context.Context, filter bson.M) (*models.UpcomingRide, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var ride models.UpcomingRide
	if err := r.upcomingColl.FindOne(ctx, filter).Decode(&ride); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find ride: %w", err)
	}
	return &ride, nil
}

func (r *MongoRideRepo) Update(ctx context.Context, ride *models.UpcomingRide) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ride.UpdatedAt = time.Now()
	res, err := r.upcomingColl.ReplaceOne(ctx, bson.M{"id": ride.ID}, ride)
	if err != nil {
		return fmt.Errorf("update ride: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRideRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	res, err := r.upcomingColl.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"is_active": false, "updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("delete ride: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRideRepo) List(ctx context.Context, activeOnly bool) ([]models.UpcomingRide, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}
	cur, err := r.upcomingColl.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list rides: %w", err)
	}
	defer cur.Close(ctx)
	var rides []models.UpcomingRide
	if err := cur.All(ctx, &rides); err != nil {
		return nil, fmt.Errorf("decode rides: %w", err)
	}
	return rides, nil
}

func (r *MongoRideRepo) GetForBooking(ctx context.Context, id string) (*models.OfferingInfo, error) {
	ride, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.OfferingInfo{
		ID:                 ride.ID,
		Kind:               models.OfferingRide,
		Title:              ride.Title,
		Price:              ride.Price,
		StartTime:          ride.StartTime,
		RegistrationCutoff: ride.RegistrationCutoff,
		IsActive:           ride.IsActive,
		MaxSeats:           ride.MaxCapacity,
		TakenSeats:         ride.RegisteredCount,
	}, nil
}

// ReserveSeats increments registered_count only when the capacity
// predicate holds, in the same update. MatchedCount == 0 means full.
func (r *MongoRideRepo) ReserveSeats(ctx context.Context, id string, seats int) error {
	filter := bson.M{
		"id":        id,
		"is_active": true,
		"$expr": bson.M{"$lte": bson.A{
			bson.M{"$add": bson.A{"$registered_count", seats}},
			"$max_capacity",
		}},
	}
	update := bson.M{
		"$inc": bson.M{"registered_count": seats},
		"$set": bson.M{"updated_at": time.Now()},
	}
	res, err := r.upcomingColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("reserve ride seats: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrCapacityFull
	}
	return nil
}

func (r *MongoRideRepo) ReleaseSeats(ctx context.Context, id string, seats int) error {
	filter := bson.M{
		"id":               id,
		"registered_count": bson.M{"$gte": seats},
	}
	update := bson.M{
		"$inc": bson.M{"registered_count": -seats},
		"$set": bson.M{"updated_at": time.Now()},
	}
	res, err := r.upcomingColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("release ride seats: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("release ride seats: counter underflow for ride %s", id)
	}
	return nil
}

// FindDueForMigration returns active rides whose window has closed. Rides
// without an end time fall back to the start time.
func (r *MongoRideRepo) FindDueForMigration(ctx context.Context, now time.Time) ([]models.UpcomingRide, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	zero := time.Time{}
	filter := bson.M{
		"is_active": true,
		"$or": bson.A{
			bson.M{"end_time": bson.M{"$gt": zero, "$lt": now}},
			bson.M{
				"$and": bson.A{
					bson.M{"$or": bson.A{
						bson.M{"end_time": bson.M{"$exists": false}},
						bson.M{"end_time": zero},
					}},
					bson.M{"start_time": bson.M{"$lt": now}},
				},
			},
		},
	}
	cur, err := r.upcomingColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find rides due for migration: %w", err)
	}
	defer cur.Close(ctx)
	var rides []models.UpcomingRide
	if err := cur.All(ctx, &rides); err != nil {
		return nil, fmt.Errorf("decode due rides: %w", err)
	}
	return rides, nil
}

func (r *MongoRideRepo) MarkMigrated(ctx context.Context, rideID, completedID string) error {
	filter := bson.M{"id": rideID, "is_active": true}
	update := bson.M{"$set": bson.M{
		"is_active":         false,
		"completed_ride_id": completedID,
		"updated_at":        time.Now(),
	}}
	res, err := r.upcomingColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("mark ride migrated: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrAlreadyMigrated
	}
	return nil
}

func (r *MongoRideRepo) InsertCompleted(ctx context.Context, cr *models.CompletedRide) error {
	if _, err := r.completedColl.InsertOne(ctx, cr); err != nil {
		return fmt.Errorf("insert completed ride: %w", err)
	}
	return nil
}

func (r *MongoRideRepo) ListCompleted(ctx context.Context) ([]models.CompletedRide, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	cur, err := r.completedColl.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "start_time", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list completed rides: %w", err)
	}
	defer cur.Close(ctx)
	var rides []models.CompletedRide
	if err := cur.All(ctx, &rides); err != nil {
		return nil, fmt.Errorf("decode completed rides: %w", err)
	}
	return rides, nil
}

func (r *MongoRideRepo) GetCompletedByID(ctx context.Context, id string) (*models.CompletedRide, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var cr models.CompletedRide
	if err := r.completedColl.FindOne(ctx, bson.M{"id": id}).Decode(&cr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find completed ride: %w", err)
	}
	return &cr, nil
}
