package bookingRepo

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

// MongoBookingRepo is the MongoDB implementation of BookingRepository.
type MongoBookingRepo struct {
	bookingColl      *mongo.Collection
	registrationColl *mongo.Collection
}

func NewMongoBookingRepo() *MongoBookingRepo {
	return &MongoBookingRepo{
		bookingColl:      database.DB().Collection("bookings"),
		registrationColl: database.DB().Collection("audience_registrations"),
	}
}

func (r *MongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.bookingColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("bookings_id_unique"),
		},
		{
			Keys:    bson.D{{Key: "payment.order_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("bookings_order_unique"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "offering_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("bookings_user_offering_status"),
		},
	})
	if err != nil {
		return fmt.Errorf("bookings indexes: %w", err)
	}
	_, err = r.registrationColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("registrations_id_unique"),
		},
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}},
			Options: options.Index().SetName("registrations_event"),
		},
	})
	if err != nil {
		return fmt.Errorf("registrations indexes: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	if _, err := r.bookingColl.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoBookingRepo) GetByOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"payment.order_id": orderID})
}

func (r *MongoBookingRepo) findOne(ctx context.Context, filter bson.M) (*models.Booking, error) {
	var b models.Booking
	if err := r.bookingColl.FindOne(ctx, filter).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return &b, nil
}

func (r *MongoBookingRepo) FindActiveByUserAndOffering(ctx context.Context, userID, offeringID string) (*models.Booking, error) {
	filter := bson.M{
		"user_id":     userID,
		"offering_id": offeringID,
		"status":      bson.M{"$in": bson.A{models.StatusCreated, models.StatusPaid}},
	}
	b, err := r.findOne(ctx, filter)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return b, err
}

// SetStatus persists the status and payment fields of the booking.
func (r *MongoBookingRepo) SetStatus(ctx context.Context, b *models.Booking) error {
	b.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"status":       b.Status,
		"payment":      b.Payment,
		"paid_at":      b.PaidAt,
		"cancelled_at": b.CancelledAt,
		"updated_at":   b.UpdatedAt,
	}}
	res, err := r.bookingColl.UpdateOne(ctx, bson.M{"id": b.ID}, update)
	if err != nil {
		return fmt.Errorf("set booking status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *MongoBookingRepo) ListByOffering(ctx context.Context, offeringID string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"offering_id": offeringID})
}

func (r *MongoBookingRepo) list(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	cur, err := r.bookingColl.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer cur.Close(ctx)
	var bookings []models.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) CountByOfferingAndStatus(ctx context.Context, offeringID string, status models.BookingStatus) (int64, error) {
	n, err := r.bookingColl.CountDocuments(ctx, bson.M{"offering_id": offeringID, "status": status})
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}

func (r *MongoBookingRepo) CreateRegistration(ctx context.Context, reg *models.AudienceRegistration) error {
	if _, err := r.registrationColl.InsertOne(ctx, reg); err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetRegistrationByID(ctx context.Context, id string) (*models.AudienceRegistration, error) {
	var reg models.AudienceRegistration
	if err := r.registrationColl.FindOne(ctx, bson.M{"id": id}).Decode(&reg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return &reg, nil
}

func (r *MongoBookingRepo) UpdateRegistration(ctx context.Context, reg *models.AudienceRegistration) error {
	reg.UpdatedAt = time.Now()
	res, err := r.registrationColl.ReplaceOne(ctx, bson.M{"id": reg.ID}, reg)
	if err != nil {
		return fmt.Errorf("update registration: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBookingRepo) ListRegistrationsByEvent(ctx context.Context, eventID string) ([]models.AudienceRegistration, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	cur, err := r.registrationColl.Find(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer cur.Close(ctx)
	var regs []models.AudienceRegistration
	if err := cur.All(ctx, &regs); err != nil {
		return nil, fmt.Errorf("decode registrations: %w", err)
	}
	return regs, nil
}
