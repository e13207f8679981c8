package models

import "time"

// RideRoute describes the planned route of a ride.
type RideRoute struct {
	From       string  `bson:"from" json:"from"`
	To         string  `bson:"to" json:"to"`
	DistanceKM float64 `bson:"distance_km" json:"distance_km"`
}

// UpcomingRide is a bookable ride offering.
type UpcomingRide struct {
	ID                 string    `bson:"id" json:"id"`
	Title              string    `bson:"title" json:"title"`
	Slug               string    `bson:"slug" json:"slug"`
	Description        string    `bson:"description" json:"description"`
	Route              RideRoute `bson:"route" json:"route"`
	Price              float64   `bson:"price" json:"price"`
	MaxCapacity        int       `bson:"max_capacity" json:"max_capacity"`
	RegisteredCount    int       `bson:"registered_count" json:"registered_count"`
	StartTime          time.Time `bson:"start_time" json:"start_time"`
	EndTime            time.Time `bson:"end_time,omitempty" json:"end_time,omitempty"`
	RegistrationCutoff time.Time `bson:"registration_cutoff" json:"registration_cutoff"`
	CoverImage         string    `bson:"cover_image,omitempty" json:"cover_image,omitempty"`
	IsActive           bool      `bson:"is_active" json:"is_active"`
	// Set by migration once the ride has been archived.
	CompletedRideID string    `bson:"completed_ride_id,omitempty" json:"completed_ride_id,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// CompletedRide is the archival snapshot created when an expired
// UpcomingRide is migrated. Read-only after creation.
type CompletedRide struct {
	ID           string    `bson:"id" json:"id"`
	SourceRideID string    `bson:"source_ride_id" json:"source_ride_id"`
	Title        string    `bson:"title" json:"title"`
	Slug         string    `bson:"slug" json:"slug"`
	Route        RideRoute `bson:"route" json:"route"`
	StartTime    time.Time `bson:"start_time" json:"start_time"`
	EndTime      time.Time `bson:"end_time,omitempty" json:"end_time,omitempty"`
	Duration     string    `bson:"duration" json:"duration"`
	Participants int       `bson:"participants" json:"participants"`
	CoverImage   string    `bson:"cover_image,omitempty" json:"cover_image,omitempty"`
	MigratedAt   time.Time `bson:"migrated_at" json:"migrated_at"`
}
