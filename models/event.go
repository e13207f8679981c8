package models

import "time"

// Event is a bookable club event with a bounded capacity.
type Event struct {
	ID                  string    `bson:"id" json:"id"`
	Title               string    `bson:"title" json:"title"`
	Slug                string    `bson:"slug" json:"slug"`
	Description         string    `bson:"description" json:"description"`
	Venue               string    `bson:"venue" json:"venue"`
	Price               float64   `bson:"price" json:"price"`
	MaxParticipants     int       `bson:"max_participants" json:"max_participants"`
	CurrentParticipants int       `bson:"current_participants" json:"current_participants"`
	StartTime           time.Time `bson:"start_time" json:"start_time"`
	EndTime             time.Time `bson:"end_time" json:"end_time"`
	RegistrationCutoff  time.Time `bson:"registration_cutoff" json:"registration_cutoff"`
	CoverImage          string    `bson:"cover_image,omitempty" json:"cover_image,omitempty"` // Cloudinary public id
	IsActive            bool      `bson:"is_active" json:"is_active"`
	CreatedAt           time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time `bson:"updated_at" json:"updated_at"`
}
