package models

import "time"

// Blog is a club news/story post managed from the admin back-office.
type Blog struct {
	ID         string    `bson:"id" json:"id"`
	Title      string    `bson:"title" json:"title"`
	Slug       string    `bson:"slug" json:"slug"`
	Content    string    `bson:"content" json:"content"`
	Author     string    `bson:"author" json:"author"`
	CoverImage string    `bson:"cover_image,omitempty" json:"cover_image,omitempty"`
	Published  bool      `bson:"published" json:"published"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}
