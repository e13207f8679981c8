package blogRepo

import (
	"context"
	"errors"

	"motoclub/models"
)

// ErrNotFound is returned when no blog post matches the query.
var ErrNotFound = errors.New("blog post not found")

// BlogRepository defines persistence operations for blog posts.
type BlogRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, b *models.Blog) error
	GetBySlug(ctx context.Context, slug string) (*models.Blog, error)
	GetByID(ctx context.Context, id string) (*models.Blog, error)
	Update(ctx context.Context, b *models.Blog) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, publishedOnly bool) ([]models.Blog, error)
}
