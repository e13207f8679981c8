package userRepo

import (
	"context"

	"motoclub/models"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	MarkVerified(ctx context.Context, id string) error
	GetAll(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id string) error
}
