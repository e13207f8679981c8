package user

import (
	"context"

	"motoclub/models"
)

// RegisterRequest carries the signup payload.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// AuthResponse is returned on successful sign-in.
type AuthResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// UserService defines account operations.
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	VerifyEmail(ctx context.Context, userID, otp string) error
	ResendOTP(ctx context.Context, email string) error
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id, name, phone string) (*models.User, error)
	ChangePassword(ctx context.Context, id, current, next string) error
	ListAll(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id string) error
}
