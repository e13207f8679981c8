package user

import (
	"context"
	"fmt"
	"net/http"
	"time"

	userRepo "motoclub/database/repository/user"
	"motoclub/models"
	"motoclub/services/notification"
	"motoclub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 72 * time.Hour

var (
	ErrEmailTaken         = utils.NewApiError(http.StatusConflict, "an account with this email already exists")
	ErrInvalidCredentials = utils.NewApiError(http.StatusUnauthorized, "invalid email or password")
	ErrNotVerified        = utils.NewApiError(http.StatusForbidden, "email not verified")
)

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Mailer *notification.EmailSender
	Logger *zap.Logger
}

// Register creates an unverified account and mails a verification code.
func (s *DefaultUserService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	existing, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil && err != userRepo.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	u := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.issueOTP(u)
	return u, nil
}

// VerifyEmail checks the code and marks the account verified.
func (s *DefaultUserService) VerifyEmail(ctx context.Context, userID, otp string) error {
	if err := utils.VerifyOTP(userID, otp); err != nil {
		return utils.NewApiError(http.StatusBadRequest, err.Error())
	}
	return s.Repo.MarkVerified(ctx, userID)
}

// ResendOTP issues a fresh verification code for an unverified account.
func (s *DefaultUserService) ResendOTP(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u.EmailVerified {
		return utils.NewApiError(http.StatusBadRequest, "email already verified")
	}
	s.issueOTP(u)
	return nil
}

func (s *DefaultUserService) issueOTP(u *models.User) {
	otp, err := utils.StoreOTP(u.ID)
	if err != nil {
		s.Logger.Error("store verification otp", zap.String("user_id", u.ID), zap.Error(err))
		return
	}
	if s.Mailer == nil {
		s.Logger.Warn("mailer disabled, verification otp not delivered", zap.String("user_id", u.ID))
		return
	}
	if err := s.Mailer.SendOTP(u.Email, u.Name, otp); err != nil {
		s.Logger.Error("send verification otp", zap.String("user_id", u.ID), zap.Error(err))
	}
}

// Authenticate verifies credentials and returns a signed JWT.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if err == userRepo.ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.EmailVerified {
		return nil, ErrNotVerified
	}

	token, err := utils.GenerateToken(u.ID, u.Email, u.Role, tokenLifetime)
	if err != nil {
		s.Logger.Error("token generation failed", zap.String("user_id", u.ID), zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	return &AuthResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
		Token: token,
	}, nil
}

func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultUserService) UpdateProfile(ctx context.Context, id, name, phone string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		u.Name = name
	}
	if phone != "" {
		u.Phone = phone
	}
	u.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *DefaultUserService) ChangePassword(ctx context.Context, id, current, next string) error {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	return s.Repo.Update(ctx, u)
}

func (s *DefaultUserService) ListAll(ctx context.Context) ([]models.User, error) {
	return s.Repo.GetAll(ctx)
}

func (s *DefaultUserService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
