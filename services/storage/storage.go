package storage

import (
	"context"
	"fmt"
	"io"

	"motoclub/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageService defines the interface for media storage operations.
// Cover images for rides, events and blog posts go through here.
type StorageService interface {
	UploadFile(ctx context.Context, file io.Reader, destFolder, publicID string) (string, error)
	DeleteFile(ctx context.Context, publicID string) error
}

// CloudinaryStorageService implements StorageService using Cloudinary.
type CloudinaryStorageService struct {
	client *cloudinary.Cloudinary
}

// NewCloudinaryStorageService initializes the Cloudinary client from
// configuration. Returns an error when credentials are missing so the
// caller can run without an upload surface.
func NewCloudinaryStorageService() (*CloudinaryStorageService, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStorageService{client: cld}, nil
}

// UploadFile streams the file to Cloudinary and returns the secure URL.
func (s *CloudinaryStorageService) UploadFile(ctx context.Context, file io.Reader, destFolder, publicID string) (string, error) {
	resp, err := s.client.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   destFolder,
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

func (s *CloudinaryStorageService) DeleteFile(ctx context.Context, publicID string) error {
	_, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	return nil
}
