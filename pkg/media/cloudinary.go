// Package media delegates image hosting to Cloudinary.
package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/example/sweetshop/pkg/apperr"
	"github.com/example/sweetshop/pkg/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxImageSize is the upload limit enforced before hitting Cloudinary.
const MaxImageSize = 5 * 1024 * 1024

// Storefront cards render at 600x400, so images are cropped server-side.
const uploadTransformation = "c_fill,w_600,h_400,q_auto"

type CloudinaryService struct {
	client *cloudinary.Cloudinary
	folder string
	logger *zap.Logger
}

type UploadResult struct {
	ImageURL string `json:"imageUrl"`
	PublicID string `json:"publicId"`
}

func NewCloudinaryService(cfg *config.CloudinaryConfig, logger *zap.Logger) (*CloudinaryService, error) {
	client, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary client: %w", err)
	}
	return &CloudinaryService{client: client, folder: cfg.Folder, logger: logger}, nil
}

// Upload pushes image bytes to Cloudinary and returns the hosted URL.
func (s *CloudinaryService) Upload(ctx context.Context, data []byte, contentType string) (*UploadResult, error) {
	if len(data) == 0 {
		return nil, apperr.Validation("no image file provided")
	}
	if len(data) > MaxImageSize {
		return nil, apperr.Validation("file size too large, maximum 5MB allowed")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperr.Validation("only image files are allowed")
	}

	resp, err := s.client.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:         s.folder,
		PublicID:       uuid.NewString(),
		ResourceType:   "image",
		Transformation: uploadTransformation,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}

	s.logger.Info("Image uploaded",
		zap.String("public_id", resp.PublicID),
		zap.Int("size", len(data)))

	return &UploadResult{ImageURL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

// Delete removes a hosted image by its public ID.
func (s *CloudinaryService) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return apperr.Validation("public ID is required")
	}

	resp, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if resp.Result != "ok" {
		return apperr.NotFound("image not found")
	}

	s.logger.Info("Image deleted", zap.String("public_id", publicID))
	return nil
}
