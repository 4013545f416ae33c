package application

import (
	"context"
	"fmt"
	"io"

	"github.com/dfryer1193/qrstore/gallery/domain"
	"github.com/rs/zerolog/log"
)

// UploadRequest carries a single uploaded file part
type UploadRequest struct {
	Filename string
	Size     int64
	Content  io.Reader
}

type ImageService struct {
	repo           domain.ImageRepository
	maxUploadBytes int64
}

// NewImageService creates an ImageService. A maxUploadBytes of zero or less disables the size check.
func NewImageService(repo domain.ImageRepository, maxUploadBytes int64) *ImageService {
	return &ImageService{
		repo:           repo,
		maxUploadBytes: maxUploadBytes,
	}
}

// MaxUploadBytes returns the configured upload limit
func (s *ImageService) MaxUploadBytes() int64 {
	return s.maxUploadBytes
}

// Upload validates the request and stores the file under its client-supplied
// name. An existing file with the same name is replaced.
func (s *ImageService) Upload(ctx context.Context, req UploadRequest) (*domain.StoredImage, error) {
	if req.Content == nil {
		return nil, domain.ErrNoFile
	}

	if err := domain.ValidateFilename(req.Filename); err != nil {
		return nil, err
	}

	if s.maxUploadBytes > 0 && req.Size > s.maxUploadBytes {
		return nil, domain.ErrFileTooLarge
	}

	if err := s.repo.SaveImage(ctx, req.Filename, req.Content); err != nil {
		return nil, fmt.Errorf("failed to save image %s: %w", req.Filename, err)
	}

	log.Info().Str("filename", req.Filename).Int64("size", req.Size).Msg("Stored image")

	return &domain.StoredImage{Name: req.Filename}, nil
}

// List returns every stored image
func (s *ImageService) List(ctx context.Context) ([]domain.StoredImage, error) {
	names, err := s.repo.ListImages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	images := make([]domain.StoredImage, 0, len(names))
	for _, name := range names {
		images = append(images, domain.StoredImage{Name: name})
	}

	return images, nil
}

// Delete removes the named image. Names that could not have been stored are
// reported as not found.
func (s *ImageService) Delete(ctx context.Context, name string) error {
	if err := domain.ValidateFilename(name); err != nil {
		return domain.ErrNotFound
	}

	if err := s.repo.DeleteImage(ctx, name); err != nil {
		return fmt.Errorf("failed to delete image %s: %w", name, err)
	}

	log.Info().Str("filename", name).Msg("Deleted image")

	return nil
}
