package services

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/velora-shop/velora/app/models"
	"github.com/velora-shop/velora/app/repositories"
	"github.com/velora-shop/velora/pkg/logger"
	"github.com/velora-shop/velora/pkg/storage"
)

// GalleryService manages the offer-carousel images on the active storage
// disk.
type GalleryService struct {
	images *repositories.ImageRepository
}

func NewGalleryService(db *gorm.DB) *GalleryService {
	return &GalleryService{images: repositories.NewImageRepository(db)}
}

// StoreUpload writes one uploaded file to the storage disk and returns the
// storage key. Shared with product/category image uploads.
func StoreUpload(dir, filename string, content io.Reader) (string, error) {
	key := fmt.Sprintf("%s/%d-%s", dir, time.Now().UnixNano(), sanitizeFilename(filename))
	if err := storage.PutStream(key, content); err != nil {
		return "", fmt.Errorf("gallery: store %s: %w", filename, err)
	}
	return key, nil
}

// Add stores the file and records an Image row pointing at its public URL.
func (s *GalleryService) Add(filename string, content io.Reader) (models.Image, error) {
	key, err := StoreUpload("gallery", filename, content)
	if err != nil {
		return models.Image{}, err
	}

	image := models.Image{
		Name: filename,
		Path: key,
		URL:  storage.URL(key),
	}
	if err := s.images.Create(&image); err != nil {
		// Best-effort cleanup of the orphaned file.
		storage.Delete(key) //nolint:errcheck
		return models.Image{}, fmt.Errorf("gallery: create image row: %w", err)
	}
	return image, nil
}

// List returns all carousel images in display order.
func (s *GalleryService) List() ([]models.Image, error) {
	images, err := s.images.List()
	if err != nil {
		return nil, fmt.Errorf("gallery: list: %w", err)
	}
	return images, nil
}

// Replace swaps the stored file behind an existing image.
func (s *GalleryService) Replace(id uint, filename string, content io.Reader) (models.Image, error) {
	image, err := s.images.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Image{}, ErrNotFound
		}
		return models.Image{}, fmt.Errorf("gallery: load image: %w", err)
	}

	key, err := StoreUpload("gallery", filename, content)
	if err != nil {
		return models.Image{}, err
	}

	oldPath := image.Path
	image.Name = filename
	image.Path = key
	image.URL = storage.URL(key)
	if err := s.images.Update(&image); err != nil {
		storage.Delete(key) //nolint:errcheck
		return models.Image{}, fmt.Errorf("gallery: update image row: %w", err)
	}

	if err := storage.Delete(oldPath); err != nil {
		logger.Warn("gallery: could not remove replaced file", "path", oldPath, "error", err)
	}
	return image, nil
}

// Remove deletes the image row and its stored file.
func (s *GalleryService) Remove(id uint) error {
	image, err := s.images.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("gallery: load image: %w", err)
	}

	if err := s.images.Delete(id); err != nil {
		return fmt.Errorf("gallery: delete image row: %w", err)
	}
	if err := storage.Delete(image.Path); err != nil {
		logger.Warn("gallery: could not remove file", "path", image.Path, "error", err)
	}
	return nil
}

// sanitizeFilename keeps storage keys flat and shell-safe.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
}
