package services

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/mebelpro/factory-api/utils"
)

// ImageService handles order photo upload, retrieval, and deletion
type ImageService interface {
	// UploadImage validates and uploads a photo, returns the storage key
	UploadImage(fileHeader *multipart.FileHeader) (string, error)

	// GetImageURL generates a URL for accessing an uploaded photo
	GetImageURL(imageKey string) (string, error)

	// DeleteImage removes a photo from storage
	DeleteImage(imageKey string) error
}

var imageServiceInstance ImageService

// GetImageService returns the initialized image service instance
func GetImageService() ImageService {
	return imageServiceInstance
}

// SetImageService sets the image service instance (primarily for testing)
func SetImageService(service ImageService) {
	imageServiceInstance = service
}

// S3ImageService implements ImageService using AWS S3 for storage
type S3ImageService struct {
	s3Service S3Interface
}

// InitS3ImageService initializes the image service with an S3 backend
func InitS3ImageService(s3Service S3Interface) ImageService {
	imageServiceInstance = &S3ImageService{
		s3Service: s3Service,
	}
	return imageServiceInstance
}

// UploadImage validates and uploads a photo to S3
func (s *S3ImageService) UploadImage(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	s3Key, err := s.s3Service.UploadFile(fileHeader)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return s3Key, nil
}

// GetImageURL generates a presigned URL for accessing a photo
func (s *S3ImageService) GetImageURL(imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}

	url, err := s.s3Service.GetPresignedURL(imageKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate image URL: %w", err)
	}

	return url, nil
}

// DeleteImage deletes a photo from S3
func (s *S3ImageService) DeleteImage(imageKey string) error {
	if imageKey == "" {
		return nil
	}

	if err := s.s3Service.DeleteFile(imageKey); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}

// LocalImageService implements ImageService on the local filesystem.
// Used in development when no S3 bucket is configured. Keys keep the
// same orders/photos/ namespace so the two backends are interchangeable.
type LocalImageService struct {
	baseDir string
}

// InitLocalImageService initializes the image service with a local-disk backend
func InitLocalImageService(baseDir string) ImageService {
	imageServiceInstance = &LocalImageService{baseDir: baseDir}
	return imageServiceInstance
}

// UploadImage validates and saves a photo under baseDir/orders/photos/
func (s *LocalImageService) UploadImage(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	dir := filepath.Join(s.baseDir, filepath.FromSlash(PhotoKeyPrefix))
	filename, err := utils.SaveUploadedFile(fileHeader, dir)
	if err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return PhotoKeyPrefix + filename, nil
}

// GetImageURL returns the local serving URL for a photo
func (s *LocalImageService) GetImageURL(imageKey string) (string, error) {
	return utils.GetImageURL(imageKey), nil
}

// DeleteImage removes a photo file from disk
func (s *LocalImageService) DeleteImage(imageKey string) error {
	if imageKey == "" {
		return nil
	}

	path := filepath.Join(s.baseDir, filepath.FromSlash(imageKey))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}
