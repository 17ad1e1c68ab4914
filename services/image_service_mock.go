package services

import (
	"fmt"
	"mime/multipart"
	"sync"

	"github.com/mebelpro/factory-api/utils"
)

// MockImageService is an in-memory ImageService for testing
type MockImageService struct {
	images map[string]bool // set of stored image keys
	mu     sync.RWMutex

	// UploadErr, when set, is returned by UploadImage to simulate failures
	UploadErr error
}

// NewMockImageService creates a new mock image service
func NewMockImageService() *MockImageService {
	return &MockImageService{
		images: make(map[string]bool),
	}
}

// SetAsMockForTesting sets this mock as the global image service instance
func (m *MockImageService) SetAsMockForTesting() {
	SetImageService(m)
}

// UploadImage validates the file and records its key in memory
func (m *MockImageService) UploadImage(fileHeader *multipart.FileHeader) (string, error) {
	if m.UploadErr != nil {
		return "", m.UploadErr
	}

	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	key := fmt.Sprintf("%smock_%s", PhotoKeyPrefix, fileHeader.Filename)

	m.mu.Lock()
	m.images[key] = true
	m.mu.Unlock()

	return key, nil
}

// GetImageURL returns a fake URL for a stored key
func (m *MockImageService) GetImageURL(imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}
	return fmt.Sprintf("https://images.example.com/%s", imageKey), nil
}

// DeleteImage forgets a stored key
func (m *MockImageService) DeleteImage(imageKey string) error {
	m.mu.Lock()
	delete(m.images, imageKey)
	m.mu.Unlock()
	return nil
}

// ImageExists checks if a key was uploaded and not deleted
func (m *MockImageService) ImageExists(imageKey string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.images[imageKey]
}
