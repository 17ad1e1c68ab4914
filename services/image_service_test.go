package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildFileHeader creates a real multipart.FileHeader backed by content
func buildFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("Failed to parse multipart form: %v", err)
	}
	return req.MultipartForm.File["image"][0]
}

func TestLocalImageService(t *testing.T) {
	baseDir := t.TempDir()
	service := InitLocalImageService(baseDir)

	fileHeader := buildFileHeader(t, "sofa.png", []byte("fake png bytes"))

	key, err := service.UploadImage(fileHeader)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, PhotoKeyPrefix), "key %q should live under the photo namespace", key)

	// The file landed on disk
	path := filepath.Join(baseDir, filepath.FromSlash(key))
	content, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, []byte("fake png bytes"), content)

	// The URL points at the local serving route
	url, err := service.GetImageURL(key)
	assert.NoError(t, err)
	assert.Equal(t, "/api/v1/uploads/"+key, url)

	// Deletion removes the file and is idempotent
	assert.NoError(t, service.DeleteImage(key))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, service.DeleteImage(key))
}

func TestLocalImageServiceRejectsInvalidFormat(t *testing.T) {
	service := InitLocalImageService(t.TempDir())

	fileHeader := buildFileHeader(t, "report.pdf", []byte("not an image"))

	_, err := service.UploadImage(fileHeader)
	assert.Error(t, err)
}

func TestMockImageService(t *testing.T) {
	mock := NewMockImageService()
	mock.SetAsMockForTesting()
	assert.Equal(t, ImageService(mock), GetImageService())

	fileHeader := buildFileHeader(t, "sofa.png", []byte("fake png bytes"))

	key, err := mock.UploadImage(fileHeader)
	assert.NoError(t, err)
	assert.True(t, mock.ImageExists(key))

	url, err := mock.GetImageURL(key)
	assert.NoError(t, err)
	assert.Contains(t, url, key)

	assert.NoError(t, mock.DeleteImage(key))
	assert.False(t, mock.ImageExists(key))
}

func TestS3ImageServiceWithMockBackend(t *testing.T) {
	mockS3 := NewMockS3Service()
	service := InitS3ImageService(mockS3)

	fileHeader := buildFileHeader(t, "sofa.jpg", []byte("fake jpeg bytes"))

	key, err := service.UploadImage(fileHeader)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, PhotoKeyPrefix))
	assert.True(t, mockS3.FileExists(key))

	url, err := service.GetImageURL(key)
	assert.NoError(t, err)
	assert.Contains(t, url, key)

	// Validation runs before the backend is touched
	badHeader := buildFileHeader(t, "report.pdf", []byte("not an image"))
	_, err = service.UploadImage(badHeader)
	assert.Error(t, err)
	assert.False(t, mockS3.FileExists(PhotoKeyPrefix+"mock_report.pdf"))

	assert.NoError(t, service.DeleteImage(key))
	assert.False(t, mockS3.FileExists(key))
}
