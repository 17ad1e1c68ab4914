package utils

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImageFile(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		size         int64
		expectError  bool
		expectedCode string
	}{
		{"Valid PNG file", "photo.png", 1024, false, ""},
		{"Valid JPG file", "photo.jpg", 1024, false, ""},
		{"Valid JPEG file", "photo.jpeg", 1024, false, ""},
		{"Uppercase extension accepted", "PHOTO.PNG", 1024, false, ""},
		{"Reject GIF", "photo.gif", 1024, true, "INVALID_FILE_FORMAT"},
		{"Reject extensionless file", "photo", 1024, true, "INVALID_FILE_FORMAT"},
		{"Reject oversized file", "photo.png", MaxFileSize + 1, true, "FILE_TOO_LARGE"},
		{"Accept file at the size limit", "photo.png", MaxFileSize, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileHeader := &multipart.FileHeader{
				Filename: tt.filename,
				Size:     tt.size,
			}

			err := ValidateImageFile(fileHeader)
			if tt.expectError {
				assert.Error(t, err)
				var uploadErr *FileUploadError
				if assert.ErrorAs(t, err, &uploadErr) {
					assert.Equal(t, tt.expectedCode, uploadErr.Code)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetImageURL(t *testing.T) {
	assert.Equal(t, "/api/v1/uploads/orders/photos/1_sofa.png", GetImageURL("orders/photos/1_sofa.png"))
	assert.Equal(t, "", GetImageURL(""))
}
