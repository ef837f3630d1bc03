package utils

import (
	"fmt"
	"mime/multipart"
	"time"
)

func ValidateUpload(header *multipart.FileHeader, maxSize int64) error {
	if header == nil || header.Size == 0 {
		return fmt.Errorf("uploaded file is empty")
	}
	if header.Size > maxSize {
		return fmt.Errorf("file size exceeds the maximum of %d bytes", maxSize)
	}
	return nil
}

func ValidateFutureTime(t time.Time, label string) error {
	if !t.After(time.Now()) {
		return fmt.Errorf("%s must be in the future", label)
	}
	return nil
}
