// Package media validates uploaded thumbnails and resolves image sources for
// display.
package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxImageSize is the largest thumbnail accepted, 5 MiB.
const MaxImageSize = 5 * 1024 * 1024

var (
	ErrNotImage      = errors.New("Please select an image file")
	ErrImageTooLarge = errors.New("File size must be 5MB or less")
)

// ValidateImage checks the declared type and size of an upload.
func ValidateImage(contentType string, size int64) error {
	if size > MaxImageSize {
		return ErrImageTooLarge
	}
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/") {
		return ErrNotImage
	}
	return nil
}

// ToDataURL inlines data so the thumbnail can be stored with the work.
func ToDataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ReadUpload reads an image upload into a data URL. An empty content type is
// sniffed from the bytes.
func ReadUpload(r io.Reader, contentType string, size int64) (string, error) {
	if size > MaxImageSize {
		return "", ErrImageTooLarge
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if err := ValidateImage(contentType, int64(len(data))); err != nil {
		return "", err
	}
	// Drop parameters like "; charset=utf-8" before inlining.
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	return ToDataURL(contentType, data), nil
}
