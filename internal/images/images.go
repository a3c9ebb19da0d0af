// Package images stores uploaded product images and returns the URL they are served from.
package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Store persists an image and returns its public URL
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// allowed maps accepted content types to file extensions
var allowed = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ErrUnsupportedType is returned for uploads that are not images
var ErrUnsupportedType = errors.New("unsupported image type")

// ObjectKey builds a unique storage key for a product image
func ObjectKey(productID uint, contentType string) (string, error) {
	ext, ok := allowed[strings.ToLower(contentType)]
	if !ok {
		return "", ErrUnsupportedType
	}
	return path.Join("products", fmt.Sprint(productID), uuid.NewString()+ext), nil
}
