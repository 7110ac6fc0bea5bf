// Package storage provides object storage implementations for image uploads.
package storage

import (
	"context"
)

// ImageStore persists uploaded images and returns a publicly reachable URL
// for each stored object. The URL is what gets written into entity image
// fields upstream.
type ImageStore interface {
	// Upload stores the image bytes under the given key and returns the
	// public URL of the stored object.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Delete removes a stored object. Missing objects are not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is present under the given key.
	Exists(ctx context.Context, key string) (bool, error)
}
