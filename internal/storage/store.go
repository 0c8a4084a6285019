// Package storage hosts uploaded spot images. Two drivers exist: local disk
// (references are paths served by this process under /uploads) and
// Cloudinary (references are provider URLs). The rest of the system treats
// references as opaque strings either way.
package storage

import (
	"context"
	"mime/multipart"
)

// ImageStore saves an uploaded image and returns its opaque reference.
type ImageStore interface {
	Save(ctx context.Context, file *multipart.FileHeader, folder string) (string, error)
}
